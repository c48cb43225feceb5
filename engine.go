package pyzipgrep

import (
	"context"
	"fmt"
	"iter"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-zglob"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// DefaultMaxWorkers bounds both worker pools when not configured.
	DefaultMaxWorkers = 32

	// DefaultMaxDepth caps recursion into nested archives. Each level of
	// nesting costs a buffered copy of the nested archive, so the cap guards
	// against maliciously nested inputs.
	DefaultMaxDepth = 10

	archiveSuffix = ".zip"
)

// Engine owns the search pipeline: archive validation and partitioning,
// parallel member enumeration, content streaming, recursion into nested
// archives, and the aggregate counters.
//
// Construct with [New]; fields may be adjusted before the first call to
// [Engine.Search] but not after.
type Engine struct {
	// MaxWorkers caps the content-streaming pool; the enumeration pool is
	// additionally capped by the number of valid archives.
	MaxWorkers int

	// Recursive descends into ".zip" members. When false such members are
	// skipped entirely so their bytes are never treated as searchable text.
	Recursive bool

	// MaxDepth caps nesting when Recursive is set.
	MaxDepth int

	// ChunkSize is [ChunkWholeFile] for line-oriented whole-file mode, or a
	// positive number of decoded characters per chunk.
	ChunkSize int

	// ArchiveFilter, PathFilter and ContentFilter restrict the search at
	// their respective levels. Nil means no filtering. All three must be
	// pure, non-blocking functions; a blocking filter is a caller error.
	ArchiveFilter Predicate[Metadata]
	PathFilter    Predicate[Member]
	ContentFilter Predicate[string]

	// Streamer reads member content. Defaults to [NewStreamer].
	Streamer *Streamer

	// Logger receives warnings for skipped archives and members. Defaults to
	// [log.Default].
	Logger *log.Logger

	patterns  []string
	depth     int
	validated bool
	good      []*Archive
	bad       []string

	totalMatches atomic.Int64
	nestedCount  atomic.Int64
}

// WithMaxWorkers sets the worker-pool cap.
func WithMaxWorkers(n int) func(*Engine) {
	return func(e *Engine) { e.MaxWorkers = n }
}

// WithRecursive toggles descent into nested archives.
func WithRecursive(recursive bool) func(*Engine) {
	return func(e *Engine) { e.Recursive = recursive }
}

// WithMaxDepth sets the nesting cap used when recursion is enabled.
func WithMaxDepth(n int) func(*Engine) {
	return func(e *Engine) { e.MaxDepth = n }
}

// WithChunkSize sets the content chunk size; use [ChunkWholeFile] for
// line-oriented whole-file mode.
func WithChunkSize(n int) func(*Engine) {
	return func(e *Engine) { e.ChunkSize = n }
}

// WithArchiveFilter restricts which validated archives are searched.
func WithArchiveFilter(p Predicate[Metadata]) func(*Engine) {
	return func(e *Engine) { e.ArchiveFilter = p }
}

// WithPathFilter restricts which members are streamed.
func WithPathFilter(p Predicate[Member]) func(*Engine) {
	return func(e *Engine) { e.PathFilter = p }
}

// WithContentFilter selects matching lines or chunks.
func WithContentFilter(p Predicate[string]) func(*Engine) {
	return func(e *Engine) { e.ContentFilter = p }
}

// WithLogger directs warnings to the given logger.
func WithLogger(logger *log.Logger) func(*Engine) {
	return func(e *Engine) { e.Logger = logger }
}

// New creates an Engine over the given archive paths and/or glob patterns.
// Configuration errors are reported here, before any filesystem I/O.
func New(patterns []string, optFns ...func(*Engine)) (*Engine, error) {
	e := &Engine{
		MaxWorkers: DefaultMaxWorkers,
		MaxDepth:   DefaultMaxDepth,
		ChunkSize:  ChunkWholeFile,
		Streamer:   NewStreamer(),
		patterns:   patterns,
	}
	for _, fn := range optFns {
		fn(e)
	}

	if err := e.validateConfig(); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Engine) validateConfig() error {
	if err := validateChunkSize(e.ChunkSize); err != nil {
		return err
	}
	if e.MaxWorkers <= 0 {
		return fmt.Errorf("max workers must be positive: %d", e.MaxWorkers)
	}
	if e.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive: %d", e.MaxDepth)
	}
	if e.Streamer == nil {
		e.Streamer = NewStreamer()
	}

	return nil
}

// Validate expands the input patterns and partitions every candidate into the
// good or bad set: bad when missing or not a zip-compatible archive (or, when
// an archive filter is configured, excluded by it), good otherwise. Every
// candidate lands in exactly one set. It runs at most once per engine.
//
// A [NoValidArchivesError] is returned when the good set ends up empty.
func (e *Engine) Validate(ctx context.Context) error {
	if e.validated {
		return nil
	}
	e.validated = true

	var causes *multierror.Error
	var candidates []string
	for _, p := range e.patterns {
		if !strings.ContainsAny(p, "*?[{") {
			candidates = append(candidates, p)
			continue
		}

		found, err := zglob.Glob(p)
		if err != nil {
			causes = multierror.Append(causes, fmt.Errorf("glob %q error: %w", p, err))
			continue
		}
		candidates = append(candidates, found...)
	}

	var invalid, excluded int
	for _, p := range candidates {
		a := NewArchive(p)
		if !a.Validate(ctx) {
			invalid++
			e.bad = append(e.bad, p)
			causes = multierror.Append(causes, fmt.Errorf("%q is not a valid archive", p))
			continue
		}

		if e.ArchiveFilter != nil {
			if _, err := a.List(ctx); err != nil {
				invalid++
				e.bad = append(e.bad, p)
				causes = multierror.Append(causes, err)
				continue
			}

			if md := a.Metadata(); md == nil || !e.ArchiveFilter(*md) {
				excluded++
				e.bad = append(e.bad, p)
				continue
			}
		}

		e.good = append(e.good, a)
	}

	if len(e.bad) > 0 {
		e.logf("skipping %d invalid or excluded archive(s): %s", len(e.bad), strings.Join(e.bad, ", "))
	}

	if len(e.good) == 0 {
		return &NoValidArchivesError{
			Searched: len(candidates),
			Invalid:  invalid,
			Excluded: excluded,
			Causes:   causes.ErrorOrNil(),
		}
	}

	return nil
}

// Search validates the inputs and returns the match stream as a lazy
// sequence. Matches are emitted in archive-completion order; only line order
// within one member is guaranteed. Breaking out of the sequence cancels all
// outstanding work without awaiting it.
//
// Configuration errors and [NoValidArchivesError] are reported here, before
// the sequence exists. Per-archive and per-member failures during the search
// are logged and skipped, never fatal.
func (e *Engine) Search(ctx context.Context) (iter.Seq2[Match, error], error) {
	if err := e.validateConfig(); err != nil {
		return nil, err
	}
	if err := e.Validate(ctx); err != nil {
		return nil, err
	}

	return e.stream(ctx), nil
}

type pair struct {
	archive *Archive
	member  Member
}

func (e *Engine) stream(ctx context.Context) iter.Seq2[Match, error] {
	return func(yield func(Match, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		e.totalMatches.Store(0)
		e.nestedCount.Store(0)

		out := make(chan Match)

		go func() {
			defer close(out)

			// tier one: enumerate members per archive, in completion order.
			pairs := make(chan pair)
			go func() {
				defer close(pairs)

				var completed atomic.Int64
				sometimes := &rate.Sometimes{Interval: 2 * time.Second}

				var g errgroup.Group
				g.SetLimit(min(e.MaxWorkers, len(e.good)))
				for _, a := range e.good {
					g.Go(func() error {
						members, err := a.List(ctx)
						if err != nil {
							e.logf("skipping archive %q: %v", a.Path(), err)
							return nil
						}

						for _, m := range members {
							if e.PathFilter != nil && !e.PathFilter(m) {
								continue
							}

							select {
							case pairs <- pair{a, m}:
							case <-ctx.Done():
								return nil
							}
						}

						n := completed.Add(1)
						sometimes.Do(func() {
							e.logf("enumerated %d/%d archive(s)", n, len(e.good))
						})
						return nil
					})
				}
				_ = g.Wait()
			}()

			// tier two: stream member content off the coordination path.
			var g errgroup.Group
			g.SetLimit(e.MaxWorkers)
			for p := range pairs {
				if ctx.Err() != nil {
					break
				}

				g.Go(func() error {
					e.process(ctx, p, out)
					return nil
				})
			}
			_ = g.Wait()
		}()

		for m := range out {
			e.totalMatches.Add(1)
			if !yield(m, nil) {
				// abandon, not await: workers notice the cancelled context
				// the next time they try to send.
				cancel()
				return
			}
		}

		if err := ctx.Err(); err != nil {
			yield(Match{}, err)
		}
	}
}

func (e *Engine) process(ctx context.Context, p pair, out chan<- Match) {
	if strings.HasSuffix(strings.ToLower(string(p.member)), archiveSuffix) {
		if e.Recursive {
			e.recurse(ctx, p, out)
		}
		return
	}

	chunks, err := e.Streamer.Stream(ctx, p.archive, p.member, e.ChunkSize)
	if err != nil {
		if ctx.Err() == nil {
			e.logf("skipping member %q in %q: %v", p.member, p.archive.Path(), err)
		}
		return
	}

	lineMode := e.ChunkSize == ChunkWholeFile
	for _, m := range matchContent(p.archive.Path(), p.member, chunks, e.ContentFilter, lineMode) {
		select {
		case out <- m:
		case <-ctx.Done():
			return
		}
	}
}

// recurse drains a child engine rooted at the nested member into out. The
// nested counter is incremented once per fully-drained child.
func (e *Engine) recurse(ctx context.Context, p pair, out chan<- Match) {
	display := p.archive.Path() + "!" + string(p.member)

	if e.depth+1 >= e.MaxDepth {
		e.logf("skipping nested archive %q: max nesting depth %d reached", display, e.MaxDepth)
		return
	}

	data, err := e.Streamer.ReadAll(ctx, p.archive, p.member)
	if err != nil {
		if ctx.Err() == nil {
			e.logf("skipping nested archive %q: %v", display, err)
		}
		return
	}

	var modTime time.Time
	if md := p.archive.Metadata(); md != nil {
		modTime = md.ModTime
	}

	nested := newNestedArchive(display, data, modTime)
	if !nested.Validate(ctx) {
		e.logf("skipping nested archive %q: invalid or corrupt", display)
		return
	}

	child := e.child(nested)
	seq, err := child.Search(ctx)
	if err != nil {
		e.logf("skipping nested archive %q: %v", display, err)
		return
	}

	for m, err := range seq {
		if err != nil {
			return
		}

		select {
		case out <- m:
		case <-ctx.Done():
			return
		}
	}

	e.nestedCount.Add(child.NestedArchiveCount() + 1)
}

// child clones the engine one nesting level down, rooted at an
// already-validated nested archive. The archive filter is not re-applied:
// admission was decided at the top level.
func (e *Engine) child(nested *Archive) *Engine {
	return &Engine{
		MaxWorkers:    e.MaxWorkers,
		Recursive:     e.Recursive,
		MaxDepth:      e.MaxDepth,
		ChunkSize:     e.ChunkSize,
		PathFilter:    e.PathFilter,
		ContentFilter: e.ContentFilter,
		Streamer:      e.Streamer,
		Logger:        e.Logger,
		depth:         e.depth + 1,
		validated:     true,
		good:          []*Archive{nested},
	}
}

// GoodArchives returns the archives that passed validation and filtering.
// Valid after [Engine.Validate] or [Engine.Search].
func (e *Engine) GoodArchives() []*Archive {
	return append([]*Archive(nil), e.good...)
}

// BadArchives returns the paths classified as invalid, corrupt or excluded.
// Valid after [Engine.Validate] or [Engine.Search].
func (e *Engine) BadArchives() []string {
	return append([]string(nil), e.bad...)
}

// TotalMatches reports the number of matches produced. Stable only after the
// search sequence has been fully consumed.
func (e *Engine) TotalMatches() int64 {
	return e.totalMatches.Load()
}

// NestedArchiveCount reports the number of nested archives fully drained.
// Stable only after the search sequence has been fully consumed.
func (e *Engine) NestedArchiveCount() int64 {
	return e.nestedCount.Load()
}

func (e *Engine) logf(format string, args ...any) {
	logger := e.Logger
	if logger == nil {
		logger = log.Default()
	}

	logger.Printf(format, args...)
}
