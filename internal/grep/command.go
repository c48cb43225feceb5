// Package grep implements the default search subcommand.
package grep

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/yousefabuz17/pyzipgrep"
	"github.com/yousefabuz17/pyzipgrep/filter"
	"github.com/yousefabuz17/pyzipgrep/internal/source"
)

// ErrNoMatches reports a search that completed cleanly without producing a
// single match. main maps it to its own exit status so scripts can tell "no
// matches" apart from "search failed".
var ErrNoMatches = errors.New("no matches found")

type Command struct {
	IgnoreCase        bool     `short:"i" long:"ignore-case" description:"match case-insensitively"`
	Literal           bool     `short:"F" long:"string" description:"treat the pattern as a literal string instead of a regular expression"`
	Recursive         bool     `short:"r" long:"recursive" description:"descend into .zip members and search their contents too"`
	MaxDepth          int      `long:"max-depth" description:"cap on archive nesting when --recursive is given" default:"10"`
	MaxWorkers        int      `short:"w" long:"max-workers" description:"use up to max-workers goroutines per worker pool" default:"32"`
	ChunkSize         int      `long:"chunk-size" description:"match on fixed-size chunks of this many characters instead of lines; 0 keeps line mode" default:"0"`
	Extensions        []string `short:"e" long:"extension" description:"only search members with this extension; repeatable"`
	ExcludeExtensions []string `short:"x" long:"exclude-extension" description:"skip members with this extension; repeatable"`
	Name              string   `long:"name" description:"only search members whose base name contains this substring"`
	MinSize           string   `long:"min-size" description:"skip archives smaller than this (accepts human-readable sizes like 10MB)"`
	MaxSize           string   `long:"max-size" description:"skip archives at least this large"`
	Format            string   `short:"f" long:"format" choice:"text" choice:"json" choice:"csv" default:"text" description:"output format"`
	Delimiter         string   `short:"d" long:"delimiter" description:"field delimiter for csv output" default:","`
	Color             string   `long:"color" choice:"auto" choice:"always" choice:"never" default:"auto" description:"colorize text output"`
	Quiet             bool     `short:"q" long:"quiet" description:"print nothing; the exit status conveys whether anything matched"`
	NoSummary         bool     `long:"no-summary" description:"suppress the trailing match-count summary"`
	Args              struct {
		Pattern  string   `positional-arg-name:"pattern" description:"the pattern to search for" required:"yes"`
		Archives []string `positional-arg-name:"archive" description:"archive paths, glob patterns, or s3://bucket/key URIs" required:"yes"`
	} `positional-args:"yes"`
}

func (c *Command) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer stop()

	contentFilter, err := c.contentFilter()
	if err != nil {
		return err
	}
	pathFilter := c.pathFilter()
	archiveFilter, err := c.archiveFilter()
	if err != nil {
		return err
	}

	pr, err := c.printer()
	if err != nil {
		return err
	}

	paths, cleanup, err := source.Resolve(ctx, c.Args.Archives)
	if err != nil {
		return err
	}
	defer cleanup()

	chunkSize := pyzipgrep.ChunkWholeFile
	if c.ChunkSize > 0 {
		chunkSize = c.ChunkSize
	}

	engine, err := pyzipgrep.New(paths,
		pyzipgrep.WithMaxWorkers(c.MaxWorkers),
		pyzipgrep.WithRecursive(c.Recursive),
		pyzipgrep.WithMaxDepth(c.MaxDepth),
		pyzipgrep.WithChunkSize(chunkSize),
		pyzipgrep.WithArchiveFilter(archiveFilter),
		pyzipgrep.WithPathFilter(pathFilter),
		pyzipgrep.WithContentFilter(contentFilter))
	if err != nil {
		return err
	}

	seq, err := engine.Search(ctx)
	if err != nil {
		return err
	}

	for m, err := range seq {
		if err != nil {
			return err
		}

		if c.Quiet {
			// one match settles the exit status; no need to keep going.
			break
		}

		if err = pr.print(m); err != nil {
			return err
		}
	}

	if !c.Quiet && !c.NoSummary {
		msg := fmt.Sprintf("found %d match(es) in %d archive(s)", engine.TotalMatches(), len(engine.GoodArchives()))
		if n := engine.NestedArchiveCount(); n > 0 {
			msg += fmt.Sprintf(" (%d nested)", n)
		}
		log.Print(msg)
	}

	if engine.TotalMatches() == 0 {
		return ErrNoMatches
	}

	return nil
}

func (c *Command) contentFilter() (pyzipgrep.Predicate[string], error) {
	if c.Literal {
		return filter.Contains(c.Args.Pattern, c.IgnoreCase), nil
	}

	p, err := filter.Matches(c.Args.Pattern, c.IgnoreCase)
	if err != nil {
		return nil, fmt.Errorf("compile pattern error: %w", err)
	}

	return p, nil
}

func (c *Command) pathFilter() pyzipgrep.Predicate[pyzipgrep.Member] {
	var ps []pyzipgrep.Predicate[pyzipgrep.Member]
	if len(c.Extensions) > 0 || len(c.ExcludeExtensions) > 0 {
		ps = append(ps, filter.Extensions(c.Extensions, c.ExcludeExtensions, false))
	}
	if c.Name != "" {
		ps = append(ps, filter.NameContains(c.Name, c.IgnoreCase))
	}

	if len(ps) == 0 {
		return nil
	}

	return pyzipgrep.AllOf(ps...)
}

func (c *Command) archiveFilter() (pyzipgrep.Predicate[pyzipgrep.Metadata], error) {
	if c.MinSize == "" && c.MaxSize == "" {
		return nil, nil
	}

	var minSize, maxSize uint64
	var err error
	if c.MinSize != "" {
		if minSize, err = humanize.ParseBytes(c.MinSize); err != nil {
			return nil, fmt.Errorf("parse min-size error: %w", err)
		}
	}
	if c.MaxSize != "" {
		if maxSize, err = humanize.ParseBytes(c.MaxSize); err != nil {
			return nil, fmt.Errorf("parse max-size error: %w", err)
		}
	}

	return filter.SizeBetween(int64(minSize), int64(maxSize))
}
