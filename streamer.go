package pyzipgrep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/yousefabuz17/pyzipgrep/codec"
	"github.com/yousefabuz17/pyzipgrep/internal/retry"
)

// ChunkWholeFile selects whole-file mode: Stream reads the member to
// completion and yields exactly one chunk containing the whole decoded
// content. A chunk size of zero is always an error, never a default.
const ChunkWholeFile = -1

// Streamer opens members inside validated archives and yields their decoded
// text. The open-and-read sequence is wrapped in a bounded
// retry-with-backoff policy; retries never apply to predicate evaluation.
type Streamer struct {
	// Retry bounds the open+read attempts. Defaults to [retry.DefaultConfig].
	Retry retry.Config
}

// NewStreamer returns a Streamer with the default retry policy applied.
func NewStreamer(optFns ...func(*Streamer)) *Streamer {
	s := &Streamer{Retry: retry.DefaultConfig()}
	for _, fn := range optFns {
		fn(s)
	}

	return s
}

func validateChunkSize(n int) error {
	if n == ChunkWholeFile || n > 0 {
		return nil
	}

	return fmt.Errorf("%w: %d", ErrInvalidChunkSize, n)
}

// ReadAll reads the member's raw bytes with the retry policy but without any
// member-codec decoding. Nested archive members are read this way.
func (s *Streamer) ReadAll(ctx context.Context, a *Archive, member Member) ([]byte, error) {
	return s.read(ctx, a, member, false)
}

// Stream reads the member and returns its decoded text chunks.
//
// chunkSize [ChunkWholeFile] yields one chunk with the entire content; a
// positive chunkSize yields successive chunks of at most that many decoded
// characters. Anything else fails with [ErrInvalidChunkSize] before any I/O.
// An empty member yields zero chunks.
//
// Bytes are decoded as UTF-8 with invalid sequences replaced, never fatally.
// Members whose extension has a registered codec (".gz", ".xz", ".zst") are
// transparently decompressed first.
func (s *Streamer) Stream(ctx context.Context, a *Archive, member Member, chunkSize int) ([]string, error) {
	if err := validateChunkSize(chunkSize); err != nil {
		return nil, err
	}

	data, err := s.read(ctx, a, member, true)
	if err != nil {
		return nil, err
	}

	text := strings.ToValidUTF8(string(data), "�")
	if text == "" {
		return nil, nil
	}

	if chunkSize == ChunkWholeFile {
		return []string{text}, nil
	}

	var chunks []string
	for len(text) > 0 {
		var i, n int
		for i < len(text) && n < chunkSize {
			_, w := utf8.DecodeRuneInString(text[i:])
			i += w
			n++
		}

		chunks = append(chunks, text[:i])
		text = text[i:]
	}

	return chunks, nil
}

func (s *Streamer) read(ctx context.Context, a *Archive, member Member, decode bool) ([]byte, error) {
	data, err := retry.Do(ctx, s.Retry, func() ([]byte, error) {
		rc, err := a.Open(member)
		if err != nil {
			var notFound *MemberNotFoundError
			if errors.As(err, &notFound) {
				// absent members never become readable; do not retry.
				return nil, retry.Permanent(err)
			}

			return nil, err
		}
		defer rc.Close()

		var r io.Reader = rc
		if decode {
			if c, ok := codec.ForExt(member.Ext()); ok {
				dec, err := c.NewDecoder(rc)
				if err != nil {
					return nil, err
				}
				defer dec.Close()
				r = dec
			}
		}

		return io.ReadAll(r)
	})

	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		var notFound *MemberNotFoundError
		if errors.As(err, &notFound) {
			return nil, err
		}

		var unreadable *ArchiveUnreadableError
		if errors.As(err, &unreadable) {
			return nil, err
		}

		return nil, &ArchiveUnreadableError{Path: a.Path(), Member: member, Err: err}
	}
}
