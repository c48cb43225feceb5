package pyzipgrep

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChunkSize is returned when a chunk size is zero or an
	// unrecognized negative value. Use [ChunkWholeFile] for whole-file mode.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrFilterConfiguration is returned by filter constructors whose bounds
	// are logically inconsistent, e.g. a range whose lower bound exceeds its
	// upper bound.
	ErrFilterConfiguration = errors.New("invalid filter configuration")
)

// NoValidArchivesError is returned by [Engine.Search] when zero archives
// survived validation and filtering. It is fatal to that call; nothing was
// searched.
type NoValidArchivesError struct {
	// Searched is the number of candidate paths after glob expansion.
	Searched int
	// Invalid is the number of candidates that were missing or not valid
	// archives.
	Invalid int
	// Excluded is the number of valid archives rejected by the archive
	// filter.
	Excluded int
	// Causes aggregates the per-candidate validation failures.
	Causes error
}

func (e *NoValidArchivesError) Error() string {
	switch {
	case e.Searched == 0:
		return "no archives found in the given path(s)"
	case e.Excluded > 0 && e.Invalid == 0:
		return fmt.Sprintf("found %d archive(s) but none matched the archive filter", e.Searched)
	case e.Excluded > 0:
		return fmt.Sprintf("no valid archives: %d invalid, %d excluded by filter out of %d", e.Invalid, e.Excluded, e.Searched)
	default:
		return fmt.Sprintf("no valid archives among %d candidate(s)", e.Searched)
	}
}

func (e *NoValidArchivesError) Unwrap() error {
	return e.Causes
}

// ArchiveUnreadableError is returned when an archive or one of its members
// could not be opened or read, after retries were exhausted where retries
// apply. The engine recovers from it locally by skipping the archive or
// member.
type ArchiveUnreadableError struct {
	Path   string
	Member Member // empty when the archive itself is unreadable
	Err    error
}

func (e *ArchiveUnreadableError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("archive %q unreadable: %v", e.Path, e.Err)
	}

	return fmt.Sprintf("member %q in archive %q unreadable: %v", e.Member, e.Path, e.Err)
}

func (e *ArchiveUnreadableError) Unwrap() error {
	return e.Err
}

// MemberNotFoundError is returned by [Archive.Open] when the requested member
// is absent from the archive's listing.
type MemberNotFoundError struct {
	Path   string
	Member Member
}

func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("no member named %q in archive %q", e.Member, e.Path)
}
