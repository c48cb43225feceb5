package pyzipgrep

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mholt/archives"
)

// Metadata is the cached, immutable description of a validated archive. It is
// computed at most once per handle, on the first successful member listing.
type Metadata struct {
	// Path is the archive's resolved path (or nested identity).
	Path string
	// Size is the archive's own byte size.
	Size int64
	// ModTime is the archive's modification time.
	ModTime time.Time
	// MemberCount is the number of file members (directories excluded).
	MemberCount int
	// TotalCompressed and TotalUncompressed sum the member sizes.
	TotalCompressed   int64
	TotalUncompressed int64
	// Ratio is the percentage of space saved by compression.
	Ratio float64
}

// opener abstracts where an archive's bytes come from: a file on disk, or a
// nested member buffered in memory.
type opener interface {
	Open() (ra io.ReaderAt, size int64, close func() error, err error)
	Stat() (size int64, modTime time.Time, err error)
}

type fileOpener string

func (f fileOpener) Open() (io.ReaderAt, int64, func() error, error) {
	r, err := os.Open(string(f))
	if err != nil {
		return nil, 0, nil, err
	}

	fi, err := r.Stat()
	if err != nil {
		_ = r.Close()
		return nil, 0, nil, err
	}

	return r, fi.Size(), r.Close, nil
}

func (f fileOpener) Stat() (int64, time.Time, error) {
	fi, err := os.Stat(string(f))
	if err != nil {
		return 0, time.Time{}, err
	}

	return fi.Size(), fi.ModTime(), nil
}

type memoryOpener struct {
	data    []byte
	modTime time.Time
}

func (m *memoryOpener) Open() (io.ReaderAt, int64, func() error, error) {
	return bytes.NewReader(m.data), int64(len(m.data)), func() error { return nil }, nil
}

func (m *memoryOpener) Stat() (int64, time.Time, error) {
	return int64(len(m.data)), m.modTime, nil
}

// Archive is a handle to one candidate archive. Handles are created by the
// engine during validation and are never mutated by filters; filters only
// read the cached [Metadata].
type Archive struct {
	path   string
	opener opener

	// mu guards the one-time member listing and metadata computation.
	mu      sync.Mutex
	listed  bool
	members []Member
	meta    *Metadata
}

// NewArchive returns a handle backed by a file on disk. The path is not
// touched until [Archive.Validate] or [Archive.List] is called.
func NewArchive(path string) *Archive {
	return &Archive{path: path, opener: fileOpener(path)}
}

// newNestedArchive returns a handle over an in-memory nested archive. The
// display path resolves through the parent, e.g. "outer.zip!inner.zip".
func newNestedArchive(display string, data []byte, modTime time.Time) *Archive {
	return &Archive{path: display, opener: &memoryOpener{data: data, modTime: modTime}}
}

// Path returns the archive's resolved path.
func (a *Archive) Path() string {
	return a.path
}

// Validate reports whether the underlying bytes exist and carry a
// zip-compatible signature. It performs no member listing.
func (a *Archive) Validate(ctx context.Context) bool {
	ra, size, closeFn, err := a.opener.Open()
	if err != nil {
		return false
	}
	defer closeFn()

	format, _, err := archives.Identify(ctx, a.path, io.NewSectionReader(ra, 0, size))
	return err == nil && format.Extension() == ".zip"
}

// List returns the archive's full member listing, normalized to forward
// slashes with directory entries dropped. The listing and the archive
// metadata are computed once and cached; subsequent calls are free.
//
// A handle that passed Validate can still fail here (concurrent deletion,
// truncation); the failure is an [ArchiveUnreadableError].
func (a *Archive) List(ctx context.Context) ([]Member, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.listed {
		return a.members, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ra, size, closeFn, err := a.opener.Open()
	if err != nil {
		return nil, &ArchiveUnreadableError{Path: a.path, Err: err}
	}
	defer closeFn()

	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, &ArchiveUnreadableError{Path: a.path, Err: err}
	}

	var totalCompressed, totalUncompressed int64
	members := make([]Member, 0, len(zr.File))
	for _, f := range zr.File {
		m := NormalizeMember(f.Name)
		if m.IsDir() || f.FileInfo().IsDir() {
			continue
		}

		members = append(members, m)
		totalCompressed += int64(f.CompressedSize64)
		totalUncompressed += int64(f.UncompressedSize64)
	}

	a.members, a.listed = members, true

	// an empty archive has no metadata.
	if len(members) > 0 {
		archiveSize, modTime, _ := a.opener.Stat()
		var ratio float64
		if totalUncompressed > 0 {
			ratio = (1 - float64(totalCompressed)/float64(totalUncompressed)) * 100
		}

		a.meta = &Metadata{
			Path:              a.path,
			Size:              archiveSize,
			ModTime:           modTime,
			MemberCount:       len(members),
			TotalCompressed:   totalCompressed,
			TotalUncompressed: totalUncompressed,
			Ratio:             ratio,
		}
	}

	return a.members, nil
}

// Open returns a reader over the named member's raw (still compressed by any
// member-level codec, but zip-inflated) bytes. The caller must close it.
func (a *Archive) Open(member Member) (io.ReadCloser, error) {
	ra, size, closeFn, err := a.opener.Open()
	if err != nil {
		return nil, &ArchiveUnreadableError{Path: a.path, Member: member, Err: err}
	}

	zr, err := zip.NewReader(ra, size)
	if err != nil {
		_ = closeFn()
		return nil, &ArchiveUnreadableError{Path: a.path, Member: member, Err: err}
	}

	for _, f := range zr.File {
		if NormalizeMember(f.Name) != member {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			_ = closeFn()
			return nil, &ArchiveUnreadableError{Path: a.path, Member: member, Err: err}
		}

		return &memberReader{ReadCloser: rc, release: closeFn}, nil
	}

	_ = closeFn()
	return nil, &MemberNotFoundError{Path: a.path, Member: member}
}

// Metadata returns the cached metadata, or nil if no successful listing has
// happened yet or the archive is empty.
func (a *Archive) Metadata() *Metadata {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.meta
}

// memberReader closes the underlying archive handle along with the entry.
type memberReader struct {
	io.ReadCloser
	release func() error
}

func (r *memberReader) Close() error {
	err := r.ReadCloser.Close()
	if rerr := r.release(); err == nil {
		err = rerr
	}

	return err
}
