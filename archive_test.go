package pyzipgrep

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive_Validate(t *testing.T) {
	dir := t.TempDir()

	valid := writeZip(t, dir, "valid.zip", map[string]string{"a.txt": "hello"})

	corrupt := filepath.Join(dir, "corrupt.zip")
	require.NoError(t, os.WriteFile(corrupt, []byte("this is not a zip file"), 0644))

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "valid zip", path: valid, expected: true},
		{name: "corrupt zip", path: corrupt, expected: false},
		{name: "missing file", path: filepath.Join(dir, "nope.zip"), expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewArchive(tt.path).Validate(t.Context()))
		})
	}
}

func TestArchive_List(t *testing.T) {
	dir := t.TempDir()
	p := writeZip(t, dir, "test.zip", map[string]string{
		"readme.txt":      "hello world",
		"docs/guide.md":   "# guide",
		"docs/":           "",
		`win\style.css`:   "body {}",
		"assets/img.png/": "",
	})

	a := NewArchive(p)
	members, err := a.List(t.Context())
	require.NoError(t, err)

	// directory entries are dropped, backslashes normalized.
	assert.ElementsMatch(t, []Member{"readme.txt", "docs/guide.md", "win/style.css"}, members)

	md := a.Metadata()
	require.NotNil(t, md)
	assert.Equal(t, p, md.Path)
	assert.Equal(t, 3, md.MemberCount)
	assert.Positive(t, md.Size)
	assert.Positive(t, md.TotalUncompressed)
	assert.False(t, md.ModTime.IsZero())

	// cached: a second listing returns the identical slice.
	again, err := a.List(t.Context())
	require.NoError(t, err)
	assert.Equal(t, members, again)
}

func TestArchive_List_Empty(t *testing.T) {
	p := writeZip(t, t.TempDir(), "empty.zip", nil)

	a := NewArchive(p)
	members, err := a.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, members)
	assert.Nil(t, a.Metadata(), "empty archive has no metadata")
}

func TestArchive_Open(t *testing.T) {
	p := writeZip(t, t.TempDir(), "test.zip", map[string]string{"dir/a.txt": "content here"})
	a := NewArchive(p)

	rc, err := a.Open("dir/a.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "content here", string(data))

	_, err = a.Open("missing.txt")
	var notFound *MemberNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, Member("missing.txt"), notFound.Member)
}

func TestArchive_Nested(t *testing.T) {
	inner := zipBytes(t, map[string]string{"report.txt": "hello"})

	a := newNestedArchive("outer.zip!inner.zip", inner, time.Now())
	assert.True(t, a.Validate(t.Context()))
	assert.Equal(t, "outer.zip!inner.zip", a.Path())

	members, err := a.List(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []Member{"report.txt"}, members)

	md := a.Metadata()
	require.NotNil(t, md)
	assert.Equal(t, "outer.zip!inner.zip", md.Path)
	assert.Equal(t, int64(len(inner)), md.Size)
}
