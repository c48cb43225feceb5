package pyzipgrep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamer_ChunkSize(t *testing.T) {
	p := writeZip(t, t.TempDir(), "test.zip", map[string]string{"a.txt": "irrelevant"})
	a := NewArchive(p)
	s := NewStreamer()

	for _, n := range []int{0, -2, -100} {
		_, err := s.Stream(t.Context(), a, "a.txt", n)
		assert.ErrorIs(t, err, ErrInvalidChunkSize, "chunk size %d", n)
	}
}

func TestStreamer_Stream(t *testing.T) {
	content := "line one\nline two\nline three\n"
	p := writeZip(t, t.TempDir(), "test.zip", map[string]string{
		"a.txt":  content,
		"empty":  "",
		"bin.da": "abc\xff\xfedef",
	})
	a := NewArchive(p)
	s := NewStreamer()

	t.Run("whole file is one chunk", func(t *testing.T) {
		chunks, err := s.Stream(t.Context(), a, "a.txt", ChunkWholeFile)
		require.NoError(t, err)
		assert.Equal(t, []string{content}, chunks)
	})

	t.Run("bounded chunks reassemble to the whole", func(t *testing.T) {
		chunks, err := s.Stream(t.Context(), a, "a.txt", 7)
		require.NoError(t, err)
		assert.Equal(t, content, strings.Join(chunks, ""))
		for i, c := range chunks[:len(chunks)-1] {
			assert.Len(t, []rune(c), 7, "chunk %d", i)
		}
	})

	t.Run("empty member yields no chunks", func(t *testing.T) {
		chunks, err := s.Stream(t.Context(), a, "empty", ChunkWholeFile)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})

	t.Run("invalid utf-8 is scrubbed, not fatal", func(t *testing.T) {
		chunks, err := s.Stream(t.Context(), a, "bin.da", ChunkWholeFile)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.True(t, strings.HasPrefix(chunks[0], "abc"))
		assert.Contains(t, chunks[0], "�")
		assert.True(t, strings.HasSuffix(chunks[0], "def"))
	})
}

func TestStreamer_Stream_MultibyteChunking(t *testing.T) {
	content := "héllo wörld ünïcode"
	p := writeZip(t, t.TempDir(), "test.zip", map[string]string{"u.txt": content})

	chunks, err := NewStreamer().Stream(t.Context(), NewArchive(p), "u.txt", 5)
	require.NoError(t, err)

	// chunk boundaries are character counts, never mid-rune byte splits.
	assert.Equal(t, content, strings.Join(chunks, ""))
	for _, c := range chunks {
		assert.True(t, utf8ValidAndBounded(c, 5), "chunk %q", c)
	}
}

func utf8ValidAndBounded(s string, n int) bool {
	return strings.ToValidUTF8(s, "") == s && len([]rune(s)) <= n
}

func TestStreamer_Codec(t *testing.T) {
	content := "compressed line one\ncompressed line two\n"
	p := writeZip(t, t.TempDir(), "test.zip", map[string]string{
		"logs/app.log.gz": gzipString(t, content),
	})

	chunks, err := NewStreamer().Stream(t.Context(), NewArchive(p), "logs/app.log.gz", ChunkWholeFile)
	require.NoError(t, err)
	assert.Equal(t, []string{content}, chunks)
}

func TestStreamer_MemberNotFound(t *testing.T) {
	p := writeZip(t, t.TempDir(), "test.zip", map[string]string{"a.txt": "x"})

	_, err := NewStreamer().Stream(t.Context(), NewArchive(p), "missing.txt", ChunkWholeFile)
	var notFound *MemberNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestStreamer_ReadAll(t *testing.T) {
	raw := gzipString(t, "inner")
	p := writeZip(t, t.TempDir(), "test.zip", map[string]string{"data.gz": raw})

	// ReadAll never applies member codecs; nested archives need raw bytes.
	data, err := NewStreamer().ReadAll(t.Context(), NewArchive(p), "data.gz")
	require.NoError(t, err)
	assert.Equal(t, raw, string(data))
}
