package pyzipgrep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchContent_LineMode(t *testing.T) {
	chunks := []string{"alpha\nbeta match\r\ngamma\nmatch again\n"}
	pred := Predicate[string](func(s string) bool { return strings.Contains(s, "match") })

	matches := matchContent("a.zip", "f.txt", chunks, pred, true)
	assert.Equal(t, []Match{
		{Archive: "a.zip", Member: "f.txt", Line: 2, Text: "beta match"},
		{Archive: "a.zip", Member: "f.txt", Line: 4, Text: "match again"},
	}, matches)
}

func TestMatchContent_ChunkMode(t *testing.T) {
	chunks := []string{"no hit here", "a match inside", "also match"}
	pred := Predicate[string](func(s string) bool { return strings.Contains(s, "match") })

	matches := matchContent("a.zip", "f.txt", chunks, pred, false)
	assert.Equal(t, []Match{
		{Archive: "a.zip", Member: "f.txt", Text: "a match inside"},
		{Archive: "a.zip", Member: "f.txt", Text: "also match"},
	}, matches)
}

func TestMatchContent_NilPredicate(t *testing.T) {
	matches := matchContent("a.zip", "f.txt", []string{"one\ntwo\n"}, nil, true)
	assert.Len(t, matches, 2, "nil predicate passes every line")
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{name: "trailing newline", content: "a\nb\n", expected: []string{"a", "b"}},
		{name: "no trailing newline", content: "a\nb", expected: []string{"a", "b"}},
		{name: "crlf", content: "a\r\nb\r\n", expected: []string{"a", "b"}},
		{name: "blank interior line", content: "a\n\nb\n", expected: []string{"a", "", "b"}},
		{name: "single line", content: "only", expected: []string{"only"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitLines(tt.content))
		})
	}
}
