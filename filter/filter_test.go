package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yousefabuz17/pyzipgrep"
)

func TestPathAndNameContains(t *testing.T) {
	m := pyzipgrep.Member("src/Main/App.java")

	assert.True(t, PathContains("src/", false)(m))
	assert.False(t, PathContains("SRC/", false)(m))
	assert.True(t, PathContains("SRC/", true)(m))

	assert.True(t, NameContains("App", false)(m))
	assert.False(t, NameContains("Main", false)(m), "name filters never see the directory portion")
	assert.True(t, NameContains("app", true)(m))
}

func TestPathAndNameMatches(t *testing.T) {
	m := pyzipgrep.Member("logs/2024/app.log")

	p, err := PathMatches(`^logs/\d{4}/`, false)
	require.NoError(t, err)
	assert.True(t, p(m))

	p, err = NameMatches(`^APP\.`, true)
	require.NoError(t, err)
	assert.True(t, p(m))

	_, err = PathMatches(`[invalid`, false)
	assert.Error(t, err)
}

func TestExtensions(t *testing.T) {
	tests := []struct {
		name     string
		include  []string
		exclude  []string
		member   pyzipgrep.Member
		expected bool
	}{
		{name: "both empty passes all", member: "a.txt", expected: true},
		{name: "both empty passes extensionless", member: "Makefile", expected: true},
		{name: "include hit", include: []string{".txt"}, member: "a.txt", expected: true},
		{name: "include accepts dotless form", include: []string{"txt"}, member: "a.txt", expected: true},
		{name: "include miss", include: []string{".txt"}, member: "a.log", expected: false},
		{name: "exclude hit", exclude: []string{".log"}, member: "a.log", expected: false},
		{name: "exclude only, others pass", exclude: []string{".log"}, member: "a.txt", expected: true},
		{name: "both sets is include and not exclude", include: []string{".txt", ".log"}, exclude: []string{".log"}, member: "a.log", expected: false},
		{name: "both sets, include survives", include: []string{".txt", ".log"}, exclude: []string{".log"}, member: "a.txt", expected: true},
		{name: "extensionless not swept up by include", include: []string{".txt"}, member: "Makefile", expected: false},
		{name: "extensionless via explicit empty include", include: []string{""}, member: "Makefile", expected: true},
		{name: "dotfile is extensionless", include: []string{""}, member: ".env", expected: true},
		{name: "extensionless via explicit empty exclude", exclude: []string{""}, member: "Makefile", expected: false},
		{name: "case-insensitive by default", include: []string{".TXT"}, member: "a.txt", expected: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Extensions(tt.include, tt.exclude, false)
			assert.Equal(t, tt.expected, p(tt.member))
		})
	}

	t.Run("case-sensitive", func(t *testing.T) {
		p := Extensions([]string{".TXT"}, nil, true)
		assert.False(t, p("a.txt"))
		assert.True(t, p("a.TXT"))
	})
}
