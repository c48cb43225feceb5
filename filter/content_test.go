package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	assert.True(t, Contains("ERROR", false)("2024: ERROR disk full"))
	assert.False(t, Contains("ERROR", false)("2024: error disk full"))
	assert.True(t, Contains("ERROR", true)("2024: error disk full"))

	// literal, never regex: metacharacters match themselves.
	assert.True(t, Contains("a.b", false)("xa.bx"))
	assert.False(t, Contains("a.b", false)("xaxbx"))
}

func TestMatches(t *testing.T) {
	p, err := Matches(`err(or)?\b`, false)
	require.NoError(t, err)
	assert.True(t, p("an err occurred"))
	assert.True(t, p("an error occurred"))
	assert.False(t, p("an ERROR occurred"))

	p, err = Matches(`^warn:`, true)
	require.NoError(t, err)
	assert.True(t, p("WARN: low disk"))

	_, err = Matches(`(`, false)
	assert.Error(t, err)
}
