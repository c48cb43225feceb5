// Package internal holds shared CLI plumbing: prefix loggers, progress bars
// and string helpers.
package internal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Prefix creates a consistent log prefix for per-archive messages.
//
// i and n are the zero-based ordinal and expected count.
func Prefix(i, n int, name string) string {
	return fmt.Sprintf(`[%d/%d] "%s" - `, i+1, n, TruncateRightWithSuffix(filepath.Base(name), 30, "..."))
}

// NewLogger returns a stderr logger carrying the [Prefix] for one archive.
func NewLogger(i, n int, name string) *log.Logger {
	return log.New(os.Stderr, Prefix(i, n, name), 0)
}
