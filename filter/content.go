package filter

import (
	"strings"

	"github.com/yousefabuz17/pyzipgrep"
)

// Contains matches content containing the literal pattern.
func Contains(pattern string, ignoreCase bool) pyzipgrep.Predicate[string] {
	if ignoreCase {
		pattern = strings.ToLower(pattern)
		return func(content string) bool {
			return strings.Contains(strings.ToLower(content), pattern)
		}
	}

	return func(content string) bool {
		return strings.Contains(content, pattern)
	}
}

// Matches matches content against a regular expression.
func Matches(expr string, ignoreCase bool) (pyzipgrep.Predicate[string], error) {
	rx, err := compile(expr, ignoreCase)
	if err != nil {
		return nil, err
	}

	return rx.MatchString, nil
}
