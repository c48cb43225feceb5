// Package filter provides ready-made predicates over the three search
// subjects: archive metadata, member paths, and member content. All
// constructors return pure, non-blocking predicates; composition happens with
// [pyzipgrep.AllOf], [pyzipgrep.AnyOf] and [pyzipgrep.NoneOf].
//
// Case sensitivity is a per-filter flag, never global state. Filters whose
// bounds are logically inconsistent fail at construction with
// [pyzipgrep.ErrFilterConfiguration], before any search I/O.
package filter

import (
	"regexp"
	"strings"

	"github.com/yousefabuz17/pyzipgrep"
)

// PathContains matches members whose full normalized path contains the
// pattern as a substring.
func PathContains(pattern string, ignoreCase bool) pyzipgrep.Predicate[pyzipgrep.Member] {
	if ignoreCase {
		pattern = strings.ToLower(pattern)
		return func(m pyzipgrep.Member) bool {
			return strings.Contains(strings.ToLower(string(m)), pattern)
		}
	}

	return func(m pyzipgrep.Member) bool {
		return strings.Contains(string(m), pattern)
	}
}

// NameContains is PathContains over the base name only, with the directory
// portion stripped first.
func NameContains(pattern string, ignoreCase bool) pyzipgrep.Predicate[pyzipgrep.Member] {
	if ignoreCase {
		pattern = strings.ToLower(pattern)
		return func(m pyzipgrep.Member) bool {
			return strings.Contains(strings.ToLower(m.Name()), pattern)
		}
	}

	return func(m pyzipgrep.Member) bool {
		return strings.Contains(m.Name(), pattern)
	}
}

// PathMatches matches members whose full normalized path matches the regular
// expression.
func PathMatches(expr string, ignoreCase bool) (pyzipgrep.Predicate[pyzipgrep.Member], error) {
	rx, err := compile(expr, ignoreCase)
	if err != nil {
		return nil, err
	}

	return func(m pyzipgrep.Member) bool {
		return rx.MatchString(string(m))
	}, nil
}

// NameMatches is PathMatches over the base name only.
func NameMatches(expr string, ignoreCase bool) (pyzipgrep.Predicate[pyzipgrep.Member], error) {
	rx, err := compile(expr, ignoreCase)
	if err != nil {
		return nil, err
	}

	return func(m pyzipgrep.Member) bool {
		return rx.MatchString(m.Name())
	}, nil
}

// Extensions filters members by extension against an include set and an
// exclude set. Extensions normalize to a leading-dot form, lowercased unless
// caseSensitive is set; both "txt" and ".txt" are accepted.
//
// Extensionless members (no dot, or a dotfile like ".env" whose only dot
// leads) participate only via the empty string: they are included only if ""
// is explicitly present in the include set and excluded if "" is explicitly
// present in the exclude set; otherwise they are excluded whenever any
// extension filtering is active. With both sets empty, everything passes.
// With both sets non-empty, a member must satisfy include AND NOT exclude.
func Extensions(include, exclude []string, caseSensitive bool) pyzipgrep.Predicate[pyzipgrep.Member] {
	norm := func(ext string) string {
		if ext == "" {
			return ""
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !caseSensitive {
			ext = strings.ToLower(ext)
		}

		return ext
	}

	inc := make(map[string]struct{}, len(include))
	for _, ext := range include {
		inc[norm(ext)] = struct{}{}
	}
	exc := make(map[string]struct{}, len(exclude))
	for _, ext := range exclude {
		exc[norm(ext)] = struct{}{}
	}

	return func(m pyzipgrep.Member) bool {
		if len(inc) == 0 && len(exc) == 0 {
			return true
		}

		ext := m.Ext()
		if !caseSensitive {
			ext = strings.ToLower(ext)
		}

		if ext == "" {
			if _, banned := exc[""]; banned {
				return false
			}

			_, allowed := inc[""]
			return allowed
		}

		if _, banned := exc[ext]; banned {
			return false
		}
		if len(inc) == 0 {
			return true
		}

		_, allowed := inc[ext]
		return allowed
	}
}

func compile(expr string, ignoreCase bool) (*regexp.Regexp, error) {
	if ignoreCase {
		expr = "(?i)" + expr
	}

	return regexp.Compile(expr)
}
