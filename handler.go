package pyzipgrep

import "strings"

// matchContent applies the content predicate to a member's decoded chunks and
// produces the resulting matches in order.
//
// In whole-file mode (lineMode true) each chunk is split into lines and every
// matching line yields a Match with a real 1-based line number. In
// bounded-chunk mode the predicate sees the chunk as a whole and a matching
// chunk yields a single Match with no line attribution; per-line attribution
// across chunk boundaries is a known limitation.
//
// A nil predicate passes everything.
func matchContent(archive string, member Member, chunks []string, pred Predicate[string], lineMode bool) []Match {
	var matches []Match

	if !lineMode {
		for _, chunk := range chunks {
			if pred == nil || pred(chunk) {
				matches = append(matches, Match{Archive: archive, Member: member, Text: chunk})
			}
		}

		return matches
	}

	for _, chunk := range chunks {
		for i, line := range splitLines(chunk) {
			if pred == nil || pred(line) {
				matches = append(matches, Match{Archive: archive, Member: member, Line: i + 1, Text: line})
			}
		}
	}

	return matches
}

// splitLines splits on "\n", tolerating "\r\n" endings. A trailing newline
// does not produce a phantom empty final line.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
