package pyzipgrep

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Match is one reported hit. It is immutable once produced; downstream
// consumers may reformat it but never mutate the stream.
type Match struct {
	// Archive identifies the containing archive. For matches found inside
	// nested archives the identity resolves through each level, e.g.
	// "outer.zip!inner.zip".
	Archive string `json:"archive"`

	// Member is the slash-normalized path of the matching entry within the
	// archive.
	Member Member `json:"member"`

	// Line is the 1-based line number of the match. Zero means the content
	// was not line-split (bounded-chunk mode) and no line attribution exists.
	Line int `json:"line,omitempty"`

	// Text is the matched line, or the whole matching chunk in bounded-chunk
	// mode.
	Text string `json:"text"`
}

// String renders the match in zipgrep-like form: [archive]member:line:text.
// A missing line number is rendered as "-".
func (m Match) String() string {
	return fmt.Sprintf("[%s]%s:%s:%s", m.Archive, m.Member, m.lineField(), m.Text)
}

// JSON renders the match as a single JSON object.
func (m Match) JSON() (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Fields returns the match as its four projection fields in order: archive,
// member, line (empty-padded "-" when absent) and text.
func (m Match) Fields() []string {
	return []string{m.Archive, string(m.Member), m.lineField(), m.Text}
}

// DSV renders the match as one delimiter-separated record terminated by "\n".
// Fields containing the delimiter, quotes or newlines are quoted per RFC 4180
// so embedded delimiters never break the record structure.
func (m Match) DSV(sep rune) (string, error) {
	var sb strings.Builder

	w := csv.NewWriter(&sb)
	w.Comma = sep
	if err := w.Write(m.Fields()); err != nil {
		return "", err
	}

	w.Flush()
	return sb.String(), w.Error()
}

func (m Match) lineField() string {
	if m.Line <= 0 {
		return "-"
	}

	return strconv.Itoa(m.Line)
}
