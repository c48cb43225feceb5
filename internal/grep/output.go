package grep

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/yousefabuz17/pyzipgrep"
)

var (
	archiveColor = color.New(color.FgMagenta)
	memberColor  = color.New(color.FgCyan)
	lineColor    = color.New(color.FgGreen)
	matchColor   = color.New(color.FgRed, color.Bold)
)

// printer renders matches to stdout in the configured format. Writes are
// buffered; flush happens per match so interleaved stderr logs stay readable.
type printer struct {
	format    string
	delim     rune
	highlight *regexp.Regexp
	w         *bufio.Writer
}

func (c *Command) printer() (*printer, error) {
	p := &printer{
		format: c.Format,
		w:      bufio.NewWriter(os.Stdout),
	}

	switch c.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}

	if c.Format == "csv" {
		r, size := utf8.DecodeRuneInString(c.Delimiter)
		if size == 0 || size != len(c.Delimiter) {
			return nil, fmt.Errorf("delimiter must be a single character: %q", c.Delimiter)
		}
		p.delim = r
	}

	if c.Format == "text" && !color.NoColor {
		expr := c.Args.Pattern
		if c.Literal {
			expr = regexp.QuoteMeta(expr)
		}
		if c.IgnoreCase {
			expr = "(?i)" + expr
		}

		// a pattern that compiled for matching compiles here too; the only
		// difference is that literal mode quotes it first.
		rx, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		p.highlight = rx
	}

	return p, nil
}

func (p *printer) print(m pyzipgrep.Match) error {
	var line string
	var err error

	switch p.format {
	case "json":
		line, err = m.JSON()
		line += "\n"
	case "csv":
		line, err = m.DSV(p.delim)
	default:
		line = p.text(m)
	}
	if err != nil {
		return err
	}

	if _, err = p.w.WriteString(line); err != nil {
		return err
	}

	return p.w.Flush()
}

func (p *printer) text(m pyzipgrep.Match) string {
	if color.NoColor || p.highlight == nil {
		return m.String() + "\n"
	}

	text := p.highlight.ReplaceAllStringFunc(m.Text, func(s string) string {
		return matchColor.Sprint(s)
	})

	return fmt.Sprintf("[%s]%s:%s:%s\n",
		archiveColor.Sprint(m.Archive),
		memberColor.Sprint(string(m.Member)),
		lineColor.Sprint(lineField(m)),
		text)
}

func lineField(m pyzipgrep.Match) string {
	if m.Line <= 0 {
		return "-"
	}

	return fmt.Sprintf("%d", m.Line)
}
