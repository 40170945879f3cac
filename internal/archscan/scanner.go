// Package archscan turns a raw architecture description file into a stream
// of logical lines. A # anywhere starts a comment running to the end of the
// physical line, and a trailing \ joins the next physical line onto the
// current logical one. Fields are split on spaces and tabs.
//
// The loader in the arch package runs its count and load passes over the
// slice returned here, so the file is read exactly once.
package archscan

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Line is one logical line of the architecture file after comment
// stripping and continuation joining.
type Line struct {
	// Fields are the whitespace-separated words of the logical line,
	// in file order. Never empty: blank lines are dropped by Scan.
	Fields []string

	// Num is the 1-based physical line number where the logical line
	// starts, for diagnostics.
	Num int
}

// Keyword returns the leading word of the line.
func (l Line) Keyword() string {
	return l.Fields[0]
}

// Scan reads the whole input and returns its non-empty logical lines.
func Scan(r io.Reader) ([]Line, error) {
	var (
		lines   []Line
		pending []string
		start   int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	num := 0
	for sc.Scan() {
		num++
		text := sc.Text()

		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		text = strings.TrimRight(text, " \t\r")
		continued := strings.HasSuffix(text, `\`)
		if continued {
			text = text[:len(text)-1]
		}

		fields := strings.Fields(text)
		if len(pending) == 0 && len(fields) > 0 {
			start = num
		}
		pending = append(pending, fields...)

		if continued {
			continue
		}
		if len(pending) > 0 {
			lines = append(lines, Line{Fields: pending, Num: start})
			pending = nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading architecture file: %w", err)
	}

	// A continuation on the final physical line still ends the logical line.
	if len(pending) > 0 {
		lines = append(lines, Line{Fields: pending, Num: start})
	}

	return lines, nil
}
