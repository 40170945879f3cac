package arch

import (
	"strconv"

	"github.com/hashicorp/hcl/v2"

	"github.com/avesus/vtr-verilog-to-routing/internal/archscan"
	"github.com/avesus/vtr-verilog-to-routing/internal/diag"
)

// cursor walks the fields of one logical line after its keyword.
type cursor struct {
	file string
	line archscan.Line
	idx  int // next field to consume; 0 is the keyword itself
}

func (ld *Loader) cursor(line archscan.Line) cursor {
	return cursor{file: ld.file, line: line, idx: 1}
}

func (c *cursor) next() (string, bool) {
	if c.idx >= len(c.line.Fields) {
		return "", false
	}
	word := c.line.Fields[c.idx]
	c.idx++
	return word, true
}

func (c *cursor) pos() *hcl.Range {
	return diag.Pos(c.file, c.line.Num)
}

// expectEnd fails if any token remains after the last expected parameter.
func (c *cursor) expectEnd(field string) *hcl.Diagnostic {
	if c.idx < len(c.line.Fields) {
		return diag.Errf(diag.MalformedLine, c.pos(),
			"extra characters at end of %s line %d", field, c.line.Num)
	}
	return nil
}

// getInt consumes the next token as an integer strictly greater than zero.
func getInt(c *cursor, field string) (int, *hcl.Diagnostic) {
	word, ok := c.next()
	if !ok {
		return 0, diag.Errf(diag.MalformedLine, c.pos(),
			"missing %s value on line %d", field, c.line.Num)
	}
	val, err := strconv.Atoi(word)
	if err != nil {
		return 0, diag.Errf(diag.MalformedLine, c.pos(),
			"bad %s value %q on line %d: not an integer", field, word, c.line.Num)
	}
	if val <= 0 {
		return 0, diag.Errf(diag.RangeViolation, c.pos(),
			"bad value: %s = %d on line %d, must be greater than zero", field, val, c.line.Num)
	}
	return val, nil
}

// getFloat consumes the next token as a float v with low < v <= high.
func getFloat(c *cursor, field string, low, high float64) (float64, *hcl.Diagnostic) {
	word, ok := c.next()
	if !ok {
		return 0, diag.Errf(diag.MalformedLine, c.pos(),
			"missing %s value on line %d", field, c.line.Num)
	}
	val, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return 0, diag.Errf(diag.MalformedLine, c.pos(),
			"bad %s value %q on line %d: not a number", field, word, c.line.Num)
	}
	if val <= low || val > high {
		return 0, diag.Errf(diag.RangeViolation, c.pos(),
			"bad value parsing %s: %g on line %d", field, val, c.line.Num)
	}
	return val, nil
}

// readIntField parses a "keyword <int>" line and bumps the keyword's
// occurrence counter on success.
func (ld *Loader) readIntField(line archscan.Line, kw string) (int, hcl.Diagnostics) {
	c := ld.cursor(line)
	val, d := getInt(&c, kw)
	if d != nil {
		return 0, hcl.Diagnostics{d}
	}
	if d := c.expectEnd(kw); d != nil {
		return 0, hcl.Diagnostics{d}
	}
	ld.counts[kw]++
	return val, nil
}

// readFloatField parses a "keyword <float>" line with the given bounds and
// bumps the keyword's occurrence counter on success.
func (ld *Loader) readFloatField(line archscan.Line, kw string, low, high float64) (float64, hcl.Diagnostics) {
	c := ld.cursor(line)
	val, d := getFloat(&c, kw, low, high)
	if d != nil {
		return 0, hcl.Diagnostics{d}
	}
	if d := c.expectEnd(kw); d != nil {
		return 0, hcl.Diagnostics{d}
	}
	ld.counts[kw]++
	return val, nil
}
