package arch

import (
	"strconv"

	"github.com/hashicorp/hcl/v2"

	"github.com/avesus/vtr-verilog-to-routing/internal/archscan"
	"github.com/avesus/vtr-verilog-to-routing/internal/diag"
)

// classIndex consumes the "class: <int>" prefix that follows the inpin or
// outpin keyword and returns the class number.
func classIndex(c *cursor) (int, *hcl.Diagnostic) {
	word, ok := c.next()
	if !ok || word != "class:" {
		return 0, diag.Errf(diag.MalformedLine, c.pos(),
			"expected class: keyword on line %d", c.line.Num)
	}

	word, ok = c.next()
	if !ok {
		return 0, diag.Errf(diag.MalformedLine, c.pos(),
			"expected class number on line %d", c.line.Num)
	}
	class, err := strconv.Atoi(word)
	if err != nil {
		return 0, diag.Errf(diag.MalformedLine, c.pos(),
			"bad class number %q on line %d", word, c.line.Num)
	}
	if class < 0 {
		return 0, diag.Errf(diag.MalformedLine, c.pos(),
			"expected class number >= 0, got %d on line %d", class, c.line.Num)
	}
	return class, nil
}

// readPin parses one inpin or outpin line during the load pass. kind is
// PinReceiver for inpin and PinDriver for outpin. The class table has
// already been sized by the count pass, so the class index is in range.
func (ld *Loader) readPin(line archscan.Line, kw string, kind PinKind) hcl.Diagnostics {
	c := ld.cursor(line)

	class, d := classIndex(&c)
	if d != nil {
		return hcl.Diagnostics{d}
	}

	pc := &ld.cfg.Classes[class]
	if pc.Kind == PinUnset {
		pc.Kind = kind
	} else if pc.Kind != kind {
		return hcl.Diagnostics{diag.Errf(diag.ClassConsistency, c.pos(),
			"class %d contains both input and output pins (line %d)", class, line.Num)}
	}

	pin := ld.pinNum
	pc.Pins = append(pc.Pins, pin)
	ld.cfg.PinClassOf[pin] = class

	word, ok := c.next()
	if !ok {
		return hcl.Diagnostics{diag.Errf(diag.ClassConsistency, c.pos(),
			"pin statement specifies no locations on line %d", line.Num)}
	}
	for {
		side, valid := sideByName(word)
		if !valid {
			return hcl.Diagnostics{diag.Errf(diag.ClassConsistency, c.pos(),
				"bad pin location %q on line %d", word, line.Num)}
		}
		ld.cfg.PinLoc[pin].Add(side)
		if word, ok = c.next(); !ok {
			break
		}
	}

	ld.counts[kw]++
	ld.pinNum++
	return nil
}
