package arch

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/avesus/vtr-verilog-to-routing/internal/archscan"
	"github.com/avesus/vtr-verilog-to-routing/internal/diag"
)

// readFcType parses "Fc_type {absolute|fractional}".
func (ld *Loader) readFcType(line archscan.Line) hcl.Diagnostics {
	c := ld.cursor(line)

	word, ok := c.next()
	if !ok {
		return hcl.Diagnostics{diag.Errf(diag.MalformedLine, c.pos(),
			"missing %s value on line %d", kwFcType, line.Num)}
	}
	switch word {
	case "absolute":
		ld.cfg.Routing.FcType = FcAbsolute
	case "fractional":
		ld.cfg.Routing.FcType = FcFractional
	default:
		return hcl.Diagnostics{diag.Errf(diag.MalformedLine, c.pos(),
			"bad %s value %q on line %d", kwFcType, word, line.Num)}
	}

	if d := c.expectEnd(kwFcType); d != nil {
		return hcl.Diagnostics{d}
	}
	ld.counts[kwFcType]++
	return nil
}

// readSwitchBlockType parses "switch_block_type {subset|wilton|universal}".
func (ld *Loader) readSwitchBlockType(line archscan.Line) hcl.Diagnostics {
	c := ld.cursor(line)

	word, ok := c.next()
	if !ok {
		return hcl.Diagnostics{diag.Errf(diag.MalformedLine, c.pos(),
			"missing %s value on line %d", kwSwitchBlockType, line.Num)}
	}
	switch word {
	case "subset":
		ld.cfg.Routing.SwitchBlockType = SwitchSubset
	case "wilton":
		ld.cfg.Routing.SwitchBlockType = SwitchWilton
	case "universal":
		ld.cfg.Routing.SwitchBlockType = SwitchUniversal
	default:
		return hcl.Diagnostics{diag.Errf(diag.MalformedLine, c.pos(),
			"bad %s value %q on line %d", kwSwitchBlockType, word, line.Num)}
	}

	if d := c.expectEnd(kwSwitchBlockType); d != nil {
		return hcl.Diagnostics{d}
	}
	ld.counts[kwSwitchBlockType]++
	return nil
}
