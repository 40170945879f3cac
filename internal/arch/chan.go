package arch

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/avesus/vtr-verilog-to-routing/internal/archscan"
	"github.com/avesus/vtr-verilog-to-routing/internal/diag"
)

// chanLowZero is the lower bound for xpeak and dc values. Sitting just
// below zero, it admits 0 itself while the > comparison still rejects
// anything negative.
const chanLowZero = -1e-30

// readChan parses a channel width distribution line:
//
//	chan_width_x uniform <peak>
//	chan_width_x delta <peak> <xpeak> <dc>
//	chan_width_x {gaussian|pulse} <peak> <width> <xpeak> <dc>
//
// and likewise for chan_width_y.
func (ld *Loader) readChan(line archscan.Line, kw string, dest *ChanDist) hcl.Diagnostics {
	c := ld.cursor(line)

	shape, ok := c.next()
	if !ok {
		return hcl.Diagnostics{diag.Errf(diag.MalformedLine, c.pos(),
			"missing %s value on line %d", kw, line.Num)}
	}

	read := func(field string, low, high float64) (float64, hcl.Diagnostics) {
		v, d := getFloat(&c, field, low, high)
		if d != nil {
			return 0, hcl.Diagnostics{d}
		}
		return v, nil
	}

	switch shape {
	case "uniform":
		peak, diags := read(kw+" peak", 0, 1)
		if diags.HasErrors() {
			return diags
		}
		*dest = ChanDist{Kind: ChanUniform, Peak: peak}

	case "delta":
		peak, diags := read(kw+" peak", -1e5, 1e5)
		if diags.HasErrors() {
			return diags
		}
		xpeak, diags := read(kw+" xpeak", chanLowZero, 1)
		if diags.HasErrors() {
			return diags
		}
		dc, diags := read(kw+" dc", chanLowZero, 1)
		if diags.HasErrors() {
			return diags
		}
		*dest = ChanDist{Kind: ChanDelta, Peak: peak, Xpeak: xpeak, DC: dc}

	case "gaussian", "pulse":
		kind := ChanGaussian
		if shape == "pulse" {
			kind = ChanPulse
		}
		peak, diags := read(kw+" peak", -1, 1)
		if diags.HasErrors() {
			return diags
		}
		width, diags := read(kw+" width", 0, 1e10)
		if diags.HasErrors() {
			return diags
		}
		xpeak, diags := read(kw+" xpeak", chanLowZero, 1)
		if diags.HasErrors() {
			return diags
		}
		dc, diags := read(kw+" dc", chanLowZero, 1)
		if diags.HasErrors() {
			return diags
		}
		*dest = ChanDist{Kind: kind, Peak: peak, Width: width, Xpeak: xpeak, DC: dc}

	default:
		return hcl.Diagnostics{diag.Errf(diag.MalformedLine, c.pos(),
			"%s distribution keyword %q unknown", kw, shape)}
	}

	if d := c.expectEnd(kw); d != nil {
		return hcl.Diagnostics{d}
	}

	ld.counts[kw]++
	return nil
}
