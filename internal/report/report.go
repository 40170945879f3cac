// Package report renders a loaded architecture for human and machine
// consumption. The text echo mirrors the classic arch.echo layout for eyeball
// verification; its exact formatting is not a compatibility contract. The
// JSON form goes through a cty value so tooling gets stable, typed output.
package report

import (
	"fmt"
	"io"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/avesus/vtr-verilog-to-routing/internal/arch"
)

// Echo writes a human-readable dump of the architecture to w.
func Echo(w io.Writer, archFile string, routeType arch.RouteType, cfg *arch.Config) error {
	pw := &printWriter{w: w}

	pw.printf("Architecture file: %s\n\n", archFile)
	pw.printf("io_rat: %d.\n", cfg.IoRat)
	pw.printf("chan_width_io: %g  pins_per_clb: %d\n", cfg.ChanWidthIO, cfg.PinsPerBlock)

	pw.printf("\nchan_width_x:\n")
	echoChan(pw, cfg.ChanX)
	pw.printf("\nchan_width_y:\n")
	echoChan(pw, cfg.ChanY)

	pw.printf("\nPin #\tclass\ttop\tbottom\tleft\tright")
	for pin := 0; pin < cfg.PinsPerBlock; pin++ {
		pw.printf("\n%d\t%d\t", pin, cfg.PinClassOf[pin])
		for s := arch.Side(0); s < arch.NumSides; s++ {
			pw.printf("%d\t", boolBit(cfg.PinLoc[pin].Has(s)))
		}
	}

	pw.printf("\n\nClass\tType\tNumpins\tPins")
	for i, pc := range cfg.Classes {
		pw.printf("\n%d\t%s\t%d\t", i, pc.Kind, len(pc.Pins))
		for _, pin := range pc.Pins {
			pw.printf("%d\t", pin)
		}
	}
	pw.printf("\n\n")

	pw.printf("subblocks_per_cluster (maximum): %d\n", cfg.MaxSubblocksPerBlock)
	pw.printf("subblock_lut_size: %d\n", cfg.SubblockLUTSize)

	if routeType == arch.RouteDetailed {
		r := cfg.Routing
		pw.printf("\n")
		if r.FcType == arch.FcAbsolute {
			pw.printf("Fc value is absolute number of tracks.\n")
		} else {
			pw.printf("Fc value is fraction of tracks in a channel.\n")
		}
		pw.printf("Fc_output: %g.  Fc_input: %g.  Fc_pad: %g.\n",
			r.FcOutput, r.FcInput, r.FcPad)
		pw.printf("switch_block_type: %s.\n", r.SwitchBlockType)
	}

	return pw.err
}

func echoChan(pw *printWriter, d arch.ChanDist) {
	pw.printf("type: %s  peak: %g  width: %g  xpeak: %g  dc: %g\n",
		d.Kind, d.Peak, d.Width, d.Xpeak, d.DC)
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// printWriter latches the first write error so the echo code can stay
// free of per-line error plumbing.
type printWriter struct {
	w   io.Writer
	err error
}

func (pw *printWriter) printf(format string, args ...any) {
	if pw.err != nil {
		return
	}
	_, pw.err = fmt.Fprintf(pw.w, format, args...)
}

// JSON renders the architecture as JSON via a typed cty value.
func JSON(archFile string, routeType arch.RouteType, cfg *arch.Config) ([]byte, error) {
	val := ctyValue(archFile, routeType, cfg)
	out, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, fmt.Errorf("encoding architecture report: %w", err)
	}
	return out, nil
}

func ctyValue(archFile string, routeType arch.RouteType, cfg *arch.Config) cty.Value {
	attrs := map[string]cty.Value{
		"arch_file":             cty.StringVal(archFile),
		"route_type":            cty.StringVal(routeType.String()),
		"io_rat":                cty.NumberIntVal(int64(cfg.IoRat)),
		"chan_width_io":         cty.NumberFloatVal(cfg.ChanWidthIO),
		"chan_width_x":          chanValue(cfg.ChanX),
		"chan_width_y":          chanValue(cfg.ChanY),
		"subblocks_per_cluster": cty.NumberIntVal(int64(cfg.MaxSubblocksPerBlock)),
		"subblock_lut_size":     cty.NumberIntVal(int64(cfg.SubblockLUTSize)),
		"pins_per_clb":          cty.NumberIntVal(int64(cfg.PinsPerBlock)),
		"classes":               classesValue(cfg),
		"pin_locations":         pinLocValue(cfg),
	}

	if routeType == arch.RouteDetailed {
		r := cfg.Routing
		attrs["routing"] = cty.ObjectVal(map[string]cty.Value{
			"fc_type":           cty.StringVal(r.FcType.String()),
			"fc_output":         cty.NumberFloatVal(r.FcOutput),
			"fc_input":          cty.NumberFloatVal(r.FcInput),
			"fc_pad":            cty.NumberFloatVal(r.FcPad),
			"switch_block_type": cty.StringVal(r.SwitchBlockType.String()),
		})
	}

	return cty.ObjectVal(attrs)
}

func chanValue(d arch.ChanDist) cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"type":  cty.StringVal(d.Kind.String()),
		"peak":  cty.NumberFloatVal(d.Peak),
		"width": cty.NumberFloatVal(d.Width),
		"xpeak": cty.NumberFloatVal(d.Xpeak),
		"dc":    cty.NumberFloatVal(d.DC),
	})
}

func classesValue(cfg *arch.Config) cty.Value {
	vals := make([]cty.Value, len(cfg.Classes))
	for i, pc := range cfg.Classes {
		pins := make([]cty.Value, len(pc.Pins))
		for j, pin := range pc.Pins {
			pins[j] = cty.NumberIntVal(int64(pin))
		}
		pinsVal := cty.ListValEmpty(cty.Number)
		if len(pins) > 0 {
			pinsVal = cty.ListVal(pins)
		}
		vals[i] = cty.ObjectVal(map[string]cty.Value{
			"type":     cty.StringVal(pc.Kind.String()),
			"num_pins": cty.NumberIntVal(int64(len(pc.Pins))),
			"pins":     pinsVal,
		})
	}
	if len(vals) == 0 {
		return cty.ListValEmpty(cty.EmptyObject)
	}
	return cty.TupleVal(vals)
}

func pinLocValue(cfg *arch.Config) cty.Value {
	vals := make([]cty.Value, cfg.PinsPerBlock)
	for pin := 0; pin < cfg.PinsPerBlock; pin++ {
		var sides []cty.Value
		for _, s := range cfg.PinLoc[pin].Sides() {
			sides = append(sides, cty.StringVal(s.String()))
		}
		sidesVal := cty.ListValEmpty(cty.String)
		if len(sides) > 0 {
			sidesVal = cty.ListVal(sides)
		}
		vals[pin] = sidesVal
	}
	if len(vals) == 0 {
		return cty.ListValEmpty(cty.List(cty.String))
	}
	return cty.TupleVal(vals)
}
