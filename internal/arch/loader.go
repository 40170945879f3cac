// Package arch loads the architecture description of an FPGA.
//
// The description is a line-oriented text format: one keyword per logical
// line followed by its parameters. Loading is a strictly sequential batch:
// a count pass sizes the pin class table, a load pass dispatches every
// recognized keyword to its handler, and a final check enforces
// completeness and cross-field consistency. Any violation is reported as
// hcl.Diagnostics tagged with a diag.Kind; the caller decides what to do
// with them. Unrecognized keywords are skipped, which lets newer
// architecture files work with this loader.
package arch

import (
	"context"
	"io"

	"github.com/hashicorp/hcl/v2"

	"github.com/avesus/vtr-verilog-to-routing/internal/archscan"
	"github.com/avesus/vtr-verilog-to-routing/internal/ctxlog"
	"github.com/avesus/vtr-verilog-to-routing/internal/diag"
)

// The recognized keywords, in the order completeness violations are
// reported. The last numDetailed entries are mandatory only for detailed
// routing.
const (
	kwIoRat               = "io_rat"
	kwChanWidthX          = "chan_width_x"
	kwChanWidthY          = "chan_width_y"
	kwChanWidthIO         = "chan_width_io"
	kwOutpin              = "outpin"
	kwInpin               = "inpin"
	kwSubblocksPerCluster = "subblocks_per_cluster"
	kwSubblockLUTSize     = "subblock_lut_size"
	kwFcOutput            = "Fc_output"
	kwFcInput             = "Fc_input"
	kwFcPad               = "Fc_pad"
	kwFcType              = "Fc_type"
	kwSwitchBlockType     = "switch_block_type"
)

var keywords = [...]string{
	kwIoRat, kwChanWidthX, kwChanWidthY, kwChanWidthIO, kwOutpin, kwInpin,
	kwSubblocksPerCluster, kwSubblockLUTSize,
	kwFcOutput, kwFcInput, kwFcPad, kwFcType, kwSwitchBlockType,
}

const numDetailed = 5

// Loader is the context for one load. It owns all mutable state while the
// passes run; a second load needs a fresh Loader, which Load arranges.
type Loader struct {
	file      string
	routeType RouteType
	lines     []archscan.Line

	counts map[string]int // keyword occurrences, drives the completeness check
	pinNum int            // next global pin number during the load pass
	cfg    *Config
}

// Load reads and validates an architecture description. filename is used
// for diagnostic positions only. On any error the returned config is nil
// and the diagnostics carry the failure, tagged with its diag.Kind.
func Load(ctx context.Context, filename string, r io.Reader, routeType RouteType) (*Config, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	lines, err := archscan.Scan(r)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "unreadable architecture file",
			Detail:   err.Error(),
		}}
	}
	logger.Debug("architecture file scanned", "file", filename, "logical_lines", len(lines))

	ld := &Loader{
		file:      filename,
		routeType: routeType,
		lines:     lines,
		counts:    make(map[string]int),
		cfg:       &Config{},
	}

	if diags := ld.countPass(); diags.HasErrors() {
		return nil, diags
	}
	logger.Debug("count pass complete",
		"classes", len(ld.cfg.Classes), "pins_per_block", ld.cfg.PinsPerBlock)

	if diags := ld.loadPass(ctx); diags.HasErrors() {
		return nil, diags
	}

	if diags := ld.check(); diags.HasErrors() {
		return nil, diags
	}
	logger.Info("architecture loaded", "file", filename,
		"route_type", routeType.String(), "classes", len(ld.cfg.Classes))

	return ld.cfg, nil
}

// countPass scans every line to count pin classes and their pins so the
// class table can be sized exactly before the load pass fills it in.
func (ld *Loader) countPass() hcl.Diagnostics {
	pinsPerClass := make([]int, 1) // class 0 must always exist

	for _, line := range ld.lines {
		kw := line.Keyword()
		if kw != kwInpin && kw != kwOutpin {
			continue
		}
		c := ld.cursor(line)
		class, d := classIndex(&c)
		if d != nil {
			return hcl.Diagnostics{d}
		}
		for len(pinsPerClass) <= class {
			pinsPerClass = append(pinsPerClass, 0)
		}
		pinsPerClass[class]++
	}

	for i, n := range pinsPerClass {
		if n == 0 {
			return hcl.Diagnostics{diag.Errf(diag.ClassConsistency, nil,
				"class index %d not used in %s: specified class indices are not consecutive",
				i, ld.file)}
		}
	}

	// Counts are final; freeze the class table at its exact size.
	total := 0
	ld.cfg.Classes = make([]PinClass, len(pinsPerClass))
	for i, n := range pinsPerClass {
		ld.cfg.Classes[i] = PinClass{Kind: PinUnset, Pins: make([]int, 0, n)}
		total += n
	}
	ld.cfg.PinsPerBlock = total
	ld.cfg.PinClassOf = make([]int, total)
	ld.cfg.PinLoc = make([]SideMask, total)
	return nil
}

// loadPass re-scans the lines and dispatches each recognized keyword to
// its handler. The first failing handler aborts the pass.
func (ld *Loader) loadPass(ctx context.Context) hcl.Diagnostics {
	logger := ctxlog.FromContext(ctx)

	for _, line := range ld.lines {
		var diags hcl.Diagnostics

		switch kw := line.Keyword(); kw {
		case kwIoRat:
			ld.cfg.IoRat, diags = ld.readIntField(line, kw)
		case kwChanWidthX:
			diags = ld.readChan(line, kw, &ld.cfg.ChanX)
		case kwChanWidthY:
			diags = ld.readChan(line, kw, &ld.cfg.ChanY)
		case kwChanWidthIO:
			ld.cfg.ChanWidthIO, diags = ld.readFloatField(line, kw, 0, 5000)
		case kwOutpin:
			diags = ld.readPin(line, kw, PinDriver)
		case kwInpin:
			diags = ld.readPin(line, kw, PinReceiver)
		case kwSubblocksPerCluster:
			ld.cfg.MaxSubblocksPerBlock, diags = ld.readIntField(line, kw)
		case kwSubblockLUTSize:
			ld.cfg.SubblockLUTSize, diags = ld.readIntField(line, kw)
		case kwFcOutput:
			ld.cfg.Routing.FcOutput, diags = ld.readFloatField(line, kw, 0, 1e20)
		case kwFcInput:
			ld.cfg.Routing.FcInput, diags = ld.readFloatField(line, kw, 0, 1e20)
		case kwFcPad:
			ld.cfg.Routing.FcPad, diags = ld.readFloatField(line, kw, 0, 1e20)
		case kwFcType:
			diags = ld.readFcType(line)
		case kwSwitchBlockType:
			diags = ld.readSwitchBlockType(line)
		default:
			// Lenient by contract: unknown keywords are skipped so older
			// tools keep working with newer architecture files.
			logger.Debug("ignoring unrecognized keyword",
				"keyword", kw, "line", line.Num)
		}

		if diags.HasErrors() {
			return diags
		}
	}
	return nil
}
