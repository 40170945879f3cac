package arch

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/avesus/vtr-verilog-to-routing/internal/diag"
)

// check verifies that the description set every mandatory field and that
// the fields make sense together.
//
// Completeness violations are collected across all fields and reported as
// one batch, so a user sees every missing or duplicated keyword at once.
// The cross-field checks that follow only apply to detailed routing and
// each aborts on its own.
func (ld *Loader) check() hcl.Diagnostics {
	var diags hcl.Diagnostics

	numToCheck := len(keywords)
	if ld.routeType != RouteDetailed {
		numToCheck -= numDetailed
	}

	for _, kw := range keywords[:numToCheck] {
		n := ld.counts[kw]
		switch kw {
		case kwOutpin, kwInpin:
			if n < 1 {
				diags = append(diags, diag.Errf(diag.MissingDeclaration, nil,
					"logic block has %d %s statement(s) in %s", n, kw, ld.file))
			}
		default:
			if n == 0 {
				diags = append(diags, diag.Errf(diag.MissingDeclaration, nil,
					"%s not set in %s", kw, ld.file))
			}
			if n > 1 {
				diags = append(diags, diag.Errf(diag.DuplicateDeclaration, nil,
					"%s set %d times in %s", kw, n, ld.file))
			}
		}
	}
	if diags.HasErrors() {
		return diags
	}

	if ld.routeType != RouteDetailed {
		return nil
	}

	// The routing resource graph generator only handles architectures
	// where every channel has the same width.
	cfg := ld.cfg
	if cfg.ChanX.Kind != ChanUniform || cfg.ChanY.Kind != ChanUniform ||
		cfg.ChanX.Peak != cfg.ChanY.Peak || cfg.ChanX.Peak != cfg.ChanWidthIO {
		return hcl.Diagnostics{diag.Errf(diag.CrossFieldInconsistency, nil,
			"detailed routing requires uniform channels of equal width in %s", ld.file)}
	}

	r := cfg.Routing
	switch r.FcType {
	case FcAbsolute:
		if r.FcOutput < 1 || r.FcInput < 1 || r.FcPad < 1 {
			return hcl.Diagnostics{diag.Errf(diag.CrossFieldInconsistency, nil,
				"Fc values must be >= 1 in absolute mode in %s", ld.file)}
		}
	case FcFractional:
		if r.FcOutput > 1 || r.FcInput > 1 || r.FcPad > 1 {
			return hcl.Diagnostics{diag.Errf(diag.CrossFieldInconsistency, nil,
				"Fc values must be <= 1 in fractional mode in %s", ld.file)}
		}
	}

	return nil
}
