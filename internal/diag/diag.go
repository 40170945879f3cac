// Package diag defines the error taxonomy shared by the architecture
// loader and the grid builder. Every failure is an *hcl.Diagnostic whose
// Extra field carries a Kind, so callers can batch, render and classify
// errors with the standard hcl.Diagnostics machinery instead of a custom
// error tree.
package diag

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// Kind classifies a diagnostic produced while loading an architecture
// description or sizing the device grid.
type Kind int

const (
	// MalformedLine: a token expected by the grammar is missing, a
	// sub-keyword is wrong, or extra tokens trail the last parameter.
	MalformedLine Kind = iota + 1

	// RangeViolation: a numeric value parsed fine but falls outside the
	// declared bound for its field.
	RangeViolation

	// DuplicateDeclaration: a once-only keyword appeared more than once.
	DuplicateDeclaration

	// MissingDeclaration: a mandatory keyword never appeared.
	MissingDeclaration

	// ClassConsistency: non-contiguous class indices, a class mixing
	// driver and receiver pins, or a bad/absent pin location.
	ClassConsistency

	// CrossFieldInconsistency: fields that are individually valid but
	// contradict each other in the requested routing mode.
	CrossFieldInconsistency

	// GridSizing: the device grid cannot be laid out for the circuit.
	GridSizing
)

var kindNames = map[Kind]string{
	MalformedLine:           "malformed line",
	RangeViolation:          "value out of range",
	DuplicateDeclaration:    "duplicate declaration",
	MissingDeclaration:      "missing declaration",
	ClassConsistency:        "pin class inconsistency",
	CrossFieldInconsistency: "inconsistent parameters",
	GridSizing:              "grid sizing failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("diag.Kind(%d)", int(k))
}

// Errf builds an error diagnostic tagged with kind. The subject range may
// be nil for failures that have no source position, such as grid sizing.
func Errf(kind Kind, subject *hcl.Range, format string, args ...any) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  kind.String(),
		Detail:   fmt.Sprintf(format, args...),
		Subject:  subject,
		Extra:    kind,
	}
}

// Pos returns a single-position subject range for the given file and
// 1-based line number.
func Pos(filename string, line int) *hcl.Range {
	p := hcl.Pos{Line: line, Column: 1, Byte: 0}
	return &hcl.Range{Filename: filename, Start: p, End: p}
}

// KindOf reports the Kind a diagnostic was tagged with, if any.
func KindOf(d *hcl.Diagnostic) (Kind, bool) {
	k, ok := d.Extra.(Kind)
	return k, ok
}

// HasKind reports whether any diagnostic in diags carries the given kind.
func HasKind(diags hcl.Diagnostics, kind Kind) bool {
	for _, d := range diags {
		if k, ok := KindOf(d); ok && k == kind {
			return true
		}
	}
	return false
}
