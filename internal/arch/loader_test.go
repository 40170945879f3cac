package arch

import (
	"context"
	"strings"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avesus/vtr-verilog-to-routing/internal/diag"
)

// minimalGlobal is a smallest valid description for global routing: every
// mandatory field once, one driver class and one receiver class.
var minimalGlobal = []string{
	"io_rat 2",
	"chan_width_io 1",
	"chan_width_x uniform 1",
	"chan_width_y uniform 1",
	"outpin class: 0 top",
	"inpin class: 1 bottom left",
	"inpin class: 1 right",
	"subblocks_per_cluster 1",
	"subblock_lut_size 4",
}

var detailedExtra = []string{
	"Fc_output 1",
	"Fc_input 1",
	"Fc_pad 1",
	"Fc_type absolute",
	"switch_block_type subset",
}

func archText(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func loadArch(t *testing.T, text string, routeType RouteType) (*Config, hcl.Diagnostics) {
	t.Helper()
	return Load(context.Background(), "test.arch", strings.NewReader(text), routeType)
}

// without drops the line starting with the given keyword.
func without(lines []string, kw string) []string {
	var out []string
	for _, l := range lines {
		if !strings.HasPrefix(l, kw+" ") {
			out = append(out, l)
		}
	}
	return out
}

// replace swaps the line starting with kw for repl.
func replace(lines []string, kw, repl string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if strings.HasPrefix(l, kw+" ") {
			out[i] = repl
		} else {
			out[i] = l
		}
	}
	return out
}

func TestLoadMinimalGlobal(t *testing.T) {
	cfg, diags := loadArch(t, archText(minimalGlobal...), RouteGlobal)
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Error())
	require.NotNil(t, cfg)

	assert.Equal(t, 2, cfg.IoRat)
	assert.Equal(t, 1.0, cfg.ChanWidthIO)
	assert.Equal(t, ChanUniform, cfg.ChanX.Kind)
	assert.Equal(t, 1.0, cfg.ChanX.Peak)
	assert.Equal(t, ChanUniform, cfg.ChanY.Kind)
	assert.Equal(t, 1, cfg.MaxSubblocksPerBlock)
	assert.Equal(t, 4, cfg.SubblockLUTSize)

	require.Len(t, cfg.Classes, 2)
	assert.Equal(t, PinDriver, cfg.Classes[0].Kind)
	assert.Equal(t, []int{0}, cfg.Classes[0].Pins)
	assert.Equal(t, PinReceiver, cfg.Classes[1].Kind)
	assert.Equal(t, []int{1, 2}, cfg.Classes[1].Pins)

	assert.Equal(t, 3, cfg.PinsPerBlock)
	assert.Equal(t, []int{0, 1, 1}, cfg.PinClassOf)

	assert.True(t, cfg.PinLoc[0].Has(SideTop))
	assert.False(t, cfg.PinLoc[0].Has(SideBottom))
	assert.True(t, cfg.PinLoc[1].Has(SideBottom))
	assert.True(t, cfg.PinLoc[1].Has(SideLeft))
	assert.True(t, cfg.PinLoc[2].Has(SideRight))
}

func TestLoadDetailed(t *testing.T) {
	text := archText(append(append([]string{}, minimalGlobal...), detailedExtra...)...)
	cfg, diags := loadArch(t, text, RouteDetailed)
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Error())

	assert.Equal(t, FcAbsolute, cfg.Routing.FcType)
	assert.Equal(t, 1.0, cfg.Routing.FcOutput)
	assert.Equal(t, 1.0, cfg.Routing.FcInput)
	assert.Equal(t, 1.0, cfg.Routing.FcPad)
	assert.Equal(t, SwitchSubset, cfg.Routing.SwitchBlockType)
}

// Loading the same description twice must give the same result: each Load
// starts from a fresh loader context.
func TestLoadIsRepeatable(t *testing.T) {
	text := archText(minimalGlobal...)
	for i := 0; i < 2; i++ {
		cfg, diags := loadArch(t, text, RouteGlobal)
		require.False(t, diags.HasErrors())
		assert.Len(t, cfg.Classes, 2)
	}
}

func TestLoadUnknownKeywordIgnored(t *testing.T) {
	lines := append([]string{"wire_segment_length 4", "rocket thruster"}, minimalGlobal...)
	cfg, diags := loadArch(t, archText(lines...), RouteGlobal)
	require.False(t, diags.HasErrors())
	assert.Len(t, cfg.Classes, 2)
}

func TestLoadClassGap(t *testing.T) {
	gapped := []string{
		"io_rat 2",
		"chan_width_io 1",
		"chan_width_x uniform 1",
		"chan_width_y uniform 1",
		"outpin class: 0 top",
		"inpin class: 2 bottom",
		"subblocks_per_cluster 1",
		"subblock_lut_size 4",
	}
	cfg, diags := loadArch(t, archText(gapped...), RouteGlobal)
	assert.Nil(t, cfg)
	require.True(t, diags.HasErrors())
	assert.True(t, diag.HasKind(diags, diag.ClassConsistency))
	assert.Contains(t, diags[0].Detail, "class index 1")
}

func TestLoadMixedClass(t *testing.T) {
	testCases := []struct {
		name  string
		first string
		then  string
	}{
		{"driver first", "outpin class: 0 top", "inpin class: 0 bottom"},
		{"receiver first", "inpin class: 0 top", "outpin class: 0 bottom"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lines := []string{
				"io_rat 2",
				"chan_width_io 1",
				"chan_width_x uniform 1",
				"chan_width_y uniform 1",
				tc.first,
				tc.then,
				"subblocks_per_cluster 1",
				"subblock_lut_size 4",
			}
			_, diags := loadArch(t, archText(lines...), RouteGlobal)
			require.True(t, diags.HasErrors())
			assert.True(t, diag.HasKind(diags, diag.ClassConsistency))
			assert.Contains(t, diags[0].Detail, "both input and output pins")
		})
	}
}

func TestLoadPinLineErrors(t *testing.T) {
	testCases := []struct {
		name     string
		pinLine  string
		kind     diag.Kind
		fragment string
	}{
		{"missing class keyword", "inpin 0 top", diag.MalformedLine, "class:"},
		{"missing class number", "inpin class:", diag.MalformedLine, "class number"},
		{"negative class", "inpin class: -1 top", diag.MalformedLine, "-1"},
		{"non-numeric class", "inpin class: one top", diag.MalformedLine, "one"},
		{"no locations", "inpin class: 1 ", diag.ClassConsistency, "no locations"},
		{"bad location", "inpin class: 1 middle", diag.ClassConsistency, "middle"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Both inpin lines get the variant; the first one fails.
			lines := replace(minimalGlobal, "inpin", tc.pinLine)
			_, diags := loadArch(t, archText(lines...), RouteGlobal)
			require.True(t, diags.HasErrors())
			assert.True(t, diag.HasKind(diags, tc.kind), "diags: %s", diags.Error())
			assert.Contains(t, diags[0].Detail, tc.fragment)
		})
	}
}

func TestLoadDuplicateSidesHarmless(t *testing.T) {
	lines := replace(minimalGlobal, "outpin", "outpin class: 0 top top top")
	cfg, diags := loadArch(t, archText(lines...), RouteGlobal)
	require.False(t, diags.HasErrors())
	assert.Equal(t, []Side{SideTop}, cfg.PinLoc[0].Sides())
}

func TestLoadScalarFieldErrors(t *testing.T) {
	testCases := []struct {
		name string
		kw   string
		line string
		kind diag.Kind
	}{
		{"io_rat zero", "io_rat", "io_rat 0", diag.RangeViolation},
		{"io_rat negative", "io_rat", "io_rat -3", diag.RangeViolation},
		{"io_rat not a number", "io_rat", "io_rat two", diag.MalformedLine},
		{"io_rat missing value", "io_rat", "io_rat", diag.MalformedLine},
		{"io_rat trailing token", "io_rat", "io_rat 2 3", diag.MalformedLine},
		{"chan_width_io zero", "chan_width_io", "chan_width_io 0", diag.RangeViolation},
		{"chan_width_io too big", "chan_width_io", "chan_width_io 5000.5", diag.RangeViolation},
		{"chan_width_io trailing token", "chan_width_io", "chan_width_io 1 x", diag.MalformedLine},
		{"subblock_lut_size zero", "subblock_lut_size", "subblock_lut_size 0", diag.RangeViolation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lines := replace(minimalGlobal, tc.kw, tc.line)
			_, diags := loadArch(t, archText(lines...), RouteGlobal)
			require.True(t, diags.HasErrors())
			assert.True(t, diag.HasKind(diags, tc.kind), "diags: %s", diags.Error())
		})
	}
}

func TestLoadClosedBoundAccepted(t *testing.T) {
	lines := replace(minimalGlobal, "chan_width_io", "chan_width_io 5000")
	cfg, diags := loadArch(t, archText(lines...), RouteGlobal)
	require.False(t, diags.HasErrors())
	assert.Equal(t, 5000.0, cfg.ChanWidthIO)
}

func TestLoadDiagnosticPosition(t *testing.T) {
	lines := replace(minimalGlobal, "io_rat", "io_rat 0")
	_, diags := loadArch(t, archText(lines...), RouteGlobal)
	require.True(t, diags.HasErrors())
	require.NotNil(t, diags[0].Subject)
	assert.Equal(t, "test.arch", diags[0].Subject.Filename)
	assert.Equal(t, 1, diags[0].Subject.Start.Line)
}
