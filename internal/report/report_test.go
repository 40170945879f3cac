package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avesus/vtr-verilog-to-routing/internal/arch"
)

func sampleConfig() *arch.Config {
	cfg := &arch.Config{
		IoRat:                2,
		ChanWidthIO:          1,
		ChanX:                arch.ChanDist{Kind: arch.ChanUniform, Peak: 1},
		ChanY:                arch.ChanDist{Kind: arch.ChanUniform, Peak: 1},
		MaxSubblocksPerBlock: 1,
		SubblockLUTSize:      4,
		Routing: arch.RoutingArch{
			FcType:          arch.FcAbsolute,
			FcOutput:        1,
			FcInput:         1,
			FcPad:           1,
			SwitchBlockType: arch.SwitchWilton,
		},
		Classes: []arch.PinClass{
			{Kind: arch.PinDriver, Pins: []int{0}},
			{Kind: arch.PinReceiver, Pins: []int{1, 2}},
		},
		PinClassOf:   []int{0, 1, 1},
		PinLoc:       make([]arch.SideMask, 3),
		PinsPerBlock: 3,
	}
	cfg.PinLoc[0].Add(arch.SideTop)
	cfg.PinLoc[1].Add(arch.SideBottom)
	cfg.PinLoc[1].Add(arch.SideLeft)
	cfg.PinLoc[2].Add(arch.SideRight)
	return cfg
}

func TestEchoGlobal(t *testing.T) {
	var buf bytes.Buffer
	err := Echo(&buf, "k4.arch", arch.RouteGlobal, sampleConfig())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Architecture file: k4.arch")
	assert.Contains(t, out, "io_rat: 2.")
	assert.Contains(t, out, "chan_width_io: 1")
	assert.Contains(t, out, "subblock_lut_size: 4")
	assert.Contains(t, out, "driver")
	assert.Contains(t, out, "receiver")

	// Global mode omits the detailed routing section.
	assert.NotContains(t, out, "Fc_output")
	assert.NotContains(t, out, "switch_block_type")
}

func TestEchoDetailed(t *testing.T) {
	var buf bytes.Buffer
	err := Echo(&buf, "k4.arch", arch.RouteDetailed, sampleConfig())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Fc value is absolute number of tracks.")
	assert.Contains(t, out, "Fc_output: 1.  Fc_input: 1.  Fc_pad: 1.")
	assert.Contains(t, out, "switch_block_type: wilton.")
}

func TestEchoPinTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Echo(&buf, "k4.arch", arch.RouteGlobal, sampleConfig()))

	// Pin 0: class 0, top side only.
	assert.True(t, strings.Contains(buf.String(), "0\t0\t1\t0\t0\t0"),
		"pin table row missing:\n%s", buf.String())
}

func TestJSON(t *testing.T) {
	out, err := JSON("k4.arch", arch.RouteDetailed, sampleConfig())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "k4.arch", decoded["arch_file"])
	assert.Equal(t, "detailed", decoded["route_type"])
	assert.Equal(t, float64(2), decoded["io_rat"])
	assert.Equal(t, float64(3), decoded["pins_per_clb"])

	classes, ok := decoded["classes"].([]any)
	require.True(t, ok)
	require.Len(t, classes, 2)
	first := classes[0].(map[string]any)
	assert.Equal(t, "driver", first["type"])

	routing, ok := decoded["routing"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "wilton", routing["switch_block_type"])
}

func TestJSONGlobalOmitsRouting(t *testing.T) {
	out, err := JSON("k4.arch", arch.RouteGlobal, sampleConfig())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	_, present := decoded["routing"]
	assert.False(t, present)
}
