// Package grid derives the physical device grid from a loaded architecture
// and the statistics of the circuit to be placed on it. The device is an
// nx by ny array of logic blocks ringed by IO pads, with illegal corners.
package grid

import (
	"context"
	"math"

	"github.com/hashicorp/hcl/v2"

	"github.com/avesus/vtr-verilog-to-routing/internal/arch"
	"github.com/avesus/vtr-verilog-to-routing/internal/ctxlog"
	"github.com/avesus/vtr-verilog-to-routing/internal/diag"
)

// maxDim bounds nx and ny because downstream routing stores coordinates
// in 16-bit integers.
const maxDim = 32766

// EmptySlot marks an unoccupied pad slot in the shared pool.
const EmptySlot = -1

// CellKind classifies one cell of the device grid.
type CellKind int

const (
	// CellIllegal cells hold nothing; only the four corners.
	CellIllegal CellKind = iota
	// CellIO cells are perimeter pads.
	CellIO
	// CellLogic cells are interior CLBs.
	CellLogic
)

func (k CellKind) String() string {
	switch k {
	case CellIO:
		return "io"
	case CellLogic:
		return "logic"
	default:
		return "illegal"
	}
}

// Cell is one location of the device grid.
type Cell struct {
	Kind CellKind

	// IOSlots is this pad cell's view into the shared pad slot pool:
	// io_rat slots per IO cell, nil for logic and illegal cells. Slot
	// values are block indices, EmptySlot while unoccupied.
	IOSlots []int
}

// Grid is the sized device. Cells is indexed [x][y] over 0..NX+1 and
// 0..NY+1; row 0 and row NY+1, column 0 and column NX+1 form the IO ring.
type Grid struct {
	NX, NY int

	Cells [][]Cell

	// PadSlots is the shared pool all IO cells slice into, sized
	// 2*io_rat*(nx+ny). The carve order is a compatibility contract:
	// right then left perimeter by increasing row, then top then bottom
	// perimeter by increasing column. Consumers index pad slots by this
	// exact order.
	PadSlots []int

	// ChanCapX[j] and ChanCapY[i] hold the track capacity of each
	// horizontal and vertical channel for the router to fill in.
	ChanCapX []int
	ChanCapY []int
}

// CircuitStats is what the grid needs to know about the circuit being
// placed: how many logic blocks and IO pads it has.
type CircuitStats struct {
	LogicBlocks int
	InputPads   int
	OutputPads  int
}

// Options control how the device is sized. When UserSized is set, NX and
// NY are taken as given and only checked against the circuit; otherwise
// the smallest device with the requested aspect ratio is computed.
type Options struct {
	AspectRatio float64
	NX, NY      int
	UserSized   bool
}

// Build sizes the device and constructs its cell grid. cfg must have
// passed arch.Load validation first.
func Build(ctx context.Context, cfg *arch.Config, opts Options, stats CircuitStats) (*Grid, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	nx, ny, diags := resolveDims(cfg, opts, stats)
	if diags.HasErrors() {
		return nil, diags
	}
	logger.Info("device grid sized", "nx", nx, "ny", ny,
		"logic_blocks", stats.LogicBlocks, "pads", stats.InputPads+stats.OutputPads)

	g := &Grid{
		NX:       nx,
		NY:       ny,
		Cells:    make([][]Cell, nx+2),
		PadSlots: make([]int, 2*cfg.IoRat*(nx+ny)),
		ChanCapX: make([]int, ny+1),
		ChanCapY: make([]int, nx+1),
	}
	for x := range g.Cells {
		g.Cells[x] = make([]Cell, ny+2)
	}
	for i := range g.PadSlots {
		g.PadSlots[i] = EmptySlot
	}

	g.fill(cfg.IoRat)
	return g, nil
}

func resolveDims(cfg *arch.Config, opts Options, stats CircuitStats) (nx, ny int, diags hcl.Diagnostics) {
	pads := stats.InputPads + stats.OutputPads

	if opts.UserSized {
		nx, ny = opts.NX, opts.NY
		if stats.LogicBlocks > nx*ny || pads > 2*cfg.IoRat*(nx+ny) {
			return 0, 0, hcl.Diagnostics{diag.Errf(diag.GridSizing, nil,
				"user-specified size (%d x %d) is too small for the circuit", nx, ny)}
		}
	} else {
		// Area is nx*ny = ny*ny*aspect; perimeter is 2*(nx+ny) =
		// 2*ny*(1+aspect). Take whichever constraint needs the larger ny.
		ny = int(math.Ceil(math.Sqrt(float64(stats.LogicBlocks) / opts.AspectRatio)))
		ioLim := int(math.Ceil(float64(pads) / (2 * float64(cfg.IoRat) * (1 + opts.AspectRatio))))
		ny = max(ny, ioLim)
		nx = int(math.Ceil(float64(ny) * opts.AspectRatio))
	}

	// A 1x1 device leaves a lone logic block with nowhere to move, which
	// the placer's move generator cannot cope with.
	if nx == 1 && ny == 1 && stats.LogicBlocks != 0 {
		return 0, 0, hcl.Diagnostics{diag.Errf(diag.GridSizing, nil,
			"cannot place a circuit with only one valid location for a logic block")}
	}
	if nx > maxDim || ny > maxDim {
		return 0, 0, hcl.Diagnostics{diag.Errf(diag.GridSizing, nil,
			"nx and ny must be at most %d, got nx = %d, ny = %d", maxDim, nx, ny)}
	}

	return nx, ny, nil
}

// fill assigns cell kinds and carves the pad slot pool across the IO ring.
// Carve order is the documented contract on PadSlots.
func (g *Grid) fill(ioRat int) {
	next := 0
	carve := func() []int {
		s := g.PadSlots[next : next+ioRat : next+ioRat]
		next += ioRat
		return s
	}

	for j := 1; j <= g.NY; j++ {
		g.Cells[g.NX+1][j] = Cell{Kind: CellIO, IOSlots: carve()}
		g.Cells[0][j] = Cell{Kind: CellIO, IOSlots: carve()}
	}
	for i := 1; i <= g.NX; i++ {
		g.Cells[i][g.NY+1] = Cell{Kind: CellIO, IOSlots: carve()}
		g.Cells[i][0] = Cell{Kind: CellIO, IOSlots: carve()}
	}

	for i := 1; i <= g.NX; i++ {
		for j := 1; j <= g.NY; j++ {
			g.Cells[i][j].Kind = CellLogic
		}
	}

	// Nothing goes in the corners.
	g.Cells[0][0].Kind = CellIllegal
	g.Cells[g.NX+1][0].Kind = CellIllegal
	g.Cells[0][g.NY+1].Kind = CellIllegal
	g.Cells[g.NX+1][g.NY+1].Kind = CellIllegal
}
