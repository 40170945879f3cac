package app

import (
	"context"
	"fmt"
	"os"

	"github.com/avesus/vtr-verilog-to-routing/internal/arch"
	"github.com/avesus/vtr-verilog-to-routing/internal/ctxlog"
	"github.com/avesus/vtr-verilog-to-routing/internal/grid"
	"github.com/avesus/vtr-verilog-to-routing/internal/report"
)

// Run performs one complete load: read and validate the architecture
// description, size and build the device grid, then emit the requested
// reports. Validation failures come back as hcl.Diagnostics (which
// implement error) so the caller can render them with position info.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "arch", a.config.ArchPath)

	routeType, err := arch.ParseRouteType(a.config.RouteType)
	if err != nil {
		return err
	}

	f, err := os.Open(a.config.ArchPath)
	if err != nil {
		return fmt.Errorf("opening architecture file: %w", err)
	}
	defer f.Close()

	archCfg, diags := arch.Load(ctx, a.config.ArchPath, f, routeType)
	if diags.HasErrors() {
		return fmt.Errorf("loading architecture %s: %w", a.config.ArchPath, diags)
	}
	a.arch = archCfg

	stats := grid.CircuitStats{
		LogicBlocks: a.config.LogicBlocks,
		InputPads:   a.config.InputPads,
		OutputPads:  a.config.OutputPads,
	}
	opts := grid.Options{
		AspectRatio: a.config.AspectRatio,
		NX:          a.config.NX,
		NY:          a.config.NY,
		UserSized:   a.config.UserSized,
	}
	device, diags := grid.Build(ctx, archCfg, opts, stats)
	if diags.HasErrors() {
		return fmt.Errorf("sizing device grid: %w", diags)
	}
	a.grid = device

	if a.config.EchoPath != "" {
		if err := a.writeEcho(routeType, archCfg); err != nil {
			return err
		}
	}
	if a.config.JSONReport {
		out, err := report.JSON(a.config.ArchPath, routeType, archCfg)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(a.outW, "%s\n", out); err != nil {
			return fmt.Errorf("writing JSON report: %w", err)
		}
	}

	a.logger.Info("Load finished.",
		"nx", device.NX, "ny", device.NY,
		"classes", len(archCfg.Classes), "pins_per_clb", archCfg.PinsPerBlock)
	return nil
}

func (a *App) writeEcho(routeType arch.RouteType, archCfg *arch.Config) error {
	f, err := os.Create(a.config.EchoPath)
	if err != nil {
		return fmt.Errorf("creating echo file: %w", err)
	}
	defer f.Close()

	if err := report.Echo(f, a.config.ArchPath, routeType, archCfg); err != nil {
		return fmt.Errorf("writing echo file %s: %w", a.config.EchoPath, err)
	}
	a.logger.Debug("Architecture echo written.", "path", a.config.EchoPath)
	return nil
}
