// Package app wires the loading pipeline together: it owns the configured
// logger, runs the architecture loader and the grid builder in order, and
// emits the reports. Library packages below it never terminate the
// process; app surfaces their diagnostics to the caller.
package app

import (
	"io"
	"log/slog"

	"github.com/avesus/vtr-verilog-to-routing/internal/arch"
	"github.com/avesus/vtr-verilog-to-routing/internal/grid"
)

// App encapsulates one load's dependencies, configuration and results.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	arch *arch.Config
	grid *grid.Grid
}

// New returns an App with its own isolated logger.
func New(outW io.Writer, config *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(config.LogLevel, config.LogFormat, outW),
		config: config,
	}
}

// Arch returns the loaded architecture. Nil before a successful Run.
func (a *App) Arch() *arch.Config { return a.arch }

// Grid returns the built device grid. Nil before a successful Run.
func (a *App) Grid() *grid.Grid { return a.grid }
