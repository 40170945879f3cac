package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/avesus/vtr-verilog-to-routing/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating the program should exit cleanly (help
// or no input), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("vpr", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
vpr - FPGA architecture loader and device grid builder.

Usage:
  vpr [options] [ARCH_FILE]

Arguments:
  ARCH_FILE
    Path to the architecture description file.

Options:
`)
		flagSet.PrintDefaults()
	}

	archFlag := flagSet.String("arch", "", "Path to the architecture description file.")
	routeTypeFlag := flagSet.String("route-type", "global", "Routing mode. Options: 'global' or 'detailed'.")
	nxFlag := flagSet.Int("nx", 0, "Device width in logic blocks. Set both -nx and -ny to size the device yourself.")
	nyFlag := flagSet.Int("ny", 0, "Device height in logic blocks.")
	aspectFlag := flagSet.Float64("aspect", 1.0, "Width/height aspect ratio used when auto-sizing the device.")
	clbsFlag := flagSet.Int("clbs", 0, "Number of logic blocks in the circuit.")
	inputsFlag := flagSet.Int("inputs", 0, "Number of input pads in the circuit.")
	outputsFlag := flagSet.Int("outputs", 0, "Number of output pads in the circuit.")
	echoFlag := flagSet.String("echo-file", "arch.echo", "File for the human-readable architecture echo. Empty disables it.")
	jsonFlag := flagSet.Bool("json", false, "Write a JSON summary of the loaded architecture to stdout.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := *archFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	routeType := strings.ToLower(*routeTypeFlag)
	if routeType != "global" && routeType != "detailed" {
		return nil, false, &ExitError{Code: 2, Message: "invalid route-type: must be 'global' or 'detailed'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	userSized := *nxFlag > 0 || *nyFlag > 0
	if userSized && (*nxFlag < 1 || *nyFlag < 1) {
		return nil, false, &ExitError{Code: 2, Message: "both -nx and -ny are required when sizing the device yourself"}
	}

	config, err := app.NewConfig(app.Config{
		ArchPath:    path,
		RouteType:   routeType,
		NX:          *nxFlag,
		NY:          *nyFlag,
		UserSized:   userSized,
		AspectRatio: *aspectFlag,
		LogicBlocks: *clbsFlag,
		InputPads:   *inputsFlag,
		OutputPads:  *outputsFlag,
		EchoPath:    *echoFlag,
		JSONReport:  *jsonFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
