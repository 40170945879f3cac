package app

import "errors"

// Config holds everything an App needs to run one load: the architecture
// file, the routing mode, the circuit statistics the grid is sized for,
// optional user dimensions, and report destinations.
type Config struct {
	ArchPath  string
	RouteType string // "global" or "detailed"

	// Device sizing: UserSized takes NX/NY as given, otherwise the
	// smallest device with AspectRatio is computed.
	NX, NY      int
	UserSized   bool
	AspectRatio float64

	// Circuit statistics, normally supplied by the netlist reader.
	LogicBlocks int
	InputPads   int
	OutputPads  int

	// EchoPath receives the human-readable architecture echo; empty
	// disables it. JSONReport writes the machine-readable summary to
	// the app's output writer.
	EchoPath   string
	JSONReport bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ArchPath == "" {
		return nil, errors.New("ArchPath is a required configuration field and cannot be empty")
	}
	if !cfg.UserSized && cfg.AspectRatio <= 0 {
		return nil, errors.New("AspectRatio must be positive when the device is auto-sized")
	}
	if cfg.UserSized && (cfg.NX < 1 || cfg.NY < 1) {
		return nil, errors.New("user-sized devices need NX >= 1 and NY >= 1")
	}
	return &cfg, nil
}
