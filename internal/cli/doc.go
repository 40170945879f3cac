// Package cli parses command-line arguments into an app.Config, validates
// user input, and owns process-level concerns like exit codes. The flags
// cover the architecture file, routing mode, device sizing and the circuit
// statistics the grid is derived from.
package cli
