// Package cli implements the atlaspack command-line interface.
//
// The commands are:
//   - pack: import items from a file, pack them and write any requested outputs
//   - bench: pack generated item sets and report timing and fill
//   - config: show, initialise, back up or restore the configuration
//
// All commands support --verbose (-v) for debug-level logging and --config to
// point at a different config file. Loggers and the loaded config travel
// through context.Context.
package cli
