// Package logging provides a structured logging system for crucible built on
// Go's standard slog package.
//
// All log entries carry a subsystem identifier so that output from the
// different stages of a run (config loading, container lifecycle, step
// execution) can be told apart and filtered by log aggregation tooling.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("Config", "Loaded configuration from %s", path)
//	logging.Error("Docker", err, "Failed to create container")
//
// Output from commands executed inside the container is intentionally NOT
// routed through this package: the runner streams it raw to its own writer so
// that build and test output stays byte-for-byte intact.
package logging
