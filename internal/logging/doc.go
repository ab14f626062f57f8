// Package logging assembles structured slog loggers used by the tcloud CLI and
// the Telestream Cloud client.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so API calls are tagged with the
// factory, operation and correlation ID. The package also provides a no-op
// logger for tests and library callers that do not want output.
package logging
