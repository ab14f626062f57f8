// Package services defines shared utilities consumed by the Telestream Cloud
// client and the tcloud CLI.
//
// Key responsibilities:
//   - Context helpers that stamp factory IDs, operation names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so failures can be
//     classified (validation, protocol, deserialization, transport) with
//     errors.Is regardless of how deeply they were wrapped.
//
// The HTTP client itself lives in the telestream subpackage.
package services
