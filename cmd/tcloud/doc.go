// Package main hosts the tcloud CLI entrypoint and command graph.
//
// Each subcommand maps onto one Telestream Cloud operation from
// internal/services/telestream. The command context resolves configuration,
// logging, and the factory to act on, so subcommands only parse flags and
// render results as tables or, with --json, as indented JSON.
package main
