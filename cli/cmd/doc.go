// Package cmd implements the strut subcommands: eval, check, fmt, and
// repl. Each command is a kong-bindable struct whose Run method receives
// the application context.
package cmd
