// Package cmd implements the command-line interface for taskmgr.
//
// This package provides the following commands:
//   - taskmgr <input-file>: Replay a command file against an in-memory task list
//   - version: Display version information
//
// Command results are written to standard output; logs and metrics use
// separate channels.
package cmd
