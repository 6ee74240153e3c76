// Package logging provides slog-based structured logging for taskmgr.
//
// The interpreter's stdout is the line protocol channel, so every log
// handler writes to stderr. The package defines the shared attribute keys
// and helper constructors used across the codebase so log fields stay
// consistently named.
package logging
