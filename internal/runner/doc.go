// Package runner drives the interpreter over a command file: one command
// per line, blank lines and comment lines skipped, over-long lines
// rejected before tokenization. A failing line never stops the run.
package runner
