// Package render produces the deterministic ordering of a task subset and
// the fixed-column textual table the output protocol requires.
package render
