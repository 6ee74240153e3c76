// Package server exposes the optional Prometheus /metrics endpoint used
// when replaying large command files. The listener runs beside the
// interpreter and is shut down when the replay ends; it never touches the
// task store.
package server
