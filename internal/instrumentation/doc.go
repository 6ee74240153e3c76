// Package instrumentation provides OpenTelemetry metrics and tracing for
// taskmgr replays.
//
// Instrumentation is disabled by default; a short-lived replay usually has
// no collector to talk to. When enabled via INSTRUMENTATION_ENABLED=true,
// the Provider records per-command counters and durations and, optionally,
// a span per executed line. Metrics can be exported to Prometheus (scraped
// from the optional /metrics listener), to an OTLP collector, or to stderr
// for debugging. Stdout exporters are redirected to stderr because stdout
// carries the interpreter's line protocol.
package instrumentation
