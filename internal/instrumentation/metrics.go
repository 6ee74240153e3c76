package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrCommand = "command"
	attrStatus  = "status"
	attrKind    = "kind"
)

// Metrics provides methods for recording observability metrics. The zero
// value is a no-op recorder, used when instrumentation is disabled.
type Metrics struct {
	commandsTotal      metric.Int64Counter
	commandDuration    metric.Float64Histogram
	commandErrorsTotal metric.Int64Counter
	tasksActive        metric.Int64UpDownCounter
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.commandsTotal, err = meter.Int64Counter(
		"taskmgr_commands_total",
		metric.WithDescription("Total number of executed command lines"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create taskmgr_commands_total counter: %w", err)
	}

	m.commandDuration, err = meter.Float64Histogram(
		"taskmgr_command_duration_seconds",
		metric.WithDescription("Command execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.00001, 0.0001, 0.001, 0.01, 0.1, 1.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create taskmgr_command_duration_seconds histogram: %w", err)
	}

	m.commandErrorsTotal, err = meter.Int64Counter(
		"taskmgr_command_errors_total",
		metric.WithDescription("Total number of command failures by error kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create taskmgr_command_errors_total counter: %w", err)
	}

	m.tasksActive, err = meter.Int64UpDownCounter(
		"taskmgr_tasks_active",
		metric.WithDescription("Number of tasks currently in the store"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create taskmgr_tasks_active gauge: %w", err)
	}

	return m, nil
}

// RecordCommand records one executed command line with its command word,
// result status ("success" or "error"), and duration.
func (m *Metrics) RecordCommand(ctx context.Context, command, status string, duration time.Duration) {
	if m.commandsTotal == nil || m.commandDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrCommand, command),
		attribute.String(attrStatus, status),
	}

	m.commandsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.commandDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordError records one command failure by error kind.
func (m *Metrics) RecordError(ctx context.Context, kind string) {
	if m.commandErrorsTotal == nil {
		return // Instrumentation not initialized
	}

	m.commandErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrKind, kind)))
}

// AddTasks moves the active-task gauge by delta (positive on add,
// negative on delete).
func (m *Metrics) AddTasks(ctx context.Context, delta int64) {
	if m.tasksActive == nil {
		return // Instrumentation not initialized
	}

	m.tasksActive.Add(ctx, delta)
}
