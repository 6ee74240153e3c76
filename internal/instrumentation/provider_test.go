package instrumentation

import (
	"context"
	"testing"
	"time"
)

func TestNewProvider_Disabled(t *testing.T) {
	config := Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Enabled:        false,
	}

	provider, err := NewProvider(context.Background(), config)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if provider.Enabled() {
		t.Error("expected provider to be disabled")
	}

	if provider.Metrics() == nil {
		t.Error("expected metrics to be non-nil even when disabled")
	}

	// The no-op recorder must tolerate calls without instruments.
	provider.Metrics().RecordCommand(context.Background(), "add", "success", time.Millisecond)
	provider.Metrics().RecordError(context.Background(), "TaskNotFound")
	provider.Metrics().AddTasks(context.Background(), 1)

	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("expected no error on shutdown, got %v", err)
	}
}

func TestNewProvider_PrometheusExporter(t *testing.T) {
	config := Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: ExporterPrometheus,
		TracingExporter: ExporterNone,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, config)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	if !provider.Enabled() {
		t.Error("expected provider to be enabled")
	}
	if !provider.HasPrometheusExporter() {
		t.Error("expected a prometheus exporter to be configured")
	}

	metrics := provider.Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}
	metrics.RecordCommand(ctx, "add", "success", time.Millisecond)
	metrics.RecordError(ctx, "InvalidArgument")
	metrics.AddTasks(ctx, 2)
	metrics.AddTasks(ctx, -1)

	tracer := provider.Tracer("test")
	if tracer == nil {
		t.Error("expected tracer to be non-nil")
	}
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	config := Config{
		ServiceName:     "test-service",
		Enabled:         true,
		MetricsExporter: "statsd",
		TracingExporter: ExporterNone,
	}

	if _, err := NewProvider(context.Background(), config); err == nil {
		t.Fatal("expected error for unsupported metrics exporter")
	}
}
