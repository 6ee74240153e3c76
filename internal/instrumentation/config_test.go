package instrumentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "taskmgr", cfg.ServiceName)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, ExporterPrometheus, cfg.MetricsExporter)
	assert.Equal(t, ExporterNone, cfg.TracingExporter)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "true")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("OTEL_SERVICE_NAME", "taskmgr-test")

	cfg := DefaultConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, ExporterStdout, cfg.MetricsExporter)
	assert.Equal(t, "taskmgr-test", cfg.ServiceName)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad metrics exporter", func(c *Config) { c.MetricsExporter = "statsd" }, true},
		{"bad tracing exporter", func(c *Config) { c.TracingExporter = "jaeger" }, true},
		{"sampling rate too high", func(c *Config) { c.TraceSamplingRate = 1.5 }, true},
		{"sampling rate negative", func(c *Config) { c.TraceSamplingRate = -0.1 }, true},
		{"otlp metrics without endpoint", func(c *Config) { c.MetricsExporter = ExporterOTLP }, true},
		{"otlp tracing without endpoint", func(c *Config) { c.TracingExporter = ExporterOTLP }, true},
		{"otlp with endpoint", func(c *Config) {
			c.MetricsExporter = ExporterOTLP
			c.OTLPEndpoint = "localhost:4318"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
