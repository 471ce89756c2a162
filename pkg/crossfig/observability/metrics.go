package observability

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records resolution metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when
// disabled.
type MetricsRecorder interface {
	// RecordAliasResolution records one resolved alias declaration.
	RecordAliasResolution(ctx context.Context, name string, enabled bool)

	// RecordSwitchResolution records one resolved switch and whether it
	// fell through to the fallback arm.
	RecordSwitchResolution(ctx context.Context, name string, fallback bool)

	// RecordRun records a completed resolution run.
	RecordRun(ctx context.Context, success bool, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	aliasResolutions  metric.Int64Counter
	switchResolutions metric.Int64Counter
	runs              metric.Int64Counter
	runLatency        metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("crossfig")

	aliasResolutions, err := meter.Int64Counter("crossfig.alias.resolutions",
		metric.WithDescription("Number of alias declarations resolved"),
	)
	if err != nil {
		return nil, err
	}

	switchResolutions, err := meter.Int64Counter("crossfig.switch.resolutions",
		metric.WithDescription("Number of switches resolved"),
	)
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter("crossfig.runs",
		metric.WithDescription("Number of resolution runs"),
	)
	if err != nil {
		return nil, err
	}

	runLatency, err := meter.Float64Histogram("crossfig.run.latency_ms",
		metric.WithDescription("Resolution run latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		aliasResolutions:  aliasResolutions,
		switchResolutions: switchResolutions,
		runs:              runs,
		runLatency:        runLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global
// OTel meter provider. Falls back to NoopMetrics if instrument
// creation fails.
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordAliasResolution(ctx context.Context, name string, enabled bool) {
	m.aliasResolutions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("alias", name),
		attribute.Bool("enabled", enabled),
	))
}

func (m *otelMetrics) RecordSwitchResolution(ctx context.Context, name string, fallback bool) {
	m.switchResolutions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("switch", name),
		attribute.Bool("fallback", fallback),
	))
}

func (m *otelMetrics) RecordRun(ctx context.Context, success bool, duration time.Duration) {
	m.runs.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("success", success),
	))
	m.runLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(
		attribute.Bool("success", success),
	))
}
