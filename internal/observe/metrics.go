// Package observe provides metrics, tracing, logging and HTTP middleware for
// pronounce.
//
// Metrics are recorded through the OpenTelemetry Metrics API and exported
// for Prometheus via [InitProvider]. Tests should use [NewMetrics] with
// their own [metric.MeterProvider].
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ieee0824/pronounce-go"

// Score components used as the "component" attribute.
const (
	ComponentAcoustic = "acoustic"
	ComponentContent  = "content"
	ComponentPhoneme  = "phoneme"
	ComponentFinal    = "final"
)

// Metrics holds the metric instruments. All fields are safe for concurrent use.
type Metrics struct {
	// ScoreDuration tracks end-to-end scoring latency.
	ScoreDuration metric.Float64Histogram

	// ScoreValue records produced scores. Use with attribute.String("component", ...).
	ScoreValue metric.Float64Histogram

	// ScoreFailures counts component failures that were converted to a
	// worst-case score. Use with attribute.String("component", ...).
	ScoreFailures metric.Int64Counter

	// Attempts counts scored attempts. Use with attribute.Bool("success", ...).
	Attempts metric.Int64Counter

	// HTTPRequestDuration tracks HTTP request processing time.
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets are histogram boundaries in seconds. Scoring decodes two
// recordings and runs DTW over them, so the range is wider than for a plain
// request.
var latencyBuckets = []float64{
	0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

var scoreBuckets = []float64{
	10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.ScoreDuration, err = m.Float64Histogram("pronounce.score.duration",
		metric.WithDescription("Latency of a full scoring run."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ScoreValue, err = m.Float64Histogram("pronounce.score.value",
		metric.WithDescription("Distribution of produced scores per component."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ScoreFailures, err = m.Int64Counter("pronounce.score.failures",
		metric.WithDescription("Component failures converted to a worst-case score."),
	); err != nil {
		return nil, err
	}
	if met.Attempts, err = m.Int64Counter("pronounce.attempts",
		metric.WithDescription("Scored attempts."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("pronounce.http.request.duration",
		metric.WithDescription("HTTP request processing time."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

// RecordScore records v for component.
func (m *Metrics) RecordScore(ctx context.Context, component string, v float64) {
	m.ScoreValue.Record(ctx, v, metric.WithAttributes(attribute.String("component", component)))
}

// RecordFailure counts a failure of component.
func (m *Metrics) RecordFailure(ctx context.Context, component string) {
	m.ScoreFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("component", component)))
}

// RecordAttempt counts an attempt.
func (m *Metrics) RecordAttempt(ctx context.Context, success bool) {
	m.Attempts.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// DefaultMetrics returns Metrics on the global meter provider. Call
// InitProvider first if the metrics should be exported.
func DefaultMetrics() *Metrics {
	defaultOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}
