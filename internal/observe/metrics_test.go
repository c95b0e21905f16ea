package observe

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestRecordScore(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordScore(ctx, ComponentAcoustic, 75)
	m.RecordScore(ctx, ComponentAcoustic, 85)
	m.RecordScore(ctx, ComponentContent, 40)

	met := findMetric(collect(t, reader), "pronounce.score.value")
	if met == nil {
		t.Fatal("pronounce.score.value not found")
	}
	hist, ok := met.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("unexpected data type %T", met.Data)
	}
	counts := map[string]uint64{}
	for _, dp := range hist.DataPoints {
		v, _ := dp.Attributes.Value("component")
		counts[v.AsString()] = dp.Count
	}
	if counts[ComponentAcoustic] != 2 || counts[ComponentContent] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestRecordFailureAndAttempt(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordFailure(ctx, ComponentPhoneme)
	m.RecordFailure(ctx, ComponentPhoneme)
	m.RecordAttempt(ctx, true)

	rm := collect(t, reader)
	met := findMetric(rm, "pronounce.score.failures")
	if met == nil {
		t.Fatal("pronounce.score.failures not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 2 {
		t.Errorf("failures = %+v", met.Data)
	}
	if findMetric(rm, "pronounce.attempts") == nil {
		t.Error("pronounce.attempts not found")
	}
}

func TestDefaultMetrics_Singleton(t *testing.T) {
	if DefaultMetrics() != DefaultMetrics() {
		t.Error("DefaultMetrics returned different instances")
	}
}
