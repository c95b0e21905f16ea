package observe

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   string
		want    logrus.Level
		wantErr bool
	}{
		{"", logrus.InfoLevel, false},
		{"debug", logrus.DebugLevel, false},
		{"warn", logrus.WarnLevel, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		l, err := NewLogger(tt.level)
		if (err != nil) != tt.wantErr {
			t.Fatalf("NewLogger(%q) err = %v", tt.level, err)
		}
		if err == nil && l.GetLevel() != tt.want {
			t.Errorf("NewLogger(%q) level = %v, want %v", tt.level, l.GetLevel(), tt.want)
		}
	}
}

func TestLogger_TraceFields(t *testing.T) {
	base := discardLogger()
	if got := Logger(context.Background(), base); got != logrus.FieldLogger(base) {
		t.Error("without a span the logger should be returned unchanged")
	}

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	entry, ok := Logger(ctx, base).(*logrus.Entry)
	if !ok {
		t.Fatalf("Logger returned %T, want *logrus.Entry", Logger(ctx, base))
	}
	if entry.Data["trace_id"] != span.SpanContext().TraceID().String() {
		t.Errorf("trace_id = %v", entry.Data["trace_id"])
	}
	if _, ok := entry.Data["span_id"]; !ok {
		t.Error("span_id missing")
	}
}
