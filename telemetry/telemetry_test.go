package telemetry

import (
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestConfig_Active(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"empty", Config{Enabled: true}, false},
		{"endpoint", Config{Endpoint: "http://localhost:4318", Enabled: true}, true},
		{"disabled", Config{Endpoint: "http://localhost:4318"}, false},
	}

	for _, tt := range tests {
		if got := tt.cfg.Active(); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestSetup_NoopWhenInactive(t *testing.T) {
	t.Parallel()

	shutdown, err := Setup(t.Context(), Config{Enabled: true}, "roll", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

// The remaining tests replace the global tracer provider and do not run in
// parallel.

func TestSetup_CreatesProvider(t *testing.T) {
	original := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	// A non-routable address: nothing is exported.
	cfg := Config{Endpoint: "http://192.0.2.1:4318", Enabled: true}

	shutdown, err := Setup(t.Context(), cfg, "roll", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
		t.Errorf("expected an SDK provider, got %T", otel.GetTracerProvider())
	}

	if err := shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestStartEnd_RecordsSpans(t *testing.T) {
	original := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	rec := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))

	_, ok := Start(t.Context(), "ok", attribute.String("expr", "3d6"))
	End(ok, nil)

	_, bad := Start(t.Context(), "bad")
	End(bad, errors.New("boom"))

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	if spans[0].Name() != "ok" || spans[0].Status().Code == codes.Error {
		t.Errorf("unexpected first span %s %v", spans[0].Name(), spans[0].Status())
	}

	if got := spans[0].Attributes(); len(got) != 1 || got[0].Value.AsString() != "3d6" {
		t.Errorf("expected expr attribute, got %v", got)
	}

	if spans[1].Status().Code != codes.Error || spans[1].Status().Description != "boom" {
		t.Errorf("expected error status, got %v", spans[1].Status())
	}
}
