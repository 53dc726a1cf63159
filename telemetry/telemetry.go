// Package telemetry sets up opt-in OpenTelemetry tracing for roll.
//
// Tracing is off unless an OTLP/HTTP endpoint is configured. When it is off
// the global no-op provider stays in place, so spans started with [Start]
// cost next to nothing.
package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Instrumentation names the tracer used for every span.
const Instrumentation = "github.com/ardnew/roll"

// Config selects the trace exporter. It is decoded from the environment.
type Config struct {
	Endpoint string `env:"OTEL_ENDPOINT"`
	Enabled  bool   `env:"OTEL_ENABLED"  envDefault:"true"`
}

// Active reports whether c enables tracing.
func (c Config) Active() bool { return c.Enabled && c.Endpoint != "" }

// Shutdown flushes pending spans and releases the exporter.
type Shutdown func(context.Context) error

// Setup registers a global tracer provider exporting to c.Endpoint.
//
// If c is not [Config.Active], Setup registers nothing and returns a no-op
// Shutdown. The returned Shutdown must be called before exit to flush spans.
func Setup(ctx context.Context, c Config, service, version string) (Shutdown, error) {
	noop := func(context.Context) error { return nil }

	if !c.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(c.Endpoint),
	)
	if err != nil {
		return noop, errors.Join(ErrSetup, err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(service),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return noop, errors.Join(ErrSetup, err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// ErrSetup is returned when the exporter cannot be created.
var ErrSetup = errors.New("telemetry setup failed")

// Start starts a span from the global tracer provider.
func Start(
	ctx context.Context,
	name string,
	attrs ...attribute.KeyValue,
) (context.Context, trace.Span) {
	return otel.Tracer(Instrumentation).Start(ctx, name, trace.WithAttributes(attrs...))
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
