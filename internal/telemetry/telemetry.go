// Package telemetry provides OpenTelemetry instrumentation for Honeycomb and
// the structured logger shared by the rest of the program.
package telemetry

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "creatures"
	serviceVersion = "0.1.0"
)

// Configured reports whether an OTLP endpoint has been provided through the
// standard OTEL_* environment variables.
func Configured() bool {
	return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" ||
		os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") != ""
}

// ConfigureHoneycomb sets the OTEL_* environment variables from the
// CREATURES_HONEYCOMB_* ones. It does nothing when no API key is set.
func ConfigureHoneycomb() {
	apiKey := os.Getenv("CREATURES_HONEYCOMB_API_KEY")
	if apiKey == "" {
		return
	}
	dataset := os.Getenv("CREATURES_HONEYCOMB_DATASET")
	if dataset == "" {
		dataset = serviceName
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}

// Setup initializes OpenTelemetry with OTLP HTTP exporter.
// It reads configuration from standard OTEL_* environment variables:
//   - OTEL_EXPORTER_OTLP_ENDPOINT: collector endpoint
//   - OTEL_EXPORTER_OTLP_HEADERS: headers such as x-honeycomb-team=<api-key>
//
// Each process reports a fresh service.instance.id so that spans from
// concurrent runs stay apart. Returns a shutdown function that flushes
// pending spans; call it before exit.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	// Create OTLP HTTP exporter - automatically uses OTEL_* env vars
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	// Own resource, not merged with Default(), to avoid schema URL conflicts
	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes()...))
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry resource: %w", err)
	}

	// Create trace provider with batch span processor
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// Register as global provider
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// resourceAttributes describes this process to the collector.
func resourceAttributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("service.instance.id", uuid.NewString()),
		attribute.String("telemetry.sdk.language", "go"),
		attribute.String("telemetry.sdk.name", "opentelemetry"),
		attribute.String("host.name", getHostname()),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.name", "go"),
		attribute.String("process.runtime.version", runtime.Version()),
	}
}

// Tracer returns the tracer for one package of the generator, named
// creatures/<component>. Spans go nowhere until Setup has run.
func Tracer(component string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + component)
}

// NewLogger returns a logr.Logger writing to stderr. Higher verbosity enables
// V(n) messages. The logger also receives OpenTelemetry's internal messages.
func NewLogger(verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))
	otel.SetLogger(logger)
	return logger
}

// getHostname returns the system hostname, or "unknown" if it cannot be determined.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
