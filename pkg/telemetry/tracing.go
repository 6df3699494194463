package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/museun/too-sub001/pkg/ui/runtime"

// TracerProvider holds the OpenTelemetry tracer provider
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	closer   io.Closer
}

// NewTracerProvider exports spans as JSON to w and installs the provider
// globally so the runner picks it up.
func NewTracerProvider(w io.Writer, serviceName string) (*TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(provider)

	return &TracerProvider{provider: provider}, nil
}

// OpenTracerProvider is NewTracerProvider writing to a file that is
// closed on Shutdown.
func OpenTracerProvider(path, serviceName string) (*TracerProvider, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	tp, err := NewTracerProvider(f, serviceName)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	tp.closer = f
	return tp, nil
}

// Tracer returns the tracer the runner uses.
func (tp *TracerProvider) Tracer() trace.Tracer {
	return tp.provider.Tracer(tracerName)
}

// Shutdown flushes pending spans and releases the output.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	err := tp.provider.Shutdown(ctx)
	if tp.closer != nil {
		err = errors.Join(err, tp.closer.Close())
		tp.closer = nil
	}
	return err
}
