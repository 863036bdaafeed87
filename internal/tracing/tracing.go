// Package tracing builds the OpenTelemetry tracer provider used by the API
// server. Spans go to stdout, a JSON-lines file, or an OTLP/gRPC collector;
// with no exporter configured every tracer is a no-op.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/applytrack/applytrack/internal/log"
)

// Exporter names accepted in Config.Exporter.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterFile   = "file"
	ExporterOTLP   = "otlp"
)

// ErrUnknownExporter is returned for an unrecognized exporter name.
var ErrUnknownExporter = errors.New("unknown trace exporter")

// Config selects and configures the span exporter.
type Config struct {
	Exporter       string
	FilePath       string // ExporterFile
	Endpoint       string // ExporterOTLP, host:port
	ServiceName    string
	ServiceVersion string
}

// ValidExporter reports whether name is a known exporter. Empty means none.
func ValidExporter(name string) bool {
	switch name {
	case "", ExporterNone, ExporterStdout, ExporterFile, ExporterOTLP:
		return true
	}
	return false
}

// Provider owns the tracer provider and whatever its exporter holds open.
type Provider struct {
	tp       trace.TracerProvider
	shutdown func(context.Context) error
}

// New builds a Provider for cfg. stdout receives spans for ExporterStdout.
func New(ctx context.Context, cfg Config, stdout io.Writer) (*Provider, error) {
	var (
		exp     sdktrace.SpanExporter
		closeFn func() error
		err     error
	)
	switch cfg.Exporter {
	case "", ExporterNone:
		return &Provider{
			tp:       noop.NewTracerProvider(),
			shutdown: func(context.Context) error { return nil },
		}, nil
	case ExporterStdout:
		exp, err = stdouttrace.New(stdouttrace.WithWriter(stdout))
	case ExporterFile:
		f, ferr := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if ferr != nil {
			return nil, fmt.Errorf("opening trace file: %w", ferr)
		}
		closeFn = f.Close
		exp, err = stdouttrace.New(stdouttrace.WithWriter(f))
	case ExporterOTLP:
		exp, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, cfg.Exporter)
	}
	if err != nil {
		if closeFn != nil {
			_ = closeFn()
		}
		return nil, fmt.Errorf("creating %s trace exporter: %w", cfg.Exporter, err)
	}

	return NewWithExporter(exp, cfg, closeFn), nil
}

// NewWithExporter wraps an already built exporter. closeFn, if set, runs
// after the provider has flushed.
func NewWithExporter(exp sdktrace.SpanExporter, cfg Config, closeFn func() error) *Provider {
	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	log.Info(log.CatServer, "tracing enabled", "exporter", cfg.Exporter)

	return &Provider{
		tp: tp,
		shutdown: func(ctx context.Context) error {
			err := tp.Shutdown(ctx)
			if closeFn != nil {
				err = errors.Join(err, closeFn())
			}
			return err
		},
	}
}

// Tracer returns a named tracer.
func (p *Provider) Tracer(name string) trace.Tracer {
	return p.tp.Tracer(name)
}

// Shutdown flushes pending spans and releases the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.shutdown(ctx)
}
