package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	apimetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// OtlpConfig points traces and metrics at one OTLP collector. An empty
// Endpoint disables export.
type OtlpConfig struct {
	// Protocol is "grpc" or "http", http when empty.
	Protocol string            `json:"protocol"`
	Endpoint string            `json:"endpoint"`
	Headers  map[string]string `json:"headers"`
	// MetricIntervalSeconds defaults to 15.
	MetricIntervalSeconds int `json:"metric_interval_seconds"`
}

func (c OtlpConfig) metricInterval() time.Duration {
	if c.MetricIntervalSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.MetricIntervalSeconds) * time.Second
}

// Telemetry holds the providers installed by Setup. The zero value is what
// Setup returns when export is disabled and is safe to Shutdown.
type Telemetry struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
	process        apimetric.Registration
}

func (t Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.process != nil {
		errs = append(errs, t.process.Unregister())
	}
	if t.TracerProvider != nil {
		errs = append(errs, t.TracerProvider.Shutdown(ctx))
	}
	if t.MeterProvider != nil {
		errs = append(errs, t.MeterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// InitSlog installs a tint handler on stderr as the default logger.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

var errUnknownProtocol = errors.New("unknown otlp protocol")

type exporters struct {
	spans   trace.SpanExporter
	metrics metric.Exporter
}

func newExporters(ctx context.Context, c OtlpConfig) (exporters, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out exporters
	var err error
	switch c.Protocol {
	case "grpc":
		out.spans, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpointURL(c.Endpoint),
			otlptracegrpc.WithHeaders(c.Headers),
		)
		if err != nil {
			return exporters{}, err
		}
		out.metrics, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpointURL(c.Endpoint),
			otlpmetricgrpc.WithHeaders(c.Headers),
		)
	case "", "http":
		out.spans, err = otlptracehttp.New(ctx,
			otlptracehttp.WithEndpointURL(c.Endpoint),
			otlptracehttp.WithHeaders(c.Headers),
		)
		if err != nil {
			return exporters{}, err
		}
		out.metrics, err = otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpointURL(c.Endpoint),
			otlpmetrichttp.WithHeaders(c.Headers),
		)
	default:
		return exporters{}, fmt.Errorf("%w: %q", errUnknownProtocol, c.Protocol)
	}
	if err != nil {
		return exporters{}, err
	}
	return out, nil
}

// Setup installs global tracer and meter providers exporting to the collector
// in c, and registers the process gauges. attrs are added to the resource of
// every span and metric, ex. the bestiary being scraped.
func Setup(ctx context.Context, serviceName string, c OtlpConfig, attrs ...attribute.KeyValue) (Telemetry, error) {
	if c.Endpoint == "" {
		slog.WarnContext(ctx, "no otlp endpoint configured, traces and metrics will not be exported")
		return Telemetry{}, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			append([]attribute.KeyValue{semconv.ServiceName(serviceName)}, attrs...)...,
		),
	)
	if err != nil {
		return Telemetry{}, err
	}

	exp, err := newExporters(ctx, c)
	if err != nil {
		return Telemetry{}, fmt.Errorf("otlp exporters: %w", err)
	}
	slog.InfoContext(ctx, "exporting telemetry",
		"protocol", c.Protocol,
		"endpoint", c.Endpoint,
		"headers", len(c.Headers),
	)

	t := Telemetry{
		TracerProvider: trace.NewTracerProvider(
			trace.WithBatcher(exp.spans),
			trace.WithResource(res),
		),
		MeterProvider: metric.NewMeterProvider(
			metric.WithReader(metric.NewPeriodicReader(exp.metrics, metric.WithInterval(c.metricInterval()))),
			metric.WithResource(res),
		),
	}
	otel.SetTracerProvider(t.TracerProvider)
	otel.SetMeterProvider(t.MeterProvider)

	t.process, err = RegisterProcessGauges(t.MeterProvider.Meter("bestiary/process"))
	if err != nil {
		return t, err
	}
	return t, nil
}
