package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter             = otel.Meter("bestiary/internal/telemetry")
	brokenCounter, _  = meter.Int64Counter("bestiary.reports.broken")
	warningCounter, _ = meter.Int64Counter("bestiary.reports.warning")
	countGauge, _     = meter.Int64Gauge("bestiary.reports.count")
)

func reportId(id string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("report.id", id))
}

// SlogAPI logs reports to Logger, or to slog.Default() when Logger is nil.
// Broken and warning reports are also counted on the global otel meter and
// counts are recorded as a gauge, all tagged with the report id.
type SlogAPI struct {
	Logger *slog.Logger
}

func (s SlogAPI) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	brokenCounter.Add(context.Background(), 1, reportId(id))
	s.logger().Error("component broken", "id", id, "params", params)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	warningCounter.Add(context.Background(), 1, reportId(id))
	s.logger().Warn("component degraded", "id", id, "params", params)
}

func (s SlogAPI) ReportDebug(msg string, params ...any) {
	s.logger().Debug(msg, "params", params)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	countGauge.Record(context.Background(), count, reportId(id))
	s.logger().Info("count", "id", id, "n", count)
}
