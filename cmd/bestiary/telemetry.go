package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bestiary-backend/lib/restyutil"
	"bestiary-backend/lib/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

// InitTelemetry starts exporting to the configured collector until ctx ends.
// The returned output receives upstream request dumps and is nil unless
// verbose.
func InitTelemetry(ctx context.Context, cfg Config, verbose bool) (restyutil.InstrumentOutput, error) {
	t, err := telemetry.Setup(
		ctx, "bestiary", cfg.Telemetry.Otlp,
		attribute.String("bestiary.base_url", cfg.Bestiary.BaseUrl),
	)
	if err != nil {
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := t.Shutdown(shutdownCtx)
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	}()

	if !verbose {
		return nil, nil
	}
	out, err := restyutil.NewFilesystemOutput(cfg.Telemetry.DumpDir)
	if err != nil {
		return nil, fmt.Errorf("create dump directory: %w", err)
	}
	slog.DebugContext(ctx, "dumping upstream requests", "dir", out.Dir())
	return out, nil
}
