package telemetry

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel/metric"
)

// RegisterProcessGauges observes cpu usage, heap size and goroutine count
// every time meter's provider collects.
func RegisterProcessGauges(meter metric.Meter) (metric.Registration, error) {
	cpuGauge, err := meter.Float64ObservableGauge("process.cpu.percent")
	if err != nil {
		return nil, err
	}
	heapGauge, err := meter.Int64ObservableGauge("process.heap.bytes")
	if err != nil {
		return nil, err
	}
	goroutineGauge, err := meter.Int64ObservableGauge("process.goroutines")
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		// 0 compares against the previous call instead of blocking
		usage, err := cpu.PercentWithContext(ctx, 0, false)
		if err != nil {
			slog.DebugContext(ctx, "read cpu usage", "err", err)
		} else if len(usage) > 0 {
			o.ObserveFloat64(cpuGauge, usage[0])
		}

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		o.ObserveInt64(heapGauge, int64(mem.HeapAlloc))
		o.ObserveInt64(goroutineGauge, int64(runtime.NumGoroutine()))
		return nil
	}, cpuGauge, heapGauge, goroutineGauge)
}
