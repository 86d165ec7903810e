package scoped

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// findMetric finds a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestInstruments_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("shutting down meter provider: %v", err)
		}
	}()

	ins, err := newInstruments(provider.Meter(instrumentationName))
	if err != nil {
		t.Fatalf("newInstruments: %v", err)
	}

	ctx := context.Background()
	ins.registered(ctx)
	ins.registered(ctx)
	ins.deregistered(ctx)
	ins.scopeEnded(ctx, 5*time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	regs := findMetric(&rm, "scoped.registrations")
	if regs == nil {
		t.Fatal("scoped.registrations not collected")
	}
	sum, ok := regs.Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) != 1 {
		t.Fatalf("unexpected registrations data: %+v", regs.Data)
	}
	if sum.DataPoints[0].Value != 2 {
		t.Fatalf("registrations = %d, want 2", sum.DataPoints[0].Value)
	}

	active := findMetric(&rm, "scoped.registrations.active")
	if active == nil {
		t.Fatal("scoped.registrations.active not collected")
	}
	activeSum, ok := active.Data.(metricdata.Sum[int64])
	if !ok || len(activeSum.DataPoints) != 1 {
		t.Fatalf("unexpected active data: %+v", active.Data)
	}
	if activeSum.DataPoints[0].Value != 1 {
		t.Fatalf("active = %d, want 1", activeSum.DataPoints[0].Value)
	}

	lifetime := findMetric(&rm, "scoped.scope.lifetime_ms")
	if lifetime == nil {
		t.Fatal("scoped.scope.lifetime_ms not collected")
	}
	hist, ok := lifetime.Data.(metricdata.Histogram[float64])
	if !ok || len(hist.DataPoints) != 1 {
		t.Fatalf("unexpected lifetime data: %+v", lifetime.Data)
	}
	if hist.DataPoints[0].Count != 1 {
		t.Fatalf("lifetime count = %d, want 1", hist.DataPoints[0].Count)
	}
}

func TestGetInstruments_DefaultProvider(t *testing.T) {
	// Under the default (noop) global provider, instrument creation must
	// still succeed so the library's record paths stay cheap no-ops.
	if getInstruments() == nil {
		t.Fatal("getInstruments returned nil under the default provider")
	}
}
