package scoped

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/wippyai/scoped"

// instruments holds the library's OTel metric instruments.
type instruments struct {
	registrations   metric.Int64Counter
	deregistrations metric.Int64Counter
	active          metric.Int64UpDownCounter
	scopeLifetime   metric.Float64Histogram
}

var (
	defaultInstruments     *instruments
	defaultInstrumentsOnce sync.Once
	defaultInstrumentsErr  error
)

// getInstruments returns the default instruments, lazily initialized from
// the global meter provider. Returns nil if initialization failed, in
// which case metrics are silently disabled.
//
// Configure the provider before entering the first scope:
//
//	otel.SetMeterProvider(yourProvider)
func getInstruments() *instruments {
	defaultInstrumentsOnce.Do(func() {
		defaultInstruments, defaultInstrumentsErr = newInstruments(otel.Meter(instrumentationName))
	})
	if defaultInstrumentsErr != nil {
		return nil
	}
	return defaultInstruments
}

func newInstruments(meter metric.Meter) (*instruments, error) {
	registrations, err := meter.Int64Counter("scoped.registrations",
		metric.WithDescription("Number of callbacks registered"),
	)
	if err != nil {
		return nil, err
	}

	deregistrations, err := meter.Int64Counter("scoped.deregistrations",
		metric.WithDescription("Number of callbacks deregistered"),
	)
	if err != nil {
		return nil, err
	}

	active, err := meter.Int64UpDownCounter("scoped.registrations.active",
		metric.WithDescription("Registrations currently live"),
	)
	if err != nil {
		return nil, err
	}

	scopeLifetime, err := meter.Float64Histogram("scoped.scope.lifetime_ms",
		metric.WithDescription("Scope lifetime in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &instruments{
		registrations:   registrations,
		deregistrations: deregistrations,
		active:          active,
		scopeLifetime:   scopeLifetime,
	}, nil
}

func (m *instruments) registered(ctx context.Context) {
	m.registrations.Add(ctx, 1)
	m.active.Add(ctx, 1)
}

func (m *instruments) deregistered(ctx context.Context) {
	m.deregistrations.Add(ctx, 1)
	m.active.Add(ctx, -1)
}

func (m *instruments) scopeEnded(ctx context.Context, lifetime time.Duration) {
	m.scopeLifetime.Record(ctx, float64(lifetime)/float64(time.Millisecond))
}
