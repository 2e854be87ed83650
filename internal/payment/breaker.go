package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerGateway wraps a Gateway with a circuit breaker. Only transport
// errors count as failures; a decline is a completed call and never trips
// the breaker, so a run of bad cards cannot lock out good ones.
type BreakerGateway struct {
	inner   Gateway
	breaker *gobreaker.CircuitBreaker[*ChargeResult]
	logger  *slog.Logger
}

// NewBreakerGateway wraps the given gateway with a circuit breaker.
func NewBreakerGateway(inner Gateway, logger *slog.Logger) *BreakerGateway {
	settings := gobreaker.Settings{
		Name:        inner.Name(),
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 &&
				float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("payment gateway circuit state changed",
				slog.String("gateway", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &BreakerGateway{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[*ChargeResult](settings),
		logger:  logger,
	}
}

// Name returns the wrapped gateway's name.
func (g *BreakerGateway) Name() string {
	return g.inner.Name()
}

// Charge forwards to the wrapped gateway through the breaker.
func (g *BreakerGateway) Charge(ctx context.Context, input *ChargeInput) (*ChargeResult, error) {
	return g.breaker.Execute(func() (*ChargeResult, error) {
		return g.inner.Charge(ctx, input)
	})
}
