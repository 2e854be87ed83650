package payment

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyGateway struct {
	err error
}

func (g *flakyGateway) Name() string { return "flaky" }

func (g *flakyGateway) Charge(_ context.Context, _ *ChargeInput) (*ChargeResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &ChargeResult{Success: false, Message: DeclineMessage}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// A run of declines must not open the breaker: declines are completed calls.
func TestBreakerGateway_DeclinesDoNotTrip(t *testing.T) {
	gw := NewBreakerGateway(NewSimulatedGateway("1111"), testLogger())
	input := &ChargeInput{CardNumber: "0000000000001111", Amount: 5}

	for i := 0; i < 20; i++ {
		result, err := gw.Charge(context.Background(), input)
		require.NoError(t, err)
		assert.False(t, result.Success)
	}
}

func TestBreakerGateway_TransportErrorsTrip(t *testing.T) {
	inner := &flakyGateway{err: errors.New("connection refused")}
	gw := NewBreakerGateway(inner, testLogger())
	input := &ChargeInput{CardNumber: "1234567890123456", Amount: 5}

	var lastErr error
	for i := 0; i < 10; i++ {
		_, lastErr = gw.Charge(context.Background(), input)
	}

	require.Error(t, lastErr)
	// Once open, calls fail fast without reaching the gateway.
	assert.NotEqual(t, "connection refused", lastErr.Error())
}

func TestBreakerGateway_PassesThroughSuccess(t *testing.T) {
	gw := NewBreakerGateway(NewSimulatedGateway("1111"), testLogger())

	result, err := gw.Charge(context.Background(), &ChargeInput{CardNumber: "1234567890123456", Amount: 5})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.TransactionID)
}
