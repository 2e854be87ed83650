package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// DeclineMessage is the user-facing reason returned for the simulated
// bad-suffix decline.
const DeclineMessage = "Invalid card number. Please check your card details and try again."

// txnPrefix is prepended to every generated transaction id.
const txnPrefix = "TXN-"

// SimulatedGateway authorizes payments without any external call. A card
// number ending in the configured bad suffix is always declined; every other
// number is authorized and assigned a fresh transaction id. No state is kept
// between calls, so the same card always yields the same outcome.
type SimulatedGateway struct {
	badSuffix string
}

// NewSimulatedGateway creates a simulated gateway declining card numbers
// that end in badSuffix (e.g. "1111").
func NewSimulatedGateway(badSuffix string) *SimulatedGateway {
	return &SimulatedGateway{badSuffix: badSuffix}
}

// Name returns the gateway name.
func (g *SimulatedGateway) Name() string {
	return "simulated"
}

// Charge authorizes the payment. Spaces in the card number are ignored, so
// "0000 0000 0000 1111" and "0000000000001111" decline alike.
func (g *SimulatedGateway) Charge(_ context.Context, input *ChargeInput) (*ChargeResult, error) {
	card := strings.ReplaceAll(input.CardNumber, " ", "")

	if g.badSuffix != "" && strings.HasSuffix(card, g.badSuffix) {
		return &ChargeResult{
			Success: false,
			Message: DeclineMessage,
		}, nil
	}

	return &ChargeResult{
		Success:       true,
		TransactionID: txnPrefix + uuid.New().String(),
	}, nil
}
