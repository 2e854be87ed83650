package payment

import "context"

// ChargeInput holds the parameters for authorizing a payment. The card
// number is used for the authorization decision only and is never stored.
type ChargeInput struct {
	Method     string
	CardNumber string
	ExpiryDate string
	CVV        string
	Amount     float64
}

// ChargeResult holds the outcome of a charge attempt. A decline is a
// successful call with Success false and a user-facing Message; a non-nil
// error from Charge means the gateway itself could not be reached.
type ChargeResult struct {
	Success       bool
	TransactionID string
	Message       string
}

// Gateway defines the interface for payment gateway integrations.
type Gateway interface {
	// Name returns the gateway name (e.g., "simulated").
	Name() string

	// Charge attempts to authorize the payment.
	Charge(ctx context.Context, input *ChargeInput) (*ChargeResult, error)
}
