package email

import (
	"context"

	"github.com/utafrali/bookshop/internal/domain"
)

// Sender defines the interface for delivering order confirmations.
type Sender interface {
	Name() string
	SendOrderConfirmation(ctx context.Context, recipient string, order *domain.Order) error
}
