package repository

import (
	"context"

	"github.com/utafrali/bookshop/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
// Implementations return pkg/errors.ErrNotFound when no cart exists for the key.
type CartRepository interface {
	// Get retrieves a cart by its cart key.
	Get(ctx context.Context, cartID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the same key.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart by its cart key.
	Delete(ctx context.Context, cartID string) error
}

// UserRepository defines the interface for the user registry.
//
// The email key is used exactly as submitted: lookups are case-sensitive and
// Save does not reject a re-registration, matching the original storefront.
type UserRepository interface {
	// Save stores the user under its email, overwriting a previous account
	// registered with the byte-identical email.
	Save(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by exact email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// AddOrderRef appends an order id to the user's history.
	AddOrderRef(ctx context.Context, email, orderID string) error
}

// OrderRepository defines the interface for the global order registry.
type OrderRepository interface {
	// Create registers a new order. Orders are immutable once created.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its id.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// ListByCustomer returns all orders placed with the given customer email,
	// oldest first.
	ListByCustomer(ctx context.Context, email string) ([]*domain.Order, error)
}
