package memory

import (
	"context"
	"sync"

	"github.com/utafrali/bookshop/internal/domain"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

// CartRepository implements repository.CartRepository with an in-process map.
// This is the default store: a process restart loses all carts.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

// NewCartRepository creates an empty in-memory cart repository.
func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts: make(map[string]*domain.Cart),
	}
}

// Get retrieves a cart by its key. The returned cart is a copy; callers
// mutate it and Save it back.
func (r *CartRepository) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return nil, apperrors.NotFound("cart", cartID)
	}
	return copyCart(cart), nil
}

// Save persists a cart, overwriting any existing cart for the same key.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.ID] = copyCart(cart)
	return nil
}

// Delete removes a cart by its key.
func (r *CartRepository) Delete(ctx context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, cartID)
	return nil
}

// copyCart clones the cart so stored state never aliases a caller's slice.
func copyCart(c *domain.Cart) *domain.Cart {
	clone := *c
	clone.Items = c.Snapshot()
	return &clone
}
