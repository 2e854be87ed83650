package memory

import (
	"context"
	"sync"

	"github.com/utafrali/bookshop/internal/domain"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

// OrderRepository implements repository.OrderRepository with an in-process
// map keyed by order id, plus insertion order for per-customer listings.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	ids    []string
}

// NewOrderRepository creates an empty in-memory order registry.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

// Create registers a new order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return apperrors.AlreadyExists("order", "id", order.ID)
	}
	r.orders[order.ID] = copyOrder(order)
	r.ids = append(r.ids, order.ID)
	return nil
}

// GetByID retrieves an order by its id.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NotFound("order", id)
	}
	return copyOrder(order), nil
}

// ListByCustomer returns all orders placed with the given customer email,
// oldest first.
func (r *OrderRepository) ListByCustomer(ctx context.Context, email string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Order
	for _, id := range r.ids {
		if o := r.orders[id]; o.CustomerEmail == email {
			out = append(out, copyOrder(o))
		}
	}
	return out, nil
}

func copyOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Items = make([]domain.CartItem, len(o.Items))
	copy(clone.Items, o.Items)
	return &clone
}
