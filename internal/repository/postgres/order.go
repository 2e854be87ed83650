package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/bookshop/internal/domain"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// It is the optional registry enabled by DATABASE_URL; the default deployment
// keeps orders in memory.
type OrderRepository struct {
	pool DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts a new order. Items and shipping details are stored as JSONB
// snapshots; orders are never updated afterward.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	shippingJSON, err := json.Marshal(o.Shipping)
	if err != nil {
		return fmt.Errorf("marshal shipping info: %w", err)
	}

	query := `
		INSERT INTO orders (id, customer_email, customer_name, items, shipping, payment_method, transaction_id, subtotal, discount, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.pool.Exec(ctx, query,
		o.ID,
		o.CustomerEmail,
		o.CustomerName,
		itemsJSON,
		shippingJSON,
		o.PaymentMethod,
		o.TransactionID,
		o.Subtotal,
		o.Discount,
		o.Total,
		o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its id.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, customer_email, customer_name, items, shipping, payment_method, transaction_id, subtotal, discount, total, created_at
		FROM orders
		WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("query order: %w", err)
	}

	return order, nil
}

// ListByCustomer returns all orders placed with the given customer email,
// oldest first.
func (r *OrderRepository) ListByCustomer(ctx context.Context, email string) ([]*domain.Order, error) {
	query := `
		SELECT id, customer_email, customer_name, items, shipping, payment_method, transaction_id, subtotal, discount, total, created_at
		FROM orders
		WHERE customer_email = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}

// scanOrder reads one order row, decoding the JSONB snapshots.
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o            domain.Order
		itemsJSON    []byte
		shippingJSON []byte
	)

	err := row.Scan(
		&o.ID,
		&o.CustomerEmail,
		&o.CustomerName,
		&itemsJSON,
		&shippingJSON,
		&o.PaymentMethod,
		&o.TransactionID,
		&o.Subtotal,
		&o.Discount,
		&o.Total,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	if err := json.Unmarshal(shippingJSON, &o.Shipping); err != nil {
		return nil, fmt.Errorf("unmarshal shipping info: %w", err)
	}

	return &o, nil
}
