package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/bookshop/internal/domain"
	"github.com/utafrali/bookshop/pkg/database"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

func newTestOrderRepo(t *testing.T) (*OrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return NewOrderRepository(mock), mock
}

func sampleOrder() *domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Order{
		ID:            "order-001",
		CustomerEmail: "reader@example.com",
		CustomerName:  "Avid Reader",
		Items: []domain.CartItem{
			{Book: domain.Book{Title: "1984", Category: "Dystopia", Price: 8.99}, Quantity: 2},
		},
		Shipping: domain.ShippingInfo{
			Address: "123 Main St",
			City:    "Springfield",
			ZipCode: "12345",
		},
		PaymentMethod: "credit_card",
		TransactionID: "TXN-abc",
		Subtotal:      17.98,
		Discount:      0,
		Total:         17.98,
		CreatedAt:     now,
	}
}

func orderRows(o *domain.Order) *pgxmock.Rows {
	itemsJSON, _ := json.Marshal(o.Items)
	shippingJSON, _ := json.Marshal(o.Shipping)
	return pgxmock.NewRows([]string{
		"id", "customer_email", "customer_name", "items", "shipping",
		"payment_method", "transaction_id", "subtotal", "discount", "total", "created_at",
	}).AddRow(
		o.ID, o.CustomerEmail, o.CustomerName, itemsJSON, shippingJSON,
		o.PaymentMethod, o.TransactionID, o.Subtotal, o.Discount, o.Total, o.CreatedAt,
	)
}

func TestOrderRepository_Create(t *testing.T) {
	repo, mock := newTestOrderRepo(t)
	order := sampleOrder()

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			order.ID, order.CustomerEmail, order.CustomerName,
			pgxmock.AnyArg(), pgxmock.AnyArg(),
			order.PaymentMethod, order.TransactionID,
			order.Subtotal, order.Discount, order.Total, order.CreatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), order)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_DBError(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	mock.ExpectExec("INSERT INTO orders").
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), sampleOrder())

	assert.Error(t, err)
}

func TestOrderRepository_GetByID(t *testing.T) {
	repo, mock := newTestOrderRepo(t)
	order := sampleOrder()

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs(order.ID).
		WillReturnRows(orderRows(order))

	got, err := repo.GetByID(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, order.CustomerEmail, got.CustomerEmail)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "1984", got.Items[0].Book.Title)
	assert.Equal(t, "Springfield", got.Shipping.City)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nope")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestOrderRepository_ListByCustomer(t *testing.T) {
	repo, mock := newTestOrderRepo(t)
	order := sampleOrder()

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs(order.CustomerEmail).
		WillReturnRows(orderRows(order))

	orders, err := repo.ListByCustomer(context.Background(), order.CustomerEmail)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByCustomer_Empty(t *testing.T) {
	repo, mock := newTestOrderRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "customer_email", "customer_name", "items", "shipping",
			"payment_method", "transaction_id", "subtotal", "discount", "total", "created_at",
		}))

	orders, err := repo.ListByCustomer(context.Background(), "nobody@example.com")

	require.NoError(t, err)
	assert.Empty(t, orders)
}
