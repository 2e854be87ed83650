package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/bookshop/internal/domain"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

func TestOrderRepository_CreateAndGet(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	order := &domain.Order{ID: "order-1", CustomerEmail: "a@example.com", Total: 10.99}
	require.NoError(t, repo.Create(ctx, order))

	got, err := repo.GetByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.CustomerEmail)
	assert.InDelta(t, 10.99, got.Total, 1e-9)
}

func TestOrderRepository_CreateDuplicate(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Order{ID: "order-1"}))
	err := repo.Create(ctx, &domain.Order{ID: "order-1"})

	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
}

func TestOrderRepository_GetMissing(t *testing.T) {
	repo := NewOrderRepository()

	_, err := repo.GetByID(context.Background(), "nope")

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestOrderRepository_ListByCustomer_OldestFirst(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Order{
			ID:            fmt.Sprintf("order-%d", i),
			CustomerEmail: "a@example.com",
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Order{ID: "other", CustomerEmail: "b@example.com"}))

	orders, err := repo.ListByCustomer(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i, o := range orders {
		assert.Equal(t, fmt.Sprintf("order-%d", i+1), o.ID)
	}
}
