package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/bookshop/internal/domain"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

func TestCartRepository_GetMissing(t *testing.T) {
	repo := NewCartRepository()

	_, err := repo.Get(context.Background(), "nope")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCartRepository_SaveAndGet(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	cart := &domain.Cart{ID: "shared"}
	require.NoError(t, cart.AddBook(domain.Book{Title: "1984", Price: 8.99}, 2))
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalItems())
}

// The stored cart must not alias the caller's slice.
func TestCartRepository_Decoupled(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	cart := &domain.Cart{ID: "shared"}
	require.NoError(t, cart.AddBook(domain.Book{Title: "1984", Price: 8.99}, 2))
	require.NoError(t, repo.Save(ctx, cart))

	cart.Items[0].Quantity = 99

	got, err := repo.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestCartRepository_Delete(t *testing.T) {
	repo := NewCartRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.Cart{ID: "shared"}))
	require.NoError(t, repo.Delete(ctx, "shared"))

	_, err := repo.Get(ctx, "shared")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	// Deleting an absent cart is fine.
	assert.NoError(t, repo.Delete(ctx, "shared"))
}
