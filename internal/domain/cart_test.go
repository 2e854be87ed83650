package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

func testBook(title string, price float64) Book {
	return Book{Title: title, Category: "Fiction", Price: price}
}

func TestCart_AddBook(t *testing.T) {
	cart := &Cart{}

	require.NoError(t, cart.AddBook(testBook("The Great Gatsby", 10.99), 2))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "The Great Gatsby", cart.Items[0].Book.Title)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCart_AddBook_MergesSameTitle(t *testing.T) {
	cart := &Cart{}

	require.NoError(t, cart.AddBook(testBook("1984", 8.99), 1))
	require.NoError(t, cart.AddBook(testBook("1984", 8.99), 3))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
}

func TestCart_AddBook_RejectsNonPositive(t *testing.T) {
	cart := &Cart{}

	for _, qty := range []int{0, -1, -100} {
		err := cart.AddBook(testBook("1984", 8.99), qty)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		assert.Equal(t, "Quantity must be greater than zero", apperrors.Message(err))
	}

	assert.True(t, cart.IsEmpty())
}

func TestCart_PreservesInsertionOrder(t *testing.T) {
	cart := &Cart{}

	titles := []string{"Moby Dick", "1984", "I Ching"}
	for _, title := range titles {
		require.NoError(t, cart.AddBook(testBook(title, 9.99), 1))
	}

	for i, title := range titles {
		assert.Equal(t, title, cart.Items[i].Book.Title)
	}
}

func TestCart_RemoveBook(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddBook(testBook("1984", 8.99), 1))
	require.NoError(t, cart.AddBook(testBook("Moby Dick", 11.99), 1))

	cart.RemoveBook("1984")

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Moby Dick", cart.Items[0].Book.Title)
}

func TestCart_RemoveBook_AbsentIsNoOp(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddBook(testBook("1984", 8.99), 1))

	cart.RemoveBook("No Such Book")

	assert.Len(t, cart.Items, 1)
}

func TestCart_UpdateQuantity(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddBook(testBook("1984", 8.99), 1))

	require.NoError(t, cart.UpdateQuantity("1984", 5))

	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCart_UpdateQuantity_RejectsNonPositive(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddBook(testBook("1984", 8.99), 2))

	err := cart.UpdateQuantity("1984", 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCart_UpdateQuantity_AbsentIsNoOp(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddBook(testBook("1984", 8.99), 2))

	require.NoError(t, cart.UpdateQuantity("No Such Book", 5))

	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCart_Totals(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddBook(testBook("The Great Gatsby", 10.99), 2))
	require.NoError(t, cart.AddBook(testBook("1984", 8.99), 3))

	assert.Equal(t, 5, cart.TotalItems())
	assert.InDelta(t, 2*10.99+3*8.99, cart.TotalPrice(), 1e-9)
}

// TotalPrice must stay correct for large unit counts, where anything that
// iterates per unit would be both slow and drift-prone.
func TestCart_TotalPrice_LargeQuantity(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddBook(testBook("1984", 8.99), 50_000))

	assert.InDelta(t, 50_000*8.99, cart.TotalPrice(), 1e-6)
}

func TestCart_Clear(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddBook(testBook("1984", 8.99), 2))

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.TotalItems())
}

func TestCart_Snapshot_DecoupledFromCart(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddBook(testBook("1984", 8.99), 2))

	snapshot := cart.Snapshot()
	require.NoError(t, cart.UpdateQuantity("1984", 9))
	cart.RemoveBook("1984")

	require.Len(t, snapshot, 1)
	assert.Equal(t, 2, snapshot[0].Quantity)
}

func TestCartItem_Subtotal(t *testing.T) {
	item := CartItem{Book: testBook("1984", 8.99), Quantity: 3}
	assert.InDelta(t, 26.97, item.Subtotal(), 1e-9)
}

func BenchmarkCart_TotalPrice(b *testing.B) {
	cart := &Cart{}
	for i := 0; i < 20; i++ {
		_ = cart.AddBook(testBook(fmt.Sprintf("Book %d", i), 9.99), 10_000)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cart.TotalPrice()
	}
}
