package domain

import (
	"time"

	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

// Cart represents a shopping cart. Each title appears at most once; items
// keep their insertion order for display.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem represents a single line in the cart.
type CartItem struct {
	Book     Book `json:"book"`
	Quantity int  `json:"quantity"`
}

// Subtotal returns the price of this line (quantity times unit price).
func (i CartItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Book.Price
}

// FindIndex returns the index of the cart item with the given title.
// Returns -1 if not found. Carts hold a handful of distinct titles, so a
// linear scan over distinct items is fine; what matters is that nothing
// iterates per unit.
func (c *Cart) FindIndex(title string) int {
	for i := range c.Items {
		if c.Items[i].Book.Title == title {
			return i
		}
	}
	return -1
}

// AddBook adds quantity copies of the book to the cart, merging with an
// existing line for the same title. Quantity must be positive.
func (c *Cart) AddBook(book Book, quantity int) error {
	if quantity <= 0 {
		return apperrors.InvalidInput("Quantity must be greater than zero")
	}

	if i := c.FindIndex(book.Title); i >= 0 {
		c.Items[i].Quantity += quantity
		return nil
	}

	c.Items = append(c.Items, CartItem{Book: book, Quantity: quantity})
	return nil
}

// RemoveBook removes the line for the given title. Removing an absent title
// is a no-op, not an error.
func (c *Cart) RemoveBook(title string) {
	if i := c.FindIndex(title); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// UpdateQuantity sets the quantity of an existing line. Quantity must be
// positive; an absent title is a no-op.
func (c *Cart) UpdateQuantity(title string, quantity int) error {
	if quantity <= 0 {
		return apperrors.InvalidInput("Quantity must be greater than zero")
	}

	if i := c.FindIndex(title); i >= 0 {
		c.Items[i].Quantity = quantity
	}
	return nil
}

// TotalItems returns the total number of units in the cart.
func (c *Cart) TotalItems() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// TotalPrice returns the cart total in a single pass over distinct items,
// independent of the unit count per line.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += float64(item.Quantity) * item.Book.Price
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clear removes all lines from the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Snapshot returns a copy of the cart lines, decoupled from the live cart so
// a placed order is unaffected by later cart mutations.
func (c *Cart) Snapshot() []CartItem {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return items
}
