package catalog

import (
	"github.com/utafrali/bookshop/internal/domain"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

// Catalog is the in-memory book inventory. It is built once at startup and
// read-only afterward; the title index gives O(1) lookups instead of the
// linear scan the original storefront shipped with.
type Catalog struct {
	books   []domain.Book
	byTitle map[string]domain.Book
}

// New builds a catalog from the given books, preserving their order for
// display. Later duplicates of a title are ignored.
func New(books []domain.Book) *Catalog {
	c := &Catalog{
		books:   make([]domain.Book, 0, len(books)),
		byTitle: make(map[string]domain.Book, len(books)),
	}
	for _, b := range books {
		if _, ok := c.byTitle[b.Title]; ok {
			continue
		}
		c.books = append(c.books, b)
		c.byTitle[b.Title] = b
	}
	return c
}

// Default returns the catalog the storefront ships with.
func Default() *Catalog {
	return New([]domain.Book{
		{Title: "The Great Gatsby", Category: "Fiction", Price: 10.99, CoverImage: "gatsby.jpg"},
		{Title: "1984", Category: "Dystopia", Price: 8.99, CoverImage: "1984.jpg"},
		{Title: "I Ching", Category: "Philosophy", Price: 12.50, CoverImage: "iching.jpg"},
		{Title: "Moby Dick", Category: "Classics", Price: 11.99, CoverImage: "mobydick.jpg"},
		{Title: "Brave New World", Category: "Dystopia", Price: 9.49, CoverImage: "bravenewworld.jpg"},
		{Title: "To Kill a Mockingbird", Category: "Fiction", Price: 7.99, CoverImage: "mockingbird.jpg"},
	})
}

// Books returns all books in display order.
func (c *Catalog) Books() []domain.Book {
	return c.books
}

// GetBookByTitle returns the book with the given title.
func (c *Catalog) GetBookByTitle(title string) (domain.Book, error) {
	b, ok := c.byTitle[title]
	if !ok {
		return domain.Book{}, apperrors.NotFound("book", title)
	}
	return b, nil
}

// IsEmpty reports whether the catalog has no books.
func (c *Catalog) IsEmpty() bool {
	return len(c.books) == 0
}
