package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/utafrali/bookshop/internal/catalog"
	"github.com/utafrali/bookshop/internal/domain"
	"github.com/utafrali/bookshop/internal/event"
	"github.com/utafrali/bookshop/internal/repository"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

// ParseQuantity coerces a raw form value into a quantity. Surrounding
// whitespace is not tolerated, matching strconv semantics.
func ParseQuantity(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidInput("Quantity must be a valid number")
	}
	return n, nil
}

// CartService implements the business logic for cart operations. Book data
// is always resolved through the catalog so cart lines carry current prices
// at add time.
type CartService struct {
	catalog  *catalog.Catalog
	repo     repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service. The producer may be nil when
// event publishing is disabled.
func NewCartService(cat *catalog.Catalog, repo repository.CartRepository, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		catalog:  cat,
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// Get retrieves the cart for the given key. If no cart exists yet, an empty
// cart is returned without persisting it.
func (s *CartService) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}

	cart, err := s.repo.Get(ctx, cartID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return newEmptyCart(cartID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddBook resolves the title against the catalog and adds quantity copies to
// the cart, merging with an existing line for the same title.
func (s *CartService) AddBook(ctx context.Context, cartID, title string, quantity int) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}

	book, err := s.catalog.GetBookByTitle(title)
	if err != nil {
		return nil, err
	}

	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if err := cart.AddBook(book, quantity); err != nil {
		return nil, err
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "book added to cart",
		slog.String("cart_id", cartID),
		slog.String("title", title),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity of an existing line. An absent title is a
// no-op; a non-positive quantity is rejected by the cart model.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, title string, quantity int) (*domain.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if err := cart.UpdateQuantity(title, quantity); err != nil {
		return nil, err
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart quantity updated",
		slog.String("cart_id", cartID),
		slog.String("title", title),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// SetQuantity writes the quantity of an existing line directly, skipping the
// positive-quantity rule. The update form routes its zero case here, so a
// zeroed line stays in the cart instead of being removed.
func (s *CartService) SetQuantity(ctx context.Context, cartID, title string, quantity int) (*domain.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if i := cart.FindIndex(title); i >= 0 {
		cart.Items[i].Quantity = quantity
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart quantity set",
		slog.String("cart_id", cartID),
		slog.String("title", title),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveBook removes the line for the given title. Removing an absent title
// is a no-op.
func (s *CartService) RemoveBook(ctx context.Context, cartID, title string) (*domain.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cart.RemoveBook(title)

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "book removed from cart",
		slog.String("cart_id", cartID),
		slog.String("title", title),
	)

	return cart, nil
}

// Clear empties the cart and persists the empty state.
func (s *CartService) Clear(ctx context.Context, cartID string) error {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return err
	}

	cart.Clear()

	return s.save(ctx, cart)
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
				slog.String("cart_id", cart.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

func newEmptyCart(cartID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:        cartID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
