package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/utafrali/bookshop/internal/domain"
	"github.com/utafrali/bookshop/internal/repository"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

// OrderService implements read access to the order registry.
type OrderService struct {
	repo   repository.OrderRepository
	logger *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:   repo,
		logger: logger,
	}
}

// GetByID retrieves an order for the confirmation page.
func (s *OrderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return order, nil
}

// ListByCustomer returns the order history for the given customer email,
// oldest first.
func (s *OrderService) ListByCustomer(ctx context.Context, email string) ([]*domain.Order, error) {
	orders, err := s.repo.ListByCustomer(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
