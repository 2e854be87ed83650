package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/utafrali/bookshop/internal/domain"
	"github.com/utafrali/bookshop/internal/event"
	"github.com/utafrali/bookshop/internal/repository"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

// RegisterInput holds the parameters for creating an account.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

// UserService implements the business logic for account operations.
//
// Registration never rejects: a duplicate email silently overwrites the
// previous account, the email is not validated for shape, and its case is
// significant, so addresses differing only in case coexist as separate
// accounts. Passwords are compared in plaintext. All of this reproduces the
// storefront this service replaces; a hardened variant would hash credentials
// and normalize emails before the uniqueness check.
type UserService struct {
	repo     repository.UserRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewUserService creates a new user service. The producer may be nil when
// event publishing is disabled.
func NewUserService(repo repository.UserRepository, producer *event.Producer, logger *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// Register creates an account under the submitted email, overwriting any
// account previously registered with the byte-identical address.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}

	user := &domain.User{
		Email:     input.Email,
		Password:  input.Password,
		Name:      input.Name,
		Address:   input.Address,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish user.registered event",
				slog.String("email", user.Email),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login authenticates a user by exact email and plaintext password match.
// A missing account and a wrong password return the same error so the
// response does not reveal which one failed.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user.Password != password {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("email", user.Email),
	)

	return user, nil
}

// GetByEmail retrieves the account registered under the exact email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
