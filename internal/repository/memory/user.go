package memory

import (
	"context"
	"sync"

	"github.com/utafrali/bookshop/internal/domain"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

// UserRepository implements repository.UserRepository with an in-process map
// keyed by the email exactly as submitted. "User@example.com" and
// "user@example.com" are distinct accounts here, matching the original
// storefront's behavior.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewUserRepository creates an empty in-memory user registry.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*domain.User),
	}
}

// Save stores the user under its email, overwriting a previous account with
// the byte-identical email.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.Email] = copyUser(user)
	return nil
}

// GetByEmail retrieves a user by exact email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, apperrors.NotFound("user", email)
	}
	return copyUser(user), nil
}

// AddOrderRef appends an order id to the user's history. Unknown emails are
// ignored: guests can check out without an account.
func (r *UserRepository) AddOrderRef(ctx context.Context, email, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil
	}
	user.OrderIDs = append(user.OrderIDs, orderID)
	return nil
}

func copyUser(u *domain.User) *domain.User {
	clone := *u
	clone.OrderIDs = append([]string(nil), u.OrderIDs...)
	return &clone
}
