package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/bookshop/internal/domain"
	apperrors "github.com/utafrali/bookshop/pkg/errors"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
//
// The email column is the primary key with the default collation, so lookups
// stay case-sensitive and case-differing duplicates coexist exactly as they
// do in the memory registry.
type UserRepository struct {
	pool DBTX
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool DBTX) *UserRepository {
	return &UserRepository{pool: pool}
}

// Save upserts the user under its exact email.
func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, password, name, address, order_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE
		SET password = EXCLUDED.password, name = EXCLUDED.name, address = EXCLUDED.address`

	_, err := r.pool.Exec(ctx, query,
		u.Email,
		u.Password,
		u.Name,
		u.Address,
		u.OrderIDs,
		u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by exact email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT email, password, name, address, order_ids, created_at
		FROM users
		WHERE email = $1`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.Email,
		&u.Password,
		&u.Name,
		&u.Address,
		&u.OrderIDs,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user", email)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &u, nil
}

// AddOrderRef appends an order id to the user's history. Unknown emails are
// ignored so guests can check out without an account.
func (r *UserRepository) AddOrderRef(ctx context.Context, email, orderID string) error {
	query := `
		UPDATE users
		SET order_ids = array_append(order_ids, $2)
		WHERE email = $1`

	if _, err := r.pool.Exec(ctx, query, email, orderID); err != nil {
		return fmt.Errorf("append order ref: %w", err)
	}

	return nil
}
