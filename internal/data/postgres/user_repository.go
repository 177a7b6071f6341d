// Package postgres provides the PostgreSQL implementation of the identity
// repository. Ledger entries live in MongoDB; only users are kept here.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ledgerbook/internal/domain/identity"
	"github.com/ledgerbook/internal/platform/persistence"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches
const uniqueViolation = "23505"

// UserRepository implements the identity.Repository interface for PostgreSQL
type UserRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewUserRepository(logger *slog.Logger, db *persistence.PostgresDB) identity.Repository {
	return &UserRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// NewUserRepositoryWithQuerier creates a repository over an arbitrary querier.
// Used by tests to substitute a mock connection.
func NewUserRepositoryWithQuerier(logger *slog.Logger, querier persistence.Querier) identity.Repository {
	return &UserRepository{
		querier: querier,
		logger:  logger,
	}
}

// Create stores a new user. Returns ErrDuplicateEmail if the email is
// already registered (enforced by a unique index).
func (r *UserRepository) Create(ctx context.Context, user *identity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.querier.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return identity.ErrDuplicateEmail{Email: user.Email}
		}
		r.logger.Error("Failed to create user", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email. Returns ErrUserNotFound if no user
// is registered under it.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	var user identity.User
	err := r.querier.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrUserNotFound{Email: email}
		}
		r.logger.Error("Failed to get user by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// GetByID retrieves a user by its id
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	var user identity.User
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrUserNotFound{}
		}
		r.logger.Error("Failed to get user", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
