package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is an authenticated owner of ledger entries. The id is the stable
// identity every store read and write is scoped by; email is only a login
// credential.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at"`
}

// Repository manages user persistence
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// ErrUserNotFound indicates a missing user
type ErrUserNotFound struct {
	Email string
}

func (e ErrUserNotFound) Error() string {
	return "user not found: " + e.Email
}

// Is implements the errors.Is interface for ErrUserNotFound
func (e ErrUserNotFound) Is(target error) bool {
	t, ok := target.(ErrUserNotFound)
	if !ok {
		return false
	}
	if t.Email == "" {
		return true
	}
	return e.Email == t.Email
}

// ErrDuplicateEmail indicates a registration against an existing email
type ErrDuplicateEmail struct {
	Email string
}

func (e ErrDuplicateEmail) Error() string {
	return "email already registered: " + e.Email
}

// Is implements the errors.Is interface for ErrDuplicateEmail
func (e ErrDuplicateEmail) Is(target error) bool {
	t, ok := target.(ErrDuplicateEmail)
	if !ok {
		return false
	}
	if t.Email == "" {
		return true
	}
	return e.Email == t.Email
}
