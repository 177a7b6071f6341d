package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerbook/internal/config"
	"github.com/ledgerbook/internal/domain/identity"
)

// ErrInvalidCredentials covers both unknown email and wrong password so a
// login failure never reveals which of the two it was
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidToken indicates a bearer token that failed verification
var ErrInvalidToken = errors.New("invalid or expired token")

// AuthServiceImpl implements the AuthService interface using bcrypt
// password hashing and HMAC-signed bearer tokens
type AuthServiceImpl struct {
	userRepo identity.Repository
	cfg      *config.AuthConfig
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(logger *slog.Logger, userRepo identity.Repository, cfg *config.AuthConfig) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// Register creates a new user with a bcrypt-hashed password
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (*identity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &identity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user_id", user.ID.String())

	return user, nil
}

// Login verifies the credentials and issues a signed token carrying the
// user id as its subject
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *identity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound{}) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID.String())

	return token, user, nil
}

// VerifyToken validates the signature and expiry of a bearer token and
// returns the user id it was issued for
func (s *AuthServiceImpl) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
