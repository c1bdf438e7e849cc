package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/marketplace/internal/auth"
	"github.com/spec-kit/marketplace/internal/config"
	"github.com/spec-kit/marketplace/internal/domain"
	"github.com/spec-kit/marketplace/internal/repository"
	apperrors "github.com/spec-kit/marketplace/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	codec      *auth.TokenCodec
	bcryptCost int
}

// NewAuthService builds the service. The codec must have been constructed
// from the shared signing key at startup.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, codec *auth.TokenCodec) *AuthService {
	return &AuthService{
		users:      users,
		codec:      codec,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account and issues its first token. The token
// subject is the account email, which is also what ownership checks compare
// against downstream.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, string, time.Time, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	role = domain.Role(strings.ToUpper(string(role)))

	if name == "" || email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("name, email and password are required", nil)
	}
	if !domain.ValidRole(role) {
		return nil, "", time.Time{}, apperrors.NewValidationError("role must be CLIENT or SELLER", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("account with this email already exists", nil)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.codec.Sign(user.Email, string(user.Role))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates an account. Unknown email and wrong password collapse
// into the same error so credentials cannot be probed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.codec.Sign(user.Email, string(user.Role))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}
