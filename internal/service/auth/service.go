// Package auth verifies user credentials and hashes passwords.
// It is framework-agnostic and is used by the HTTP login endpoint and the admin CLI.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"yatube/internal/domain/entity"
	"yatube/internal/repository"
	"yatube/internal/utils/text"
)

// MinPasswordLength is the shortest password HashPassword accepts.
const MinPasswordLength = 8

// ErrInvalidCredentials is returned for an unknown username or a wrong password.
// Both cases share one error so callers cannot enumerate usernames.
var ErrInvalidCredentials = errors.New("invalid username or password")

// dummyHash is compared against when the user does not exist so both
// failure paths take a bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("yatube-dummy-password"), bcrypt.MinCost)

// Service authenticates users against the user repository.
type Service struct {
	Users repository.UserRepository
}

// NewService creates a new authentication service.
func NewService(users repository.UserRepository) *Service {
	return &Service{Users: users}
}

// Authenticate returns the user identified by username and password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if text.CountRunes(password) < MinPasswordLength {
		return "", &entity.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register validates the username, hashes the password and stores the user.
func (s *Service) Register(ctx context.Context, username, password string) (*entity.User, error) {
	if err := entity.ValidateUsername(username); err != nil {
		return nil, err
	}
	existing, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if existing != nil {
		return nil, &entity.ValidationError{Field: "username", Message: "username already exists"}
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{Username: username, PasswordHash: hash}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
