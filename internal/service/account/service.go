package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"newsstand/internal/crypto"
	"newsstand/internal/domain"
	"newsstand/internal/repository"
)

var (
	// ErrDuplicateUsername signals the case-folded username is taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials covers both unknown username and wrong
	// password, so a caller cannot tell which one failed.
	ErrInvalidCredentials = errors.New("incorrect username and/or password")
	// ErrInvalidInput marks a rejected registration submission.
	ErrInvalidInput = errors.New("invalid registration input")
)

// Service handles identity workflows.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger) Service {
	return Service{users: users, logger: logger}
}

// Register creates a new account. The username is case-folded before the
// uniqueness check and the stored record never contains the plaintext.
func (s Service) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	s.logger.Info("user registered", "username", user.Username)
	return user, nil
}

// Login verifies credentials and returns the account. Lookup misses and
// hash mismatches collapse into ErrInvalidCredentials.
func (s Service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	s.logger.Info("user logged in", "username", user.Username)
	return user, nil
}

// Resolve returns the account bound to a session username. Session
// middleware calls this on every request so a token naming a deleted user
// is never trusted.
func (s Service) Resolve(ctx context.Context, username string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, repository.ErrNotFound
	}
	return s.users.GetUserByUsername(ctx, username)
}
