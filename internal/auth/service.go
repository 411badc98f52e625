package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/quotedesk/quotedesk/internal/shared"
)

// Service provides authentication business logic.
type Service struct {
	repo Repository
}

// NewService constructs an auth service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates the given credentials and returns the user
// on success. Returns shared.ErrInvalidCredentials when the email is
// unknown, the password does not match, or the account is inactive.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a new active user account with a bcrypt-hashed
// password. Duplicate emails surface as a repository error.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.repo.CreateUser(ctx, email, string(hash), firstName, lastName)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// RegisterSession records a login session for auditing.
func (s *Service) RegisterSession(ctx context.Context, sessionID string, userID int64, ttl time.Duration, ip, ua string) error {
	return s.repo.CreateSession(ctx, sessionID, userID, time.Now().Add(ttl), ip, ua)
}

// RemoveSession deletes the session audit record on logout.
func (s *Service) RemoveSession(ctx context.Context, sessionID string) error {
	return s.repo.DeleteSession(ctx, sessionID)
}
