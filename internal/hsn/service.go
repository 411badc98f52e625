package hsn

import (
	"context"
	"fmt"
	"strings"
)

// Service provides business logic for the HSN catalog.
type Service struct {
	repo Repository
}

// NewService constructs an HSN service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the user's codes sorted ascending.
func (s *Service) List(ctx context.Context, userID int64) ([]Code, error) {
	codes, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list hsn codes: %w", err)
	}
	if codes == nil {
		codes = []Code{}
	}
	return codes, nil
}

// Add stores a trimmed code. Duplicates surface as
// shared.ErrDuplicate from the repository.
func (s *Service) Add(ctx context.Context, userID int64, code string) (*Code, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, fmt.Errorf("hsn code must not be blank")
	}
	return s.repo.Create(ctx, userID, trimmed)
}

// Delete removes a code from the catalog.
func (s *Service) Delete(ctx context.Context, userID int64, code string) error {
	return s.repo.DeleteByCode(ctx, userID, strings.TrimSpace(code))
}
