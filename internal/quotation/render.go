package quotation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/quotedesk/quotedesk/internal/company"
	"github.com/quotedesk/quotedesk/internal/profile"
)

// Renderer turns a fully-resolved quotation into document bytes.
type Renderer interface {
	Render(ctx context.Context, q *Quotation, comp *company.Company, prof *profile.Profile) ([]byte, error)
}

// Resolve loads a quotation together with the company and profile the
// renderer needs.
func (s *Service) Resolve(ctx context.Context, userID, id int64) (*Quotation, *company.Company, *profile.Profile, error) {
	q, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, nil, nil, err
	}

	var (
		comp *company.Company
		prof *profile.Profile
	)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := s.companyRepo.Get(ctx, userID, q.CompanyID)
		if err != nil {
			return fmt.Errorf("resolve company: %w", err)
		}
		comp = c
		return nil
	})

	g.Go(func() error {
		p, err := s.profileRepo.GetByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("resolve profile: %w", err)
		}
		prof = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return q, comp, prof, nil
}
