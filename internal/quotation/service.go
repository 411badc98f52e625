package quotation

import (
	"context"
	"fmt"
	"time"

	"github.com/quotedesk/quotedesk/internal/company"
	"github.com/quotedesk/quotedesk/internal/profile"
)

// Service provides business logic for quotations.
type Service struct {
	repo        Repository
	companyRepo company.Repository
	profileRepo profile.Repository
	now         func() time.Time
}

// NewService constructs a quotation service.
func NewService(repo Repository, companyRepo company.Repository, profileRepo profile.Repository) *Service {
	return &Service{
		repo:        repo,
		companyRepo: companyRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

// Create assigns a fresh document number and persists the quotation
// with Pending status. Number reservation and the insert share one
// transaction, so an insert failure never burns a sequence gap into a
// committed state.
func (s *Service) Create(ctx context.Context, userID int64, req CreateQuotationRequest) (*Quotation, error) {
	if _, err := s.companyRepo.Get(ctx, userID, req.CompanyID); err != nil {
		return nil, fmt.Errorf("verify company: %w", err)
	}

	prof, err := s.profileRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile for numbering: %w", err)
	}

	lines, grandTotal := buildLines(req.Products)
	now := s.now()

	var created *Quotation
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		seq, err := repo.NextSequence(ctx, userID, FiscalYear(now))
		if err != nil {
			return fmt.Errorf("reserve sequence: %w", err)
		}

		number, err := NumberAt(prof.QuotationPrefix, int(seq)-1, now)
		if err != nil {
			return fmt.Errorf("build number: %w", err)
		}

		q := Quotation{
			UserID:             userID,
			Number:             number,
			Date:               req.Date,
			CompanyID:          req.CompanyID,
			Products:           lines,
			GrandTotal:         grandTotal,
			TermsAndConditions: req.TermsAndConditions,
			ReferencedBy:       req.ReferencedBy,
			CreatedBy:          req.CreatedBy,
			Status:             StatusPending,
		}
		id, err := repo.Create(ctx, q)
		if err != nil {
			return fmt.Errorf("insert quotation: %w", err)
		}

		created, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*Quotation, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, req ListQuotationsRequest) (*ListQuotationsResponse, error) {
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	quotations, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	if quotations == nil {
		quotations = []Quotation{}
	}

	return &ListQuotationsResponse{
		Quotations: quotations,
		Total:      total,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}, nil
}

// Update replaces the quotation's editable fields and its full line
// set. The document number and status are preserved.
func (s *Service) Update(ctx context.Context, userID, id int64, req UpdateQuotationRequest) (*Quotation, error) {
	existing, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.CompanyID != existing.CompanyID {
		if _, err := s.companyRepo.Get(ctx, userID, req.CompanyID); err != nil {
			return nil, fmt.Errorf("verify company: %w", err)
		}
	}

	lines, grandTotal := buildLines(req.Products)

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		return repo.Update(ctx, Quotation{
			ID:                 id,
			UserID:             userID,
			Date:               req.Date,
			CompanyID:          req.CompanyID,
			Products:           lines,
			GrandTotal:         grandTotal,
			TermsAndConditions: req.TermsAndConditions,
			ReferencedBy:       req.ReferencedBy,
			CreatedBy:          req.CreatedBy,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("update quotation: %w", err)
	}

	return s.repo.Get(ctx, userID, id)
}

func (s *Service) UpdateProgress(ctx context.Context, userID, id int64, status Status) (*Quotation, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	if err := s.repo.UpdateStatus(ctx, userID, id, status); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

// Duplicate copies a quotation into a new record: fresh number,
// today's date, status reset to Pending, lines copied verbatim.
func (s *Service) Duplicate(ctx context.Context, userID, id int64) (*Quotation, error) {
	original, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	prof, err := s.profileRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile for numbering: %w", err)
	}

	now := s.now()

	var created *Quotation
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		seq, err := repo.NextSequence(ctx, userID, FiscalYear(now))
		if err != nil {
			return fmt.Errorf("reserve sequence: %w", err)
		}

		number, err := NumberAt(prof.QuotationPrefix, int(seq)-1, now)
		if err != nil {
			return fmt.Errorf("build number: %w", err)
		}

		lines := make([]Product, len(original.Products))
		for i, p := range original.Products {
			lines[i] = Product{
				SrNo:         p.SrNo,
				Name:         p.Name,
				Model:        p.Model,
				HSN:          p.HSN,
				Quantity:     p.Quantity,
				QuantityType: p.QuantityType,
				Price:        p.Price,
				Total:        p.Total,
			}
		}

		q := Quotation{
			UserID:             userID,
			Number:             number,
			Date:               now,
			CompanyID:          original.CompanyID,
			Products:           lines,
			GrandTotal:         original.GrandTotal,
			TermsAndConditions: original.TermsAndConditions,
			ReferencedBy:       original.ReferencedBy,
			CreatedBy:          original.CreatedBy,
			Status:             StatusPending,
		}
		newID, err := repo.Create(ctx, q)
		if err != nil {
			return fmt.Errorf("insert duplicate: %w", err)
		}

		created, err = repo.Get(ctx, userID, newID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) Stats(ctx context.Context, userID int64) (*Stats, error) {
	return s.repo.Stats(ctx, userID)
}

// buildLines normalizes product inputs: 1-based sequence numbers and
// server-computed line totals. The grand total is the exact sum of
// line totals, no independent rounding.
func buildLines(inputs []ProductInput) ([]Product, float64) {
	lines := make([]Product, len(inputs))
	var grandTotal float64
	for i, in := range inputs {
		total := in.Quantity * in.Price
		lines[i] = Product{
			SrNo:         i + 1,
			Name:         in.Name,
			Model:        in.Model,
			HSN:          in.HSN,
			Quantity:     in.Quantity,
			QuantityType: in.QuantityType,
			Price:        in.Price,
			Total:        total,
		}
		grandTotal += total
	}
	return lines, grandTotal
}
