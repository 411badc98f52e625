package company

import (
	"context"
	"fmt"
)

// Service provides business logic for companies.
type Service struct {
	repo Repository
}

// NewService constructs a company service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*Company, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, req ListCompaniesRequest) (*ListCompaniesResponse, error) {
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	companies, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	if companies == nil {
		companies = []Company{}
	}

	return &ListCompaniesResponse{
		Companies: companies,
		Total:     total,
		Limit:     req.Limit,
		Offset:    req.Offset,
	}, nil
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateCompanyRequest) (*Company, error) {
	id, err := s.repo.Create(ctx, Company{
		UserID:        userID,
		Name:          req.Name,
		Address:       req.Address,
		Location:      req.Location,
		Email:         req.Email,
		Phone:         req.Phone,
		ContactPerson: req.ContactPerson,
		GSTIN:         req.GSTIN,
		Remarks:       req.Remarks,
	})
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Update(ctx context.Context, userID, id int64, req UpdateCompanyRequest) (*Company, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.ContactPerson != nil {
		updates["contact_person"] = *req.ContactPerson
	}
	if req.GSTIN != nil {
		updates["gstin"] = *req.GSTIN
	}
	if req.Remarks != nil {
		updates["remarks"] = *req.Remarks
	}

	if err := s.repo.Update(ctx, userID, id, updates); err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}
