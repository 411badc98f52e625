package profile

import (
	"context"
	"fmt"
	"strings"
)

// SaveProfileRequest is the payload for creating or replacing the
// caller's profile.
type SaveProfileRequest struct {
	CompanyName     string  `json:"companyName" validate:"required,min=1,max=255"`
	LogoURL         *string `json:"logoUrl" validate:"omitempty,url"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Website         *string `json:"website" validate:"omitempty,max=255"`
	Phone           *string `json:"phone" validate:"omitempty,max=50"`
	Mobile          *string `json:"mobile" validate:"omitempty,max=50"`
	WhatsApp        *string `json:"whatsapp" validate:"omitempty,max=50"`
	Address         *string `json:"address" validate:"omitempty,max=1000"`
	GSTIN           *string `json:"gstin" validate:"omitempty,max=20"`
	QuotationPrefix string  `json:"quotationPrefix" validate:"required,min=1,max=20"`
}

// Service provides business logic for profiles.
type Service struct {
	repo Repository
}

// NewService constructs a profile service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *Service) Save(ctx context.Context, userID int64, req SaveProfileRequest) (*Profile, error) {
	prefix := strings.TrimSpace(req.QuotationPrefix)
	if prefix == "" {
		return nil, fmt.Errorf("quotation prefix must not be blank")
	}

	p, err := s.repo.Upsert(ctx, Profile{
		UserID:          userID,
		CompanyName:     strings.TrimSpace(req.CompanyName),
		LogoURL:         req.LogoURL,
		Email:           req.Email,
		Website:         req.Website,
		Phone:           req.Phone,
		Mobile:          req.Mobile,
		WhatsApp:        req.WhatsApp,
		Address:         req.Address,
		GSTIN:           req.GSTIN,
		QuotationPrefix: prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}
