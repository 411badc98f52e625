package company

// CreateCompanyRequest is the payload for creating a company.
type CreateCompanyRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=255"`
	Address       *string `json:"address" validate:"omitempty,max=1000"`
	Location      *string `json:"location" validate:"omitempty,max=255"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=50"`
	ContactPerson *string `json:"contactPerson" validate:"omitempty,max=255"`
	GSTIN         *string `json:"gstin" validate:"omitempty,max=20"`
	Remarks       *string `json:"remarks" validate:"omitempty,max=2000"`
}

// UpdateCompanyRequest is the payload for partial updates. Nil fields
// are left unchanged.
type UpdateCompanyRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=255"`
	Address       *string `json:"address" validate:"omitempty,max=1000"`
	Location      *string `json:"location" validate:"omitempty,max=255"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=50"`
	ContactPerson *string `json:"contactPerson" validate:"omitempty,max=255"`
	GSTIN         *string `json:"gstin" validate:"omitempty,max=20"`
	Remarks       *string `json:"remarks" validate:"omitempty,max=2000"`
}

// ListCompaniesRequest carries listing filters.
type ListCompaniesRequest struct {
	UserID int64
	Search string
	Limit  int
	Offset int
}

// ListCompaniesResponse is the paginated listing envelope.
type ListCompaniesResponse struct {
	Companies []Company `json:"companies"`
	Total     int       `json:"total"`
	Limit     int       `json:"limit"`
	Offset    int       `json:"offset"`
}
