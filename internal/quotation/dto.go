package quotation

import "time"

// ProductInput is one line item in a create/update payload. Total is
// computed server-side as quantity × price.
type ProductInput struct {
	Name         string  `json:"name" validate:"required,min=1,max=500"`
	Model        string  `json:"model" validate:"max=255"`
	HSN          string  `json:"hsn" validate:"max=20"`
	Quantity     float64 `json:"quantity" validate:"gt=0"`
	QuantityType string  `json:"quantityType" validate:"required,oneof=Set Nos Piece Pair Kg Meter"`
	Price        float64 `json:"price" validate:"gte=0"`
}

// CreateQuotationRequest is the payload for creating a quotation. The
// number is assigned server-side.
type CreateQuotationRequest struct {
	Date               time.Time      `json:"date" validate:"required"`
	CompanyID          int64          `json:"companyId" validate:"required,gt=0"`
	Products           []ProductInput `json:"products" validate:"required,min=1,dive"`
	TermsAndConditions string         `json:"termsAndConditions"`
	ReferencedBy       string         `json:"referencedBy" validate:"max=255"`
	CreatedBy          string         `json:"createdBy" validate:"max=255"`
}

// UpdateQuotationRequest replaces the mutable fields of a quotation.
// The number and status are not editable here; status changes go
// through UpdateProgress.
type UpdateQuotationRequest struct {
	Date               time.Time      `json:"date" validate:"required"`
	CompanyID          int64          `json:"companyId" validate:"required,gt=0"`
	Products           []ProductInput `json:"products" validate:"required,min=1,dive"`
	TermsAndConditions string         `json:"termsAndConditions"`
	ReferencedBy       string         `json:"referencedBy" validate:"max=255"`
	CreatedBy          string         `json:"createdBy" validate:"max=255"`
}

// UpdateProgressRequest changes the quotation status.
type UpdateProgressRequest struct {
	Progress Status `json:"progress" validate:"required,oneof=Pending Complete Rejected"`
}

// ListQuotationsRequest carries listing filters.
type ListQuotationsRequest struct {
	UserID    int64
	Search    string
	Status    Status
	CompanyID int64
	Limit     int
	Offset    int
}

// ListQuotationsResponse is the paginated listing envelope.
type ListQuotationsResponse struct {
	Quotations []Quotation `json:"quotations"`
	Total      int         `json:"total"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
}
