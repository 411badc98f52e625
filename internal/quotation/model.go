// Package quotation implements sales quotations: fiscal-year document
// numbering, line items, status lifecycle, and document export.
package quotation

import (
	"fmt"
	"strings"
	"time"
)

// Status is the progress state of a quotation.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusComplete Status = "Complete"
	StatusRejected Status = "Rejected"
)

// Statuses lists every valid quotation status.
var Statuses = []Status{StatusPending, StatusComplete, StatusRejected}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusComplete, StatusRejected:
		return true
	}
	return false
}

// QuantityTypes lists the units of measure a product line may carry.
var QuantityTypes = []string{"Set", "Nos", "Piece", "Pair", "Kg", "Meter"}

// Product is one ordered line item of a quotation. SrNo is the 1-based
// position within the parent quotation.
type Product struct {
	ID           int64   `json:"id"`
	SrNo         int     `json:"srNo"`
	Name         string  `json:"name"`
	Model        string  `json:"model"`
	HSN          string  `json:"hsn"`
	Quantity     float64 `json:"quantity"`
	QuantityType string  `json:"quantityType"`
	Price        float64 `json:"price"`
	Total        float64 `json:"total"`
}

// Quotation is an itemized sales quotation issued to a company.
type Quotation struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"-"`
	Number             string    `json:"quotationNumber"`
	Date               time.Time `json:"date"`
	CompanyID          int64     `json:"companyId"`
	Products           []Product `json:"products"`
	GrandTotal         float64   `json:"grandTotal"`
	TermsAndConditions string    `json:"termsAndConditions"`
	ReferencedBy       string    `json:"referencedBy"`
	CreatedBy          string    `json:"createdBy"`
	Status             Status    `json:"progress"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// FormatQuantity prints a quantity in fixed notation: whole numbers
// without a fraction, fractional ones trimmed to at most three places.
func FormatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", q), "0"), ".")
}

// Stats summarizes a user's quotations by status.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Rejected  int `json:"rejected"`
}
