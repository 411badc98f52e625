// Package profile holds the per-user business profile that brands
// rendered quotations.
package profile

import "time"

// Profile is the issuing business identity for a user. The quotation
// prefix feeds document numbering; the rest feeds the PDF header and
// footer.
type Profile struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"-"`
	CompanyName     string    `json:"companyName"`
	LogoURL         *string   `json:"logoUrl,omitempty"`
	Email           *string   `json:"email,omitempty"`
	Website         *string   `json:"website,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	Mobile          *string   `json:"mobile,omitempty"`
	WhatsApp        *string   `json:"whatsapp,omitempty"`
	Address         *string   `json:"address,omitempty"`
	GSTIN           *string   `json:"gstin,omitempty"`
	QuotationPrefix string    `json:"quotationPrefix"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
