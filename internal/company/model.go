// Package company manages the client companies a user issues
// quotations to.
package company

import "time"

// Company is a client organisation owned by a single user.
type Company struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"-"`
	Name          string    `json:"name"`
	Address       *string   `json:"address,omitempty"`
	Location      *string   `json:"location,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	ContactPerson *string   `json:"contactPerson,omitempty"`
	GSTIN         *string   `json:"gstin,omitempty"`
	Remarks       *string   `json:"remarks,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
