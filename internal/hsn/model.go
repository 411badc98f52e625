// Package hsn maintains the per-user catalog of HSN codes suggested
// during quotation product entry.
package hsn

import "time"

// Code is one HSN entry in a user's catalog. Codes are unique per
// user.
type Code struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
}
