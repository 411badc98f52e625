package quotation

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/quotedesk/quotedesk/internal/company"
)

// exportRowCap bounds a single CSV export.
const exportRowCap = 10000

var csvHeader = []string{
	"Quotation Number", "Date", "Company Name", "Contact Person", "Contact No",
	"Email", "GSTIN", "Products", "Referenced By", "Created By", "Progress",
}

// ExportCSV streams the user's quotations, filtered like List, as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, req ListQuotationsRequest) error {
	// Exports are not paginated.
	req.Limit = exportRowCap
	req.Offset = 0
	quotations, _, err := s.repo.List(ctx, req)
	if err != nil {
		return fmt.Errorf("list quotations for export: %w", err)
	}

	companies := map[int64]*company.Company{}
	for _, q := range quotations {
		if _, ok := companies[q.CompanyID]; ok {
			continue
		}
		comp, err := s.companyRepo.Get(ctx, req.UserID, q.CompanyID)
		if err != nil {
			// A quotation whose company was deleted still exports, with
			// blank company columns.
			companies[q.CompanyID] = nil
			continue
		}
		companies[q.CompanyID] = comp
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, q := range quotations {
		var name, contact, phone, email, gstin string
		if comp := companies[q.CompanyID]; comp != nil {
			name = comp.Name
			contact = deref(comp.ContactPerson)
			phone = deref(comp.Phone)
			email = deref(comp.Email)
			gstin = deref(comp.GSTIN)
		}

		products := make([]string, len(q.Products))
		for i, p := range q.Products {
			products[i] = fmt.Sprintf("%s (Qty: %s %s)", p.Name, FormatQuantity(p.Quantity), p.QuantityType)
		}

		record := []string{
			q.Number,
			q.Date.Format("02/01/2006"),
			name,
			contact,
			phone,
			email,
			gstin,
			strings.Join(products, "; "),
			q.ReferencedBy,
			q.CreatedBy,
			string(q.Status),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
