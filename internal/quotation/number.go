package quotation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrEmptyPrefix is returned when the numbering prefix is blank.
	ErrEmptyPrefix = errors.New("quotation number prefix must not be empty")
	// ErrNegativeCount is returned for a negative existing-quotation count.
	ErrNegativeCount = errors.New("quotation count must not be negative")
)

// Number builds the document number for the next quotation given how
// many quotations the user already has. The fiscal year is anchored to
// the clock at generation time, not the quotation's stored date.
func Number(prefix string, existingCount int) (string, error) {
	return NumberAt(prefix, existingCount, time.Now())
}

// NumberAt is the deterministic core of Number. The format is
// PREFIX/YYYY-YY/NN: the current calendar year paired with the last two
// digits of the next, and a sequence of existingCount+1 left-padded to
// at least two digits. Longer sequences print as-is.
func NumberAt(prefix string, existingCount int, at time.Time) (string, error) {
	if strings.TrimSpace(prefix) == "" {
		return "", ErrEmptyPrefix
	}
	if existingCount < 0 {
		return "", ErrNegativeCount
	}

	return fmt.Sprintf("%s/%s/%02d", prefix, FiscalYear(at), existingCount+1), nil
}

// FiscalYear renders the fiscal-year window for a point in time, e.g.
// "2024-25".
func FiscalYear(at time.Time) string {
	year := at.Year()
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}
