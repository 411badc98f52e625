package quotation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/quotedesk/quotedesk/testing"
)

func TestNumberAtFormat(t *testing.T) {
	in2024 := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		prefix string
		count  int
		at     time.Time
		want   string
	}{
		{"first quotation", "Q", 0, in2024, "Q/2024-25/01"},
		{"single digit padded", "Q", 8, in2024, "Q/2024-25/09"},
		{"two digits unpadded", "Q", 41, in2024, "Q/2024-25/42"},
		{"three digits not truncated", "Q", 99, in2024, "Q/2024-25/100"},
		{"multi-char prefix", "SEW", 0, in2024, "SEW/2024-25/01"},
		{"century rollover", "Q", 0, time.Date(2099, time.March, 1, 0, 0, 0, 0, time.UTC), "Q/2099-00/01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NumberAt(tt.prefix, tt.count, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberAtSequenceSegment(t *testing.T) {
	at := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	for _, n := range []int{0, 1, 9, 10, 42, 98, 99, 100, 999, 12345} {
		got, err := NumberAt("Q", n, at)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("Q/2024-25/%02d", n+1), got)
	}
}

func TestNumberAtRejectsEmptyPrefix(t *testing.T) {
	at := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	for _, prefix := range []string{"", "   ", "\t"} {
		_, err := NumberAt(prefix, 0, at)
		assert.ErrorIs(t, err, ErrEmptyPrefix)
	}
}

func TestNumberAtRejectsNegativeCount(t *testing.T) {
	_, err := NumberAt("Q", -1, time.Now())
	assert.ErrorIs(t, err, ErrNegativeCount)
}

func TestNumberUsesCurrentYear(t *testing.T) {
	got, err := Number("Q", 4)
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("Q/%d-%02d/05", year, (year+1)%100), got)
}
