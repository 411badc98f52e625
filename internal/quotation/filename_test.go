package quotation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	_ "github.com/quotedesk/quotedesk/testing"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		number, company string
		want            string
	}{
		{"SEW/2024-25/07", "Apex Fabricators", "SEW-2024-25-07_Apex Fabricators.pdf"},
		{"Q:1", `A<B>C|D?E*F"G`, "Q-1_ABCDEFG.pdf"},
		{`A\B`, "C/D", "A-B_C-D.pdf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.number, tt.company))
	}
}
