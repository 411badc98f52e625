package quotation

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/quotedesk/quotedesk/testing"
)

func TestExportCSV(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), 1, createRequest())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf, ListQuotationsRequest{UserID: 1}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, csvHeader, records[0])
	row := records[1]
	assert.Equal(t, created.Number, row[0])
	assert.Equal(t, "10/06/2024", row[1])
	assert.Equal(t, "Apex Fabricators", row[2])
	assert.Contains(t, row[7], "Hydraulic press fitting (Qty: 2 Nos)")
	assert.Contains(t, row[7], "Mounting kit (Qty: 1 Set)")
	assert.Equal(t, "Pending", row[10])
}

func TestExportCSVLargeQuantityStaysFixedNotation(t *testing.T) {
	svc, _ := newTestService()

	req := createRequest()
	req.Products = []ProductInput{
		{Name: "Fastener", Quantity: 15000000, QuantityType: "Nos", Price: 0.5},
	}
	_, err := svc.Create(context.Background(), 1, req)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf, ListQuotationsRequest{UserID: 1}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Contains(t, records[1][7], "Fastener (Qty: 15000000 Nos)")
	assert.NotContains(t, records[1][7], "e+")
}

func TestFormatQuantity(t *testing.T) {
	cases := map[float64]string{
		2:        "2",
		1.5:      "1.5",
		0.125:    "0.125",
		15000000: "15000000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatQuantity(in))
	}
}

func TestExportCSVEmpty(t *testing.T) {
	svc, _ := newTestService()

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf, ListQuotationsRequest{UserID: 1}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, csvHeader, records[0])
}
