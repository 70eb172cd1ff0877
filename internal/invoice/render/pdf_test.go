package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkbill/inkbill/internal/invoice/calc"
	"github.com/inkbill/inkbill/internal/invoice/domain"
	"github.com/inkbill/inkbill/internal/invoice/layout"
)

func sampleInvoice() domain.Invoice {
	return domain.Invoice{
		Number:            "INV-20260307-0001",
		IssueDate:         domain.NewDate(2026, time.March, 7),
		DueDate:           domain.NewDate(2026, time.April, 6),
		Currency:          "EUR",
		DefaultTaxRate:    900,
		Notes:             "Payment within 30 days.",
		SignatureRequired: true,
		AuthorizedBy:      "J. Mueller",
		Issuer: domain.Company{
			Name:    "Acme GmbH",
			Address: "Unter den Linden 1, 10117 Berlin",
			TaxID:   "DE123456789",
			Email:   "billing@acme.example",
		},
		Recipient: domain.Customer{
			Name:    "Widget AG",
			Address: "Speicherstadt 7, 20457 Hamburg",
		},
		Items: []domain.Item{
			{Description: "Consulting services for platform migration and rollout support", Quantity: 3000, UnitPrice: 1999},
			{Description: "On-site workshop", Quantity: 1000, UnitPrice: 45000},
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	inv := sampleInvoice()
	totals, err := calc.ComputeTotals(inv)
	require.NoError(t, err)

	g := layout.Default()
	doc, err := layout.Paginate(inv, totals, g)
	require.NoError(t, err)

	out, err := NewPDFRenderer().Render(inv, doc, g)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderMultiPage(t *testing.T) {
	inv := sampleInvoice()
	for i := 0; i < 60; i++ {
		inv.Items = append(inv.Items, domain.Item{
			Description: "Recurring line item with a reasonably long description that wraps",
			Quantity:    1000,
			UnitPrice:   1500,
		})
	}
	totals, err := calc.ComputeTotals(inv)
	require.NoError(t, err)

	g := layout.Default()
	doc, err := layout.Paginate(inv, totals, g)
	require.NoError(t, err)
	require.Greater(t, len(doc.Pages), 1)

	out, err := NewPDFRenderer().Render(inv, doc, g)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
