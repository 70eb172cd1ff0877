package layout

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkbill/inkbill/internal/invoice/calc"
	"github.com/inkbill/inkbill/internal/invoice/domain"
	"github.com/inkbill/inkbill/pkg/money"
)

// flatGeometry gives every one-line row the same height so packing
// arithmetic in the tests stays obvious.
func flatGeometry(usable, header, footer, summary, signature, rowHeight float64) Geometry {
	return Geometry{
		UsablePageHeight:       usable,
		HeaderHeight:           header,
		FooterHeight:           footer,
		DescriptionColumnWidth: 100,
		CharWidth:              1,
		LineHeight:             rowHeight,
		SummaryBlockHeight:     summary,
		SignatureBlockHeight:   signature,
		RowVerticalPadding:     0,
	}
}

func invoiceWithItems(n int) domain.Invoice {
	inv := domain.Invoice{
		Number:         "INV-100",
		IssueDate:      domain.NewDate(2026, time.January, 10),
		DueDate:        domain.NewDate(2026, time.February, 10),
		Currency:       "EUR",
		DefaultTaxRate: 900,
		Issuer:         domain.Company{Name: "Acme GmbH", Address: "Berlin"},
		Recipient:      domain.Customer{Name: "Widget AG", Address: "Hamburg"},
	}
	for i := 0; i < n; i++ {
		inv.Items = append(inv.Items, domain.Item{
			Description: "item",
			Quantity:    1000,
			UnitPrice:   money.Amount(100 * (i + 1)),
		})
	}
	return inv
}

func mustTotals(t *testing.T, inv domain.Invoice) domain.Totals {
	t.Helper()
	totals, err := calc.ComputeTotals(inv)
	require.NoError(t, err)
	return totals
}

func TestPaginateSpecWorkedExample(t *testing.T) {
	// usable 800, header 100, footer 50 → capacity 650. Three rows of
	// height 300 pack two on page 1, one overflows; the 150 summary
	// fits page 2 next to its single row.
	g := flatGeometry(800, 100, 50, 150, 0, 300)
	inv := invoiceWithItems(3)
	totals := mustTotals(t, inv)

	doc, err := Paginate(inv, totals, g)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)

	assert.Len(t, doc.Pages[0].Rows, 2)
	assert.False(t, doc.Pages[0].Continuation)
	assert.Nil(t, doc.Pages[0].Summary)

	assert.Len(t, doc.Pages[1].Rows, 1)
	assert.True(t, doc.Pages[1].Continuation)
	require.NotNil(t, doc.Pages[1].Summary)
	assert.Equal(t, totals.GrandTotal, doc.Pages[1].Summary.GrandTotal)
	assert.Empty(t, doc.Warnings)
}

func TestPaginateSummaryOverflowsToOwnPage(t *testing.T) {
	// Two rows of 300 fill page 1 to 600/650; the 150 summary does not
	// fit and must open a rowless page.
	g := flatGeometry(800, 100, 50, 150, 0, 300)
	inv := invoiceWithItems(2)
	totals := mustTotals(t, inv)

	doc, err := Paginate(inv, totals, g)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	assert.Len(t, doc.Pages[0].Rows, 2)
	assert.Empty(t, doc.Pages[1].Rows)
	assert.True(t, doc.Pages[1].Continuation)
	require.NotNil(t, doc.Pages[1].Summary)
	assert.Equal(t, totals.Subtotal, doc.Pages[1].CarriedSubtotal)
}

func TestPaginateSignatureIndependentOverflow(t *testing.T) {
	// Summary fits on the row page but the signature block does not:
	// it alone moves to a final page.
	g := flatGeometry(800, 100, 50, 300, 100, 300)
	inv := invoiceWithItems(1)
	inv.SignatureRequired = true
	totals := mustTotals(t, inv)

	doc, err := Paginate(inv, totals, g)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	require.NotNil(t, doc.Pages[0].Summary)
	assert.False(t, doc.Pages[0].Signature)
	assert.Nil(t, doc.Pages[1].Summary)
	assert.True(t, doc.Pages[1].Signature)
	assert.Empty(t, doc.Pages[1].Rows)
}

func TestPaginateZeroItems(t *testing.T) {
	g := flatGeometry(800, 100, 50, 150, 50, 300)
	inv := invoiceWithItems(0)
	inv.SignatureRequired = true
	totals := mustTotals(t, inv)

	doc, err := Paginate(inv, totals, g)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)

	page := doc.Pages[0]
	assert.Equal(t, 1, page.Number)
	assert.False(t, page.Continuation)
	assert.Empty(t, page.Rows)
	require.NotNil(t, page.Summary)
	assert.Equal(t, money.Amount(0), page.Summary.GrandTotal)
	assert.True(t, page.Signature)
}

func TestPaginateOversizedRowPlacedAlone(t *testing.T) {
	g := flatGeometry(800, 100, 50, 150, 0, 100)
	inv := invoiceWithItems(3)
	// 10 words of 10 chars on a 10-char budget wrap to 10 lines of
	// height 100 each: 1000 > 650 capacity.
	g.DescriptionColumnWidth = 10
	inv.Items[1].Description = strings.TrimSpace(strings.Repeat("abcdefghij ", 10))

	totals := mustTotals(t, inv)
	doc, err := Paginate(inv, totals, g)
	require.NoError(t, err)

	require.Len(t, doc.Warnings, 1)
	assert.Equal(t, 1, doc.Warnings[0].ItemIndex)
	assert.Greater(t, doc.Warnings[0].RowHeight, doc.Warnings[0].Capacity)

	// The oversized row sits alone on its own page.
	var oversizedPage *Page
	for i := range doc.Pages {
		for _, r := range doc.Pages[i].Rows {
			if r.ItemIndex == 1 {
				oversizedPage = &doc.Pages[i]
			}
		}
	}
	require.NotNil(t, oversizedPage)
	assert.Len(t, oversizedPage.Rows, 1)
}

func TestPaginateRowConservation(t *testing.T) {
	g := flatGeometry(800, 100, 50, 150, 50, 220)
	inv := invoiceWithItems(11)
	inv.SignatureRequired = true
	totals := mustTotals(t, inv)

	doc, err := Paginate(inv, totals, g)
	require.NoError(t, err)

	var indices []int
	for i, page := range doc.Pages {
		assert.Equal(t, i+1, page.Number)
		assert.Equal(t, i > 0, page.Continuation)
		for _, row := range page.Rows {
			indices = append(indices, row.ItemIndex)
		}
	}
	require.Len(t, indices, len(inv.Items))
	for i, idx := range indices {
		assert.Equal(t, i, idx)
	}

	// Exactly one summary, on the last page that has one.
	summaries := 0
	for _, page := range doc.Pages {
		if page.Summary != nil {
			summaries++
		}
	}
	assert.Equal(t, 1, summaries)
}

func TestPaginateCarriedSubtotals(t *testing.T) {
	g := flatGeometry(800, 100, 50, 150, 0, 300)
	inv := invoiceWithItems(5)
	totals := mustTotals(t, inv)

	doc, err := Paginate(inv, totals, g)
	require.NoError(t, err)
	require.Greater(t, len(doc.Pages), 1)

	var running money.Amount
	rowIdx := 0
	for _, page := range doc.Pages {
		assert.Equal(t, running, page.CarriedSubtotal)
		for range page.Rows {
			running += totals.Lines[rowIdx].Subtotal
			rowIdx++
		}
	}
	assert.Equal(t, totals.Subtotal, running)
}

func TestPaginateDeterministic(t *testing.T) {
	g := Default()
	inv := invoiceWithItems(40)
	for i := range inv.Items {
		inv.Items[i].Description = strings.Repeat("deterministic wrapping of invoice descriptions ", i%4+1)
	}
	totals := mustTotals(t, inv)

	first, err := Paginate(inv, totals, g)
	require.NoError(t, err)
	second, err := Paginate(inv, totals, g)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPaginateGeometryErrors(t *testing.T) {
	inv := invoiceWithItems(1)
	totals := mustTotals(t, inv)

	g := flatGeometry(100, 60, 40, 10, 0, 5)
	_, err := Paginate(inv, totals, g)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	g = flatGeometry(800, 100, 50, 150, 0, 0)
	_, err = Paginate(inv, totals, g)
	assert.Error(t, err)
}

func TestPaginateTotalsMismatch(t *testing.T) {
	inv := invoiceWithItems(2)
	totals := mustTotals(t, invoiceWithItems(1))
	_, err := Paginate(inv, totals, flatGeometry(800, 100, 50, 150, 0, 300))
	assert.ErrorIs(t, err, ErrTotalsMismatch)
}
