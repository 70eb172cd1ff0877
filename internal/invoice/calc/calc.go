// Package calc is the financial calculation engine. It maps an invoice to
// exact, reproducible totals under the round-per-line discipline: every
// line amount is rounded half-up to the minor unit once, and invoice
// totals are plain integer sums of those rounded lines. Summing unrounded
// products and rounding at the end gives different cent-level results, so
// it is never done here.
package calc

import (
	"github.com/inkbill/inkbill/internal/invoice/domain"
	"github.com/inkbill/inkbill/pkg/money"
)

// ComputeTotals derives per-line and invoice-level totals. It is a pure
// function: validation runs first and no partial result is produced for an
// invalid invoice.
func ComputeTotals(inv domain.Invoice) (domain.Totals, error) {
	if err := inv.Validate(); err != nil {
		return domain.Totals{}, err
	}

	totals := domain.Totals{
		Lines: make([]domain.LineTotals, len(inv.Items)),
	}
	for i, it := range inv.Items {
		sub := money.MulQuantityPrice(it.Quantity, it.UnitPrice)
		tax := sub.ApplyRate(inv.EffectiveTaxRate(i))
		totals.Lines[i] = domain.LineTotals{
			Subtotal: sub,
			Tax:      tax,
			Total:    sub + tax,
		}
		totals.Subtotal += sub
		totals.TaxTotal += tax
	}
	totals.GrandTotal = totals.Subtotal + totals.TaxTotal
	return totals, nil
}
