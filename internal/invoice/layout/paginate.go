package layout

import (
	"errors"
	"fmt"

	"github.com/inkbill/inkbill/internal/invoice/domain"
	"github.com/inkbill/inkbill/pkg/money"
)

// ErrTotalsMismatch means the totals were not computed from the invoice
// being paginated.
var ErrTotalsMismatch = errors.New("totals_do_not_match_invoice")

// Row is one line item placed on a page, with its computed amounts and
// the exact wrapped description lines the renderer must draw.
type Row struct {
	ItemIndex int               `json:"item_index"`
	Item      domain.Item       `json:"item"`
	Line      domain.LineTotals `json:"line"`
	DescLines []string          `json:"desc_lines"`
	Height    float64           `json:"height"`
}

// Summary is the subtotal/tax/grand-total block printed once, on the
// final page that has room for it.
type Summary struct {
	Subtotal   money.Amount `json:"subtotal"`
	TaxTotal   money.Amount `json:"tax_total"`
	GrandTotal money.Amount `json:"grand_total"`
}

// Page is one printable page descriptor.
type Page struct {
	Number          int          `json:"number"`
	Continuation    bool         `json:"continuation"`
	Rows            []Row        `json:"rows"`
	CarriedSubtotal money.Amount `json:"carried_subtotal"`
	Summary         *Summary     `json:"summary,omitempty"`
	Signature       bool         `json:"signature"`
}

// Warning flags a row taller than a full page's row capacity. The row is
// still placed, alone on its own page; the condition is reported instead
// of being swallowed or escalated.
type Warning struct {
	ItemIndex int     `json:"item_index"`
	RowHeight float64 `json:"row_height"`
	Capacity  float64 `json:"capacity"`
}

func (w Warning) String() string {
	return fmt.Sprintf("item %d: row height %.1f exceeds page capacity %.1f", w.ItemIndex, w.RowHeight, w.Capacity)
}

// Document is the ordered page sequence handed to the renderer.
type Document struct {
	Pages    []Page    `json:"pages"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Paginate packs invoice rows onto pages with a greedy single pass in
// item order. It is pure and deterministic: identical inputs yield an
// identical page sequence, wrap decisions included.
func Paginate(inv domain.Invoice, totals domain.Totals, g Geometry) (Document, error) {
	if err := g.Validate(); err != nil {
		return Document{}, err
	}
	if len(totals.Lines) != len(inv.Items) {
		return Document{}, ErrTotalsMismatch
	}

	capacity := g.rowCapacity()

	var doc Document
	var carried money.Amount

	current := Page{CarriedSubtotal: carried}
	remaining := capacity
	closePage := func() {
		doc.Pages = append(doc.Pages, current)
		current = Page{Continuation: true, CarriedSubtotal: carried}
		remaining = capacity
	}

	for i, it := range inv.Items {
		height, lines := g.rowHeight(it.Description)
		if height > capacity {
			doc.Warnings = append(doc.Warnings, Warning{ItemIndex: i, RowHeight: height, Capacity: capacity})
		}
		if height > remaining && len(current.Rows) > 0 {
			closePage()
		}
		current.Rows = append(current.Rows, Row{
			ItemIndex: i,
			Item:      it,
			Line:      totals.Lines[i],
			DescLines: lines,
			Height:    height,
		})
		remaining -= height
		carried += totals.Lines[i].Subtotal
	}

	// Summary goes on the last page when it fits, otherwise on one more
	// page carrying no rows. The signature block follows the same rule,
	// independently.
	if g.SummaryBlockHeight > remaining {
		closePage()
	}
	current.Summary = &Summary{
		Subtotal:   totals.Subtotal,
		TaxTotal:   totals.TaxTotal,
		GrandTotal: totals.GrandTotal,
	}
	remaining -= g.SummaryBlockHeight

	if inv.SignatureRequired {
		if g.SignatureBlockHeight > remaining {
			closePage()
		}
		current.Signature = true
		remaining -= g.SignatureBlockHeight
	}
	doc.Pages = append(doc.Pages, current)

	// 1-based numbering is assigned only now, once the page count is
	// final.
	for i := range doc.Pages {
		doc.Pages[i].Number = i + 1
	}
	return doc, nil
}
