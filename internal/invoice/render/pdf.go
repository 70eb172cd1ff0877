// Package render is the renderer adapter: it paints page descriptors
// produced by the layout engine into a PDF. It draws exactly what each
// Page says; row membership and page breaks are never re-decided here.
package render

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/inkbill/inkbill/internal/invoice/domain"
	"github.com/inkbill/inkbill/internal/invoice/format"
	"github.com/inkbill/inkbill/internal/invoice/layout"
)

// PDFRenderer turns a layout.Document into PDF bytes with maroto.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

// Render paints the document. The geometry must be the one the document
// was paginated with so drawn row heights match the packing decision.
func (r *PDFRenderer) Render(inv domain.Invoice, doc layout.Document, g layout.Geometry) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	for _, p := range doc.Pages {
		pg := page.New()
		if p.Continuation {
			pg.Add(r.continuationHeader(inv, p)...)
		} else {
			pg.Add(r.header(inv)...)
		}
		pg.Add(r.tableHeader())
		for _, rw := range p.Rows {
			pg.Add(r.itemRow(inv, rw, g))
		}
		if p.Summary != nil {
			pg.Add(r.summary(inv, *p.Summary)...)
		}
		if p.Signature {
			pg.Add(r.signature(inv)...)
		}
		m.AddPages(pg)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return out.GetBytes(), nil
}

func (r *PDFRenderer) header(inv domain.Invoice) []core.Row {
	issuer := inv.Issuer
	meta := []core.Component{
		text.New("Invoice #: "+inv.Number, props.Text{Size: 9}),
		text.New("Date: "+inv.IssueDate.String(), props.Text{Size: 9, Top: 4}),
		text.New("Due: "+inv.DueDate.String(), props.Text{Size: 9, Top: 8}),
		text.New("Currency: "+inv.Currency, props.Text{Size: 9, Top: 12}),
	}
	issuerBlock := []core.Component{
		text.New(issuer.Name, props.Text{Style: fontstyle.Bold}),
		text.New(issuer.Address, props.Text{Size: 9, Top: 5}),
	}
	if issuer.TaxID != "" {
		issuerBlock = append(issuerBlock, text.New("GST/VAT: "+issuer.TaxID, props.Text{Size: 9, Top: 10}))
	}
	if contact := contactLine(issuer.Email, issuer.Phone); contact != "" {
		issuerBlock = append(issuerBlock, text.New(contact, props.Text{Size: 9, Top: 14}))
	}

	recipient := inv.Recipient
	billTo := []core.Component{
		text.New("Bill To", props.Text{Style: fontstyle.Bold}),
		text.New(recipient.Name, props.Text{Size: 9, Top: 5}),
		text.New(recipient.Address, props.Text{Size: 9, Top: 9}),
	}
	if contact := contactLine(recipient.Email, recipient.Phone); contact != "" {
		billTo = append(billTo, text.New(contact, props.Text{Size: 9, Top: 13}))
	}

	return []core.Row{
		row.New(10).Add(
			text.NewCol(12, "INVOICE", props.Text{Size: 20, Style: fontstyle.Bold}),
		),
		row.New(20).Add(
			col.New(6).Add(issuerBlock...),
			col.New(6).Add(meta...),
		),
		row.New(2).Add(line.NewCol(12)),
		row.New(18).Add(
			col.New(12).Add(billTo...),
		),
	}
}

func (r *PDFRenderer) continuationHeader(inv domain.Invoice, p layout.Page) []core.Row {
	return []core.Row{
		row.New(8).Add(
			text.NewCol(8, fmt.Sprintf("Invoice %s (continued)", inv.Number), props.Text{
				Size:  12,
				Style: fontstyle.Bold,
			}),
			text.NewCol(4, "Carried forward: "+format.Money(p.CarriedSubtotal, inv.Currency), props.Text{
				Size:  9,
				Align: align.Right,
				Top:   2,
			}),
		),
		row.New(2).Add(line.NewCol(12)),
	}
}

func (r *PDFRenderer) tableHeader() core.Row {
	return row.New(8).Add(
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Tax", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Line Total", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
}

func (r *PDFRenderer) itemRow(inv domain.Invoice, rw layout.Row, g layout.Geometry) core.Row {
	desc := make([]core.Component, 0, len(rw.DescLines))
	for i, ln := range rw.DescLines {
		desc = append(desc, text.New(ln, props.Text{Size: 9, Top: float64(i) * g.LineHeight}))
	}
	rate := inv.EffectiveTaxRate(rw.ItemIndex)
	return row.New(rw.Height).Add(
		col.New(5).Add(desc...),
		text.NewCol(1, format.Quantity(rw.Item.Quantity), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, format.Money(rw.Item.UnitPrice, ""), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, format.Percent(rate), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, format.Money(rw.Line.Total, ""), props.Text{Size: 9, Align: align.Right}),
	)
}

func (r *PDFRenderer) summary(inv domain.Invoice, s layout.Summary) []core.Row {
	return []core.Row{
		row.New(2).Add(line.NewCol(12)),
		row.New(6).Add(
			col.New(8),
			text.NewCol(2, "Subtotal", props.Text{Size: 9}),
			text.NewCol(2, format.Money(s.Subtotal, inv.Currency), props.Text{Size: 9, Align: align.Right}),
		),
		row.New(6).Add(
			col.New(8),
			text.NewCol(2, "Tax", props.Text{Size: 9}),
			text.NewCol(2, format.Money(s.TaxTotal, inv.Currency), props.Text{Size: 9, Align: align.Right}),
		),
		row.New(8).Add(
			col.New(8),
			text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
			text.NewCol(2, format.Money(s.GrandTotal, inv.Currency), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
		),
	}
}

func (r *PDFRenderer) signature(inv domain.Invoice) []core.Row {
	rows := []core.Row{}
	if inv.Notes != "" {
		rows = append(rows,
			row.New(5).Add(text.NewCol(12, "Notes", props.Text{Style: fontstyle.Bold, Size: 9})),
			row.New(10).Add(text.NewCol(12, inv.Notes, props.Text{Size: 8})),
		)
	}
	authorized := inv.AuthorizedBy
	if authorized == "" {
		authorized = "____________________"
	}
	rows = append(rows,
		row.New(9).Add(
			col.New(6),
			text.NewCol(6, "Authorized by: "+authorized, props.Text{Size: 9, Top: 4}),
		),
	)
	return rows
}

func contactLine(email, phone string) string {
	switch {
	case email != "" && phone != "":
		return email + " | " + phone
	case email != "":
		return email
	default:
		return phone
	}
}
