// Package domain contains the invoice value types shared by the
// calculation and layout engines. Instances are built once from form input
// or a persisted draft and never mutated afterwards.
package domain

import (
	"strings"
	"time"

	"github.com/inkbill/inkbill/pkg/money"
)

// Date is a calendar date serialized as ISO "2006-01-02".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format("2006-01-02") }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Company is the issuing party. TaxID carries the GST/VAT registration
// number when the issuer has one.
type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Customer is the billed party.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Item is one invoice line: quantity × unit price of a described good or
// service. TaxRateOverride, when set, replaces the invoice default rate
// for this line only.
type Item struct {
	Description     string         `json:"description"`
	Quantity        money.Quantity `json:"quantity"`
	UnitPrice       money.Amount   `json:"unit_price"`
	TaxRateOverride *money.Rate    `json:"tax_rate,omitempty"`
}

// Invoice is a complete invoice document source. Item order is print order
// and is preserved through calculation and layout.
type Invoice struct {
	Number            string     `json:"invoice_number"`
	IssueDate         Date       `json:"issue_date"`
	DueDate           Date       `json:"due_date"`
	Currency          string     `json:"currency"`
	DefaultTaxRate    money.Rate `json:"default_tax_rate"`
	Items             []Item     `json:"items"`
	Notes             string     `json:"notes,omitempty"`
	SignatureRequired bool       `json:"signature_required"`
	AuthorizedBy      string     `json:"authorized_by,omitempty"`
	Issuer            Company    `json:"company"`
	Recipient         Customer   `json:"customer"`
}

// EffectiveTaxRate resolves the rate applied to the item at the given
// index: the per-line override when present, else the invoice default.
func (inv Invoice) EffectiveTaxRate(i int) money.Rate {
	if it := inv.Items[i]; it.TaxRateOverride != nil {
		return *it.TaxRateOverride
	}
	return inv.DefaultTaxRate
}

// LineTotals holds the computed amounts for a single item, each already
// rounded to the minor unit.
type LineTotals struct {
	Subtotal money.Amount `json:"subtotal"`
	Tax      money.Amount `json:"tax"`
	Total    money.Amount `json:"total"`
}

// Totals is the derived result of the calculation engine. Lines is indexed
// parallel to Invoice.Items.
type Totals struct {
	Lines      []LineTotals `json:"lines"`
	Subtotal   money.Amount `json:"subtotal"`
	TaxTotal   money.Amount `json:"tax_total"`
	GrandTotal money.Amount `json:"grand_total"`
}
