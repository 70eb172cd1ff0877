package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel validation failures. Callers match these with errors.Is; the
// HTTP layer maps them to field-level responses.
var (
	ErrEmptyDescription    = errors.New("empty_description")
	ErrQuantityNotPositive = errors.New("quantity_not_positive")
	ErrNegativeUnitPrice   = errors.New("negative_unit_price")
	ErrTaxRateOutOfRange   = errors.New("tax_rate_out_of_range")
	ErrDueBeforeIssue      = errors.New("due_before_issue_date")
	ErrEmptyIssuerName     = errors.New("empty_issuer_name")
	ErrEmptyRecipientName  = errors.New("empty_recipient_name")
	ErrEmptyCurrency       = errors.New("empty_currency")
)

// ValidationError wraps a sentinel with the offending field path.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// Validate checks every invariant the engines rely on. It returns the
// first violation found; on success the invoice is safe to hand to the
// calculation and layout engines.
func (inv Invoice) Validate() error {
	if strings.TrimSpace(inv.Issuer.Name) == "" {
		return invalid("company.name", ErrEmptyIssuerName)
	}
	if strings.TrimSpace(inv.Recipient.Name) == "" {
		return invalid("customer.name", ErrEmptyRecipientName)
	}
	if strings.TrimSpace(inv.Currency) == "" {
		return invalid("currency", ErrEmptyCurrency)
	}
	if !inv.DefaultTaxRate.Valid() {
		return invalid("default_tax_rate", ErrTaxRateOutOfRange)
	}
	if !inv.IssueDate.IsZero() && !inv.DueDate.IsZero() && inv.DueDate.Before(inv.IssueDate.Time) {
		return invalid("due_date", ErrDueBeforeIssue)
	}

	for i, it := range inv.Items {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }
		if strings.TrimSpace(it.Description) == "" {
			return invalid(field("description"), ErrEmptyDescription)
		}
		if it.Quantity <= 0 {
			return invalid(field("quantity"), ErrQuantityNotPositive)
		}
		if it.UnitPrice < 0 {
			return invalid(field("unit_price"), ErrNegativeUnitPrice)
		}
		if it.TaxRateOverride != nil && !it.TaxRateOverride.Valid() {
			return invalid(field("tax_rate"), ErrTaxRateOutOfRange)
		}
	}
	return nil
}
