// Package domain contains persistence models for invoice drafts. A draft
// stores the full invoice value as a lossless JSON payload; the engines
// always operate on the decoded value, never on the stored form.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	invoicedomain "github.com/inkbill/inkbill/internal/invoice/domain"
)

// Draft is a persisted invoice awaiting rendering.
type Draft struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	InvoiceNumber string         `gorm:"uniqueIndex;not null" json:"invoice_number"`
	Currency      string         `gorm:"type:text;not null" json:"currency"`
	Payload       datatypes.JSON `gorm:"not null" json:"payload"`
	CreatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Draft) TableName() string { return "invoice_drafts" }

var (
	ErrNotFound        = errors.New("draft_not_found")
	ErrInvalidID       = errors.New("invalid_draft_id")
	ErrDuplicateNumber = errors.New("duplicate_invoice_number")
)

type Service interface {
	Save(ctx context.Context, inv invoicedomain.Invoice) (*Draft, error)
	Update(ctx context.Context, id string, inv invoicedomain.Invoice) (*Draft, error)
	Get(ctx context.Context, id string) (*Draft, invoicedomain.Invoice, error)
	List(ctx context.Context) ([]*Draft, error)
	Delete(ctx context.Context, id string) error
}
