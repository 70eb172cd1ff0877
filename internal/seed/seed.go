// Package seed inserts a sample draft for local development so a fresh
// database has something to preview and render.
package seed

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkbill/inkbill/internal/config"
	draftdomain "github.com/inkbill/inkbill/internal/draft/domain"
	invoicedomain "github.com/inkbill/inkbill/internal/invoice/domain"
)

var Module = fx.Module("seed",
	fx.Invoke(EnsureSampleDraft),
)

// EnsureSampleDraft saves a demo invoice when seeding is enabled and the
// draft table is empty. Production environments are never seeded.
func EnsureSampleDraft(cfg config.Config, gdb *gorm.DB, drafts draftdomain.Service, log *zap.Logger) error {
	if !cfg.SeedDemoData || cfg.Environment == "production" {
		return nil
	}

	var count int64
	if err := gdb.Model(&draftdomain.Draft{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	d, err := drafts.Save(context.Background(), sampleInvoice(time.Now().UTC()))
	if err != nil {
		return err
	}

	log.Info("seeded sample draft",
		zap.String("draft_id", d.ID.String()),
		zap.String("invoice_number", d.InvoiceNumber),
	)
	return nil
}

func sampleInvoice(now time.Time) invoicedomain.Invoice {
	issue := invoicedomain.NewDate(now.Year(), now.Month(), now.Day())
	due := now.AddDate(0, 0, 30)

	return invoicedomain.Invoice{
		IssueDate:      issue,
		DueDate:        invoicedomain.NewDate(due.Year(), due.Month(), due.Day()),
		Currency:       "EUR",
		DefaultTaxRate: 1900,
		Issuer: invoicedomain.Company{
			Name:    "Inkbill Demo GmbH",
			Address: "Invalidenstr. 12, 10115 Berlin",
			TaxID:   "DE123456789",
			Email:   "billing@example.com",
		},
		Recipient: invoicedomain.Customer{
			Name:    "Musterfirma AG",
			Address: "Domplatz 1, 20095 Hamburg",
		},
		Items: []invoicedomain.Item{
			{Description: "Consulting services", Quantity: 12000, UnitPrice: 9500},
			{Description: "On-site workshop, two days including travel and preparation", Quantity: 1000, UnitPrice: 180000},
			{Description: "Support retainer", Quantity: 3000, UnitPrice: 25000},
		},
		Notes:             "Payable within 30 days by bank transfer.",
		SignatureRequired: true,
		AuthorizedBy:      "A. Muster",
	}
}
