package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkbill/inkbill/internal/config"
	"github.com/inkbill/inkbill/internal/invoice/domain"
	"github.com/inkbill/inkbill/internal/invoice/layout"
	"github.com/inkbill/inkbill/internal/invoice/render"
	"github.com/inkbill/inkbill/internal/observability/metrics"
	"github.com/inkbill/inkbill/pkg/money"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(ServiceParam{
		Log:      zap.NewNop(),
		Cfg:      config.Config{},
		Metrics:  metrics.New(),
		Renderer: render.NewPDFRenderer(),
	})
	require.NoError(t, err)
	return svc
}

func testInvoice(items ...domain.Item) domain.Invoice {
	return domain.Invoice{
		Number:            "INV-20260301-0001",
		IssueDate:         domain.NewDate(2026, time.March, 1),
		DueDate:           domain.NewDate(2026, time.March, 31),
		Currency:          "EUR",
		DefaultTaxRate:    800,
		Items:             items,
		SignatureRequired: true,
		AuthorizedBy:      "A. Muster",
		Issuer:            domain.Company{Name: "Acme GmbH", Address: "Berlin"},
		Recipient:         domain.Customer{Name: "Widget AG", Address: "Hamburg"},
	}
}

func TestServiceDefaultsGeometry(t *testing.T) {
	svc := newTestService(t)
	assert.Equal(t, layout.Default(), svc.Geometry())
}

func TestServiceRejectsBadProfile(t *testing.T) {
	_, err := NewService(ServiceParam{
		Log:      zap.NewNop(),
		Cfg:      config.Config{LayoutProfile: "testdata/does-not-exist.yaml"},
		Metrics:  metrics.New(),
		Renderer: render.NewPDFRenderer(),
	})
	assert.Error(t, err)
}

func TestServiceTotals(t *testing.T) {
	svc := newTestService(t)
	totals, err := svc.Totals(context.Background(), testInvoice(domain.Item{
		Description: "Consulting",
		Quantity:    3000,
		UnitPrice:   1999,
	}))
	require.NoError(t, err)
	assert.Equal(t, money.Amount(6477), totals.GrandTotal)
}

func TestServiceTotalsInvalidInvoice(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Totals(context.Background(), testInvoice(domain.Item{
		Description: "",
		Quantity:    1000,
		UnitPrice:   100,
	}))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items[0].description", verr.Field)
}

func TestServiceDocument(t *testing.T) {
	svc := newTestService(t)
	doc, totals, err := svc.Document(context.Background(), testInvoice(domain.Item{
		Description: "Consulting",
		Quantity:    3000,
		UnitPrice:   1999,
	}))
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.False(t, doc.Pages[0].Continuation)
	assert.True(t, doc.Pages[0].Signature)
	assert.Equal(t, money.Amount(6477), totals.GrandTotal)
}

func TestServiceRenderPDF(t *testing.T) {
	svc := newTestService(t)
	pdf, doc, err := svc.RenderPDF(context.Background(), testInvoice(domain.Item{
		Description: "Consulting",
		Quantity:    3000,
		UnitPrice:   1999,
	}))
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.True(t, len(pdf) > 4)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
