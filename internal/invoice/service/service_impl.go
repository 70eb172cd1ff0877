// Package service orchestrates the invoice pipeline: validate and total
// an invoice, paginate it against the active geometry, and hand the page
// descriptors to the PDF renderer.
package service

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/inkbill/inkbill/internal/config"
	"github.com/inkbill/inkbill/internal/invoice/calc"
	"github.com/inkbill/inkbill/internal/invoice/domain"
	"github.com/inkbill/inkbill/internal/invoice/layout"
	"github.com/inkbill/inkbill/internal/invoice/render"
	"github.com/inkbill/inkbill/internal/observability/metrics"
)

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Cfg      config.Config
	Metrics  *metrics.Metrics
	Renderer *render.PDFRenderer
}

type Service struct {
	log      *zap.Logger
	geo      layout.Geometry
	renderer *render.PDFRenderer
	metrics  *metrics.Metrics
}

// NewService loads the geometry profile once at construction so a bad
// profile fails the app at startup rather than on first render.
func NewService(p ServiceParam) (*Service, error) {
	geo, err := layout.LoadProfile(p.Cfg.LayoutProfile)
	if err != nil {
		return nil, err
	}
	return &Service{
		log:      p.Log.Named("invoice.service"),
		geo:      geo,
		renderer: p.Renderer,
		metrics:  p.Metrics,
	}, nil
}

// Geometry reports the active page geometry.
func (s *Service) Geometry() layout.Geometry {
	return s.geo
}

// Totals validates the invoice and computes its monetary totals.
func (s *Service) Totals(ctx context.Context, inv domain.Invoice) (domain.Totals, error) {
	return calc.ComputeTotals(inv)
}

// Document validates, totals and paginates the invoice. Oversized rows
// are logged and counted but never dropped.
func (s *Service) Document(ctx context.Context, inv domain.Invoice) (layout.Document, domain.Totals, error) {
	totals, err := calc.ComputeTotals(inv)
	if err != nil {
		return layout.Document{}, domain.Totals{}, err
	}

	doc, err := layout.Paginate(inv, totals, s.geo)
	if err != nil {
		return layout.Document{}, domain.Totals{}, err
	}

	for _, w := range doc.Warnings {
		s.metrics.LayoutWarnings.Inc()
		s.log.Warn("row exceeds page capacity",
			zap.String("invoice_number", inv.Number),
			zap.Int("item_index", w.ItemIndex),
			zap.Float64("row_height", w.RowHeight),
			zap.Float64("capacity", w.Capacity),
		)
	}
	return doc, totals, nil
}

// RenderPDF runs the full pipeline and returns the PDF bytes alongside
// the document the pages were drawn from.
func (s *Service) RenderPDF(ctx context.Context, inv domain.Invoice) ([]byte, layout.Document, error) {
	doc, _, err := s.Document(ctx, inv)
	if err != nil {
		return nil, layout.Document{}, err
	}

	pdf, err := s.renderer.Render(inv, doc, s.geo)
	if err != nil {
		return nil, layout.Document{}, err
	}

	s.metrics.InvoicesRendered.Inc()
	s.metrics.PagesPerInvoice.Observe(float64(len(doc.Pages)))
	s.log.Info("invoice rendered",
		zap.String("invoice_number", inv.Number),
		zap.Int("pages", len(doc.Pages)),
		zap.Int("bytes", len(pdf)),
	)
	return pdf, doc, nil
}
