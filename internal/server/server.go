// Package server exposes the invoice engines over HTTP: draft CRUD,
// stateless preview, totals and document inspection, and PDF delivery.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/inkbill/inkbill/internal/config"
	draftdomain "github.com/inkbill/inkbill/internal/draft/domain"
	invoicesvc "github.com/inkbill/inkbill/internal/invoice/service"
	"github.com/inkbill/inkbill/internal/observability/metrics"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(log))
	r.Use(m.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	return r
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	draftSvc   draftdomain.Service
	invoiceSvc *invoicesvc.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DraftSvc   draftdomain.Service
	InvoiceSvc *invoicesvc.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		draftSvc:   p.DraftSvc,
		invoiceSvc: p.InvoiceSvc,
	}

	s.registerInvoiceRoutes()

	return s
}

func (s *Server) registerInvoiceRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/invoices", s.CreateDraft)
	v1.GET("/invoices", s.ListDrafts)
	v1.GET("/invoices/:id", s.GetDraft)
	v1.PUT("/invoices/:id", s.UpdateDraft)
	v1.DELETE("/invoices/:id", s.DeleteDraft)

	v1.POST("/invoices/preview", s.PreviewInvoice)
	v1.GET("/invoices/:id/totals", s.DraftTotals)
	v1.GET("/invoices/:id/document", s.DraftDocument)
	v1.GET("/invoices/:id/pdf", s.DraftPDF)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
