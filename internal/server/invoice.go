package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	draftdomain "github.com/inkbill/inkbill/internal/draft/domain"
	invoicedomain "github.com/inkbill/inkbill/internal/invoice/domain"
)

type draftDetail struct {
	Draft   *draftdomain.Draft    `json:"draft"`
	Invoice invoicedomain.Invoice `json:"invoice"`
}

func (s *Server) CreateDraft(c *gin.Context) {
	var inv invoicedomain.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	d, err := s.draftSvc.Save(c.Request.Context(), inv)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": d})
}

func (s *Server) ListDrafts(c *gin.Context) {
	drafts, err := s.draftSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": drafts})
}

func (s *Server) GetDraft(c *gin.Context) {
	d, inv, err := s.draftSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": draftDetail{Draft: d, Invoice: inv}})
}

func (s *Server) UpdateDraft(c *gin.Context) {
	var inv invoicedomain.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	d, err := s.draftSvc.Update(c.Request.Context(), c.Param("id"), inv)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": d})
}

func (s *Server) DeleteDraft(c *gin.Context) {
	if err := s.draftSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PreviewInvoice totals and paginates the posted invoice without
// persisting anything.
func (s *Server) PreviewInvoice(c *gin.Context) {
	var inv invoicedomain.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	doc, totals, err := s.invoiceSvc.Document(c.Request.Context(), inv)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"totals":   totals,
		"document": doc,
	}})
}

func (s *Server) DraftTotals(c *gin.Context) {
	_, inv, err := s.draftSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	totals, err := s.invoiceSvc.Totals(c.Request.Context(), inv)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": totals})
}

func (s *Server) DraftDocument(c *gin.Context) {
	_, inv, err := s.draftSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, _, err := s.invoiceSvc.Document(c.Request.Context(), inv)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": doc})
}

func (s *Server) DraftPDF(c *gin.Context) {
	_, inv, err := s.draftSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	pdf, _, err := s.invoiceSvc.RenderPDF(c.Request.Context(), inv)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", inv.Number+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
