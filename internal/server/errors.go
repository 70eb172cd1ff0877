package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	draftdomain "github.com/inkbill/inkbill/internal/draft/domain"
	invoicedomain "github.com/inkbill/inkbill/internal/invoice/domain"
	"github.com/inkbill/inkbill/internal/invoice/layout"
)

type fieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorPayload struct {
	Type    string       `json:"type"`
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

// ErrorHandlingMiddleware converts errors attached to the gin context
// into a uniform JSON error body. Handlers never write error responses
// directly; they call AbortWithError and let this middleware map it.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return ErrInvalidRequest
}

func mapError(err error) (int, errorPayload) {
	var vErr *invoicedomain.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []fieldError{
				{
					Field:   vErr.Field,
					Code:    vErr.Err.Error(),
					Message: vErr.Error(),
				},
			},
		}
	}

	var cfgErr *layout.ConfigError
	if errors.As(err, &cfgErr) {
		return http.StatusInternalServerError, errorPayload{
			Type:    "layout_configuration_error",
			Message: cfgErr.Error(),
		}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, draftdomain.ErrInvalidID):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: "invalid request",
		}
	case errors.Is(err, draftdomain.ErrDuplicateNumber):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "invoice number already exists",
		}
	case errors.Is(err, draftdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog reports the mapped error type for request logs.
func classifyErrorForLog(err error) string {
	_, payload := mapError(err)
	return payload.Type
}
