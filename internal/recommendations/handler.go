package recommendations

import (
	"errors"

	"github.com/gin-gonic/gin"

	"formulator-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// Generate handles POST of a profile and answers {recommendation} or {error}.
// A missing credential is reported before the body is read.
func (h *Handler) Generate(c *gin.Context) {
	if err := h.Svc.Ready(); err != nil {
		h.fail(c, classify(err))
		return
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, newError(CategoryProviderError, err.Error(), err))
		return
	}

	result, err := h.Svc.Generate(c.Request.Context(), req)
	if err != nil {
		var categorized *Error
		if !errors.As(err, &categorized) {
			categorized = newError(CategoryProviderError, err.Error(), err)
		}
		h.fail(c, categorized)
		return
	}

	respond.OK(c, result)
}

func (h *Handler) fail(c *gin.Context, err *Error) {
	c.Set("errorCategory", string(err.Category))
	respond.Error(c, err.Status, string(err.Category), err.Message)
}
