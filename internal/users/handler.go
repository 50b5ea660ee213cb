package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"formulator-backend/internal/shared/server/middleware"
	"formulator-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/session", h.session)
}

func (h *Handler) session(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable")
		return
	}
	claimed := User{
		ID:         middleware.UserIDFromContext(c),
		Email:      middleware.UserEmailFromContext(c),
		FullName:   middleware.UserNameFromContext(c),
		PictureURL: middleware.UserPictureFromContext(c),
	}
	session, err := h.Svc.SessionFor(c.Request.Context(), claimed)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load session")
		return
	}
	respond.OK(c, session)
}
