package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/core"
	"github.com/example/portfolio-admin/internal/models"
)

// AboutHandler handles the About (portfolio profile) endpoints.
type AboutHandler struct {
	*resourceHandler[models.About, models.AboutPatch]
	aboutService core.AboutService
}

func NewAboutHandler(as core.AboutService, logger *zap.Logger) *AboutHandler {
	return &AboutHandler{
		resourceHandler: newResourceHandler[models.About, models.AboutPatch](as, logger),
		aboutService:    as,
	}
}

// GetActive handles GET /about/active
func (h *AboutHandler) GetActive(c *gin.Context) {
	about, err := h.aboutService.Active(c.Request.Context())
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, about)
}

// Normalize handles POST /about/normalize
func (h *AboutHandler) Normalize(c *gin.Context) {
	flipped, err := h.aboutService.Normalize(c.Request.Context())
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	if flipped == nil {
		flipped = []string{}
	}
	c.JSON(http.StatusOK, NormalizeResponse{Deactivated: flipped})
}
