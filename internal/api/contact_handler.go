package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/core"
)

// ContactHandler handles the admin side of contact messages.
type ContactHandler struct {
	contactService core.ContactService
	logger         *zap.Logger
}

func NewContactHandler(cs core.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{contactService: cs, logger: logger}
}

// ListMessages handles GET /contact, newest first.
func (h *ContactHandler) ListMessages(c *gin.Context) {
	page, err := h.contactService.List(c.Request.Context(), pageRequest(c))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ContactHandler) GetMessage(c *gin.Context) {
	msg, err := h.contactService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// SetStatus handles PATCH /contact/:id/status
func (h *ContactHandler) SetStatus(c *gin.Context) {
	var req ContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	msg, err := h.contactService.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// MarkRead handles POST /contact/:id/read
func (h *ContactHandler) MarkRead(c *gin.Context) {
	msg, err := h.contactService.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *ContactHandler) DeleteMessage(c *gin.Context) {
	if err := h.contactService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
