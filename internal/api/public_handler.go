package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/core"
	"github.com/example/portfolio-admin/internal/models"
)

// PublicHandler serves the unauthenticated endpoints used by the portfolio
// site.
type PublicHandler struct {
	aboutService   core.AboutService
	projectService core.ProjectService
	contactService core.ContactService
	logger         *zap.Logger
}

func NewPublicHandler(as core.AboutService, ps core.ProjectService, cs core.ContactService, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{aboutService: as, projectService: ps, contactService: cs, logger: logger}
}

// GetAbout handles GET /public/about with the single active profile.
func (h *PublicHandler) GetAbout(c *gin.Context) {
	about, err := h.aboutService.Active(c.Request.Context())
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, about)
}

func (h *PublicHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListActive(c.Request.Context())
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// RecordView handles POST /public/projects/:id/view
func (h *PublicHandler) RecordView(c *gin.Context) {
	id := c.Param("id")
	views, err := h.projectService.RecordView(c.Request.Context(), id)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ViewResponse{ID: id, Views: views})
}

// SubmitContact handles POST /public/contact
func (h *PublicHandler) SubmitContact(c *gin.Context) {
	var req models.Contact
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	msg, err := h.contactService.Submit(c.Request.Context(), req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Message sent", Data: gin.H{"id": msg.ID}})
}
