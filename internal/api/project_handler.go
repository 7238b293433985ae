package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/core"
	"github.com/example/portfolio-admin/internal/models"
)

// ProjectHandler handles the project endpoints.
type ProjectHandler struct {
	*resourceHandler[models.Project, models.ProjectPatch]
	projectService core.ProjectService
}

func NewProjectHandler(ps core.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		resourceHandler: newResourceHandler[models.Project, models.ProjectPatch](ps, logger),
		projectService:  ps,
	}
}

// ToggleStatus handles POST /projects/:id/toggle-status
func (h *ProjectHandler) ToggleStatus(c *gin.Context) {
	project, err := h.projectService.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
