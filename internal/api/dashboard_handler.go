package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/core"
)

// DashboardHandler serves the home overview and the audit trail.
type DashboardHandler struct {
	overviewService core.OverviewService
	auditService    core.AuditService
	logger          *zap.Logger
}

func NewDashboardHandler(ovs core.OverviewService, as core.AuditService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{overviewService: ovs, auditService: as, logger: logger}
}

// GetOverview handles GET /overview
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	overview, err := h.overviewService.Overview(c.Request.Context())
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ListAuditLogs handles GET /audit, newest first.
func (h *DashboardHandler) ListAuditLogs(c *gin.Context) {
	page, err := h.auditService.List(c.Request.Context(), pageRequest(c))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
