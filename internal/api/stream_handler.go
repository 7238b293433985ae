package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/core"
	"github.com/example/portfolio-admin/internal/live"
)

// StreamHandler pushes live collection snapshots to the dashboard.
type StreamHandler struct {
	hub    *live.Hub
	logger *zap.Logger
}

func NewStreamHandler(hub *live.Hub, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{hub: hub, logger: logger}
}

// StreamCollection handles GET /stream/:collection as Server-Sent Events.
// Each "snapshot" event carries the whole collection.
func (h *StreamHandler) StreamCollection(c *gin.Context) {
	collection := c.Param("collection")
	if !core.IsContentCollection(collection) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown collection", Details: collection})
		return
	}

	ctx := c.Request.Context()
	ch, cancel, err := h.hub.Subscribe(ctx, collection)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	defer cancel()
	h.logger.Debug("Stream opened", zap.String("collection", collection), zap.String("userID", owner(c)))

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
