package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/middleware"
	"github.com/example/portfolio-admin/internal/prefs"
)

// ThemeHandler serves the theme preferences of the calling user.
type ThemeHandler struct {
	themeService *prefs.Service
	logger       *zap.Logger
}

func NewThemeHandler(ts *prefs.Service, logger *zap.Logger) *ThemeHandler {
	return &ThemeHandler{themeService: ts, logger: logger}
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type colorRequest struct {
	Color string `json:"color"`
}

func owner(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

func (h *ThemeHandler) GetTheme(c *gin.Context) {
	theme, err := h.themeService.Get(c.Request.Context(), owner(c))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, theme)
}

// UpdateTheme handles PUT /theme with any subset of the settings.
func (h *ThemeHandler) UpdateTheme(c *gin.Context) {
	var req prefs.Patch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	theme, err := h.themeService.Update(c.Request.Context(), owner(c), req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, theme)
}

func (h *ThemeHandler) SetMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	theme, err := h.themeService.SetMode(c.Request.Context(), owner(c), req.Mode)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, theme)
}

// SetColor handles PUT /theme/colors/:slot
func (h *ThemeHandler) SetColor(c *gin.Context) {
	var req colorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	theme, err := h.themeService.SetColor(c.Request.Context(), owner(c), c.Param("slot"), req.Color)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, theme)
}

func (h *ThemeHandler) ResetTheme(c *gin.Context) {
	theme, err := h.themeService.Reset(c.Request.Context(), owner(c))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, theme)
}

// Appearance handles GET /theme/appearance?systemDark=. The browser reports
// its color scheme through systemDark; without it the value last reported
// while a theme stream is open is used.
func (h *ThemeHandler) Appearance(c *gin.Context) {
	ctx := c.Request.Context()
	raw, ok := c.GetQuery("systemDark")
	if !ok {
		h.GetTheme(c)
		return
	}
	dark, err := strconv.ParseBool(raw)
	if err != nil {
		badRequest(c, err)
		return
	}
	theme, err := h.themeService.SetSystemDark(ctx, owner(c), dark)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, theme)
}

// Stream handles GET /theme/stream as Server-Sent Events.
func (h *ThemeHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	ch, cancel, err := h.themeService.Subscribe(ctx, owner(c))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case theme, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("theme", theme)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
