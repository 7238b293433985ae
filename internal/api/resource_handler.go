package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/core"
)

// crudService is the shape shared by the content services: T is the record
// and P its partial update.
type crudService[T any, P any] interface {
	List(ctx context.Context, page core.PageRequest) (*core.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, v T) (*T, error)
	Patch(ctx context.Context, id string, patch P) (*T, error)
	Replace(ctx context.Context, id string, v T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// resourceHandler serves the list/get/create/patch/replace/delete endpoints
// of one content collection.
type resourceHandler[T any, P any] struct {
	svc    crudService[T, P]
	logger *zap.Logger
}

func newResourceHandler[T any, P any](svc crudService[T, P], logger *zap.Logger) *resourceHandler[T, P] {
	return &resourceHandler[T, P]{svc: svc, logger: logger}
}

// register mounts the handlers on g. Extra routes must be registered before
// calling it so that static segments win over ":id".
func (h *resourceHandler[T, P]) register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Patch)
	g.PUT("/:id", h.Replace)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /<collection>?page=&rowsPerPage=
func (h *resourceHandler[T, P]) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), pageRequest(c))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *resourceHandler[T, P]) Get(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *resourceHandler[T, P]) Create(c *gin.Context) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *resourceHandler[T, P]) Patch(c *gin.Context) {
	var req P
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.svc.Patch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *resourceHandler[T, P]) Replace(c *gin.Context) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	replaced, err := h.svc.Replace(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, replaced)
}

func (h *resourceHandler[T, P]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
