package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/core"
	"github.com/example/portfolio-admin/internal/live"
	"github.com/example/portfolio-admin/internal/prefs"
	"github.com/example/portfolio-admin/internal/validation"
)

var notFoundErrors = []error{
	core.ErrAboutNotFound,
	core.ErrNoActiveAbout,
	core.ErrEducationNotFound,
	core.ErrSkillNotFound,
	core.ErrProjectNotFound,
	core.ErrContactNotFound,
	core.ErrInvalidCollection,
}

// mapServiceError writes the response for an error returned by a service.
func mapServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *validation.Errors
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validation.Summary, Fields: verr.Fields})
		return
	case errors.Is(err, prefs.ErrInvalid):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid theme setting", Details: err.Error()})
		return
	case errors.Is(err, core.ErrImageUpload):
		logger.Error("Image upload failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to upload image"})
		return
	case errors.Is(err, live.ErrClosed):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Server is shutting down"})
		return
	}
	for _, nf := range notFoundErrors {
		if errors.Is(err, nf) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: nf.Error()})
			return
		}
	}

	logger.Error("Internal Server Error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
}

// pageRequest reads the zero-based page and rowsPerPage query parameters.
// Malformed numbers fall back to the defaults.
func pageRequest(c *gin.Context) core.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	rows, _ := strconv.Atoi(c.Query("rowsPerPage"))
	return core.PageRequest{Page: page, RowsPerPage: rows}
}
