package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/domain/model"
	"github.com/polkiloo/membersonly/internal/server/http/dto"
	"github.com/polkiloo/membersonly/internal/server/http/middleware"
)

// CurrentIdentity extracts the authenticated identity from context.
func CurrentIdentity(c *gin.Context) *model.Identity {
	return middleware.CurrentIdentity(c)
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// renderAccessError maps gate failures to 401/403 and reports whether it did.
func renderAccessError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: domainErrors.ErrForbidden.Error()})
	case errors.Is(err, domainErrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: domainErrors.ErrUnauthorized.Error()})
	default:
		return false
	}
	return true
}

// renderInternalError logs err and answers with a generic 500 body.
func renderInternalError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	logger.Error(msg,
		slog.String("error", err.Error()),
		slog.String("path", c.Request.URL.Path),
	)
	renderGenericFailure(c)
}

// renderGenericFailure answers with the body shared by every storage and
// internal failure.
func renderGenericFailure(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
}
