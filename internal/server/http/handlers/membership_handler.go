package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/server/http/dto"
)

// MembershipHandler lets a user elevate their own account.
type MembershipHandler struct {
	facade MembershipFacade
	logger *slog.Logger
}

// NewMembershipHandler creates MembershipHandler instance.
func NewMembershipHandler(facade MembershipFacade, logger *slog.Logger) *MembershipHandler {
	return &MembershipHandler{facade: facade, logger: logger}
}

// Join handles POST /join/:id.
func (h *MembershipHandler) Join(c *gin.Context) {
	identity := CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: domainErrors.ErrUnauthorized.Error()})
		return
	}

	target, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed user id"})
		return
	}

	if err := h.facade.Join(c.Request.Context(), identity, target); err != nil {
		if renderAccessError(c, err) {
			return
		}
		renderInternalError(c, h.logger, "join failed", err)
		return
	}
	redirectHome(c)
}
