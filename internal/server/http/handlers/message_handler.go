package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/server/http/dto"
)

// MessageHandler serves the board and accepts new messages.
type MessageHandler struct {
	facade BoardFacade
	logger *slog.Logger
}

// NewMessageHandler creates MessageHandler instance.
func NewMessageHandler(facade BoardFacade, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{facade: facade, logger: logger}
}

// Board handles GET /.
func (h *MessageHandler) Board(c *gin.Context) {
	viewer := CurrentIdentity(c)
	entries, err := h.facade.Board(c.Request.Context(), viewer)
	if err != nil {
		renderInternalError(c, h.logger, "load board failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.BoardResponse{
		Viewer:   dto.NewViewer(viewer),
		Messages: dto.NewMessages(entries),
	})
}

// Post handles POST /messages.
func (h *MessageHandler) Post(c *gin.Context) {
	var req dto.MessageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed request"})
		return
	}

	viewer := CurrentIdentity(c)
	_, err := h.facade.PostMessage(c.Request.Context(), viewer, req.Title, req.Text)
	if err == nil {
		redirectHome(c)
		return
	}
	if renderAccessError(c, err) {
		return
	}

	var verr *domainErrors.ValidationError
	if !errors.As(err, &verr) {
		renderInternalError(c, h.logger, "post message failed", err)
		return
	}

	entries, err := h.facade.Board(c.Request.Context(), viewer)
	if err != nil {
		renderInternalError(c, h.logger, "load board failed", err)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse{
		Draft:    verr.Draft,
		Errors:   verr.Fields,
		Messages: dto.NewMessages(entries),
	})
}
