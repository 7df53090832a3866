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

// FailurePath is where failed log-ins are redirected.
const FailurePath = "/failure"

// AuthHandler processes sign-up, log-in and log-out.
type AuthHandler struct {
	facade  AuthFacade
	cookies middleware.CookieOptions
	logger  *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, cookies middleware.CookieOptions, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, cookies: cookies, logger: logger}
}

// SignUpForm handles GET /sign-up.
func (h *AuthHandler) SignUpForm(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SignUpForm)
}

// SignUp handles POST /sign-up.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed request"})
		return
	}

	_, err := h.facade.SignUp(c.Request.Context(), model.SignUpDraft{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		var verr *domainErrors.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse{Draft: verr.Draft, Errors: verr.Fields})
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			h.logger.Warn("sign up rejected", slog.String("reason", "duplicate login id"))
			renderGenericFailure(c)
		default:
			renderInternalError(c, h.logger, "sign up failed", err)
		}
		return
	}

	redirectHome(c)
}

// LogIn handles POST /log-in.
func (h *AuthHandler) LogIn(c *gin.Context) {
	var req dto.LogInRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, FailurePath)
		return
	}

	token, _, err := h.facade.LogIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			h.logger.Error("log in failed", slog.String("error", err.Error()))
		}
		c.Redirect(http.StatusSeeOther, FailurePath)
		return
	}

	middleware.SetSessionCookie(c, token, h.cookies)
	redirectHome(c)
}

// Failure handles GET /failure.
func (h *AuthHandler) Failure(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: domainErrors.ErrInvalidCredentials.Error()})
}

// LogOut handles GET and POST /log-out.
func (h *AuthHandler) LogOut(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.facade.LogOut(c.Request.Context(), token); err != nil {
			renderInternalError(c, h.logger, "log out failed", err)
			return
		}
	}
	middleware.ClearSessionCookie(c, h.cookies)
	redirectHome(c)
}
