package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/domain/model"
)

const (
	// IdentityContextKey is a gin context key for the authenticated identity.
	IdentityContextKey = "identity"
	// SessionCookieName names the cookie carrying the signed session token.
	SessionCookieName = "membersonly_session"
)

// SessionResolver maps a session token to the current identity.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*model.Identity, error)
}

// CookieOptions controls how the session cookie is written.
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

// LoadSession attaches the identity behind the request's session token, if
// any. Unknown or expired sessions continue anonymously with the cookie
// cleared.
func LoadSession(resolver SessionResolver, cookies CookieOptions, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		identity, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainErrors.ErrSessionNotFound) {
				ClearSessionCookie(c, cookies)
				c.Next()
				return
			}
			logger.Error("resolve session failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// RequireIdentity rejects anonymous requests with 401.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domainErrors.ErrUnauthorized.Error()})
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity attached by LoadSession or nil.
func CurrentIdentity(c *gin.Context) *model.Identity {
	val, ok := c.Get(IdentityContextKey)
	if !ok {
		return nil
	}
	identity, _ := val.(*model.Identity)
	return identity
}

// SessionToken returns the raw session token sent with the request.
func SessionToken(c *gin.Context) string {
	return extractToken(c)
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetSessionCookie writes the session token cookie to the response.
func SetSessionCookie(c *gin.Context, token string, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(opts.MaxAge.Seconds()), "/", "", opts.Secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", opts.Secure, true)
}
