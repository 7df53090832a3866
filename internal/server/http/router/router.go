package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/membersonly/internal/config"
	"github.com/polkiloo/membersonly/internal/server/http/handlers"
	"github.com/polkiloo/membersonly/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MembersFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	if len(cfg.CORSAllowedOrigins) > 0 {
		engine.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	}
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	cookies := middleware.CookieOptions{MaxAge: cfg.SessionTTL, Secure: cfg.CookieSecure}
	engine.Use(middleware.LoadSession(facade, cookies, logger))

	authHandler := handlers.NewAuthHandler(facade, cookies, logger)
	messageHandler := handlers.NewMessageHandler(facade, logger)
	membershipHandler := handlers.NewMembershipHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade, logger)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/", messageHandler.Board)
	engine.GET("/sign-up", authHandler.SignUpForm)
	engine.POST("/sign-up", authHandler.SignUp)
	engine.POST("/log-in", authHandler.LogIn)
	engine.GET(handlers.FailurePath, authHandler.Failure)
	engine.GET("/log-out", authHandler.LogOut)
	engine.POST("/log-out", authHandler.LogOut)

	member := engine.Group("")
	member.Use(middleware.RequireIdentity())
	member.POST("/messages", messageHandler.Post)
	member.POST("/join/:id", membershipHandler.Join)

	return engine
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = origins
	c.AllowCredentials = true
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	return c
}
