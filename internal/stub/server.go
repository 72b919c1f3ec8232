// Package stub is an in-memory implementation of the portal's remote HTTP
// contract. It backs the client's integration tests and serves as a local
// development target; it keeps no durable state.
package stub

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FryoPie/Student-portal/internal/config"
	"github.com/FryoPie/Student-portal/internal/validator"
)

type Server struct {
	router   *gin.Engine
	store    *Store
	tokens   *TokenStore
	jwt      *JWTService
	notifier *Notifier
	validate *validator.Validator
	logger   *slog.Logger

	cancel context.CancelFunc
}

func NewServer(cfg *config.StubConfig, logger *slog.Logger) (*Server, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.TestMode)
	}

	store := NewStore()
	tokens, err := NewEmbeddedTokenStore()
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:    store,
		tokens:   tokens,
		jwt:      NewJWTService(cfg.JWTSecret),
		notifier: NewNotifier(store, logger),
		validate: validator.New(),
		logger:   logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	if err := s.notifier.Run(ctx); err != nil {
		cancel()
		tokens.Close()
		return nil, fmt.Errorf("start notifier: %w", err)
	}

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(requestLogger(logger))
	s.setupRoutes()
	return s, nil
}

// Handler exposes the router for http.Server and httptest.
func (s *Server) Handler() http.Handler { return s.router }

// Close releases the embedded redis and the notification channel.
func (s *Server) Close() {
	s.cancel()
	_ = s.notifier.Close()
	s.tokens.Close()
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login/", s.handleLogin)
		authGroup.POST("/register/", s.handleRegister)
		authGroup.POST("/refresh/", s.handleRefresh)
		authGroup.POST("/logout/", s.handleLogout)
	}

	profiles := api.Group("/profiles")
	{
		profiles.GET("/me/", s.AuthRequired(), s.handleMyProfile)
		profiles.GET("/:id/", s.handlePublicProfile)
		profiles.PATCH("/:id/", s.AuthRequired(), s.handleUpdateProfile)
	}

	achievements := api.Group("/achievements")
	{
		list := achievements.Group("/list")
		{
			list.GET("/", s.handleListAchievements)
			list.POST("/", s.AuthRequired(), s.handleCreateAchievement)
			list.GET("/my_achievements/", s.AuthRequired(), s.handleMyAchievements)
			list.GET("/pending/", s.AuthRequired(), s.RequireCoordinator(), s.handlePendingAchievements)
			list.PATCH("/:id/", s.AuthRequired(), s.handleEditAchievement)
			list.DELETE("/:id/", s.AuthRequired(), s.handleDeleteAchievement)
			list.POST("/:id/verify/", s.AuthRequired(), s.RequireCoordinator(), s.handleVerifyAchievement)
		}

		notifications := achievements.Group("/notifications", s.AuthRequired())
		{
			notifications.GET("/", s.handleListNotifications)
			notifications.POST("/:id/mark_read/", s.handleMarkRead)
			notifications.POST("/mark_all_read/", s.handleMarkAllRead)
		}
	}

	s.router.GET("/media/:name", s.handleMedia)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status())
	}
}

func (s *Server) handleMedia(c *gin.Context) {
	data, ok := s.store.GetFile(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", data)
}
