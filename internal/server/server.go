// Package server собирает HTTP API админ-панели.
// Три точки входа: /auth (вход, проверка, выход), /api (данные дашборда
// и действия модерации), /cleanup (очистка вложений). Всё, кроме /auth,
// закрыто проверкой сессии.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"anontalk.ru/admin-backend/internal/config"
	"anontalk.ru/admin-backend/internal/features/attachments"
	"anontalk.ru/admin-backend/internal/features/auth"
	"anontalk.ru/admin-backend/internal/features/moderation"
	"anontalk.ru/admin-backend/internal/features/stats"
)

// Server — HTTP-сервер админ-панели.
type Server struct {
	httpServer *http.Server

	attachmentsHandler *attachments.Handler
	statsHandler       *stats.Handler
}

// New собирает роутер и сервер.
func New(
	cfg *config.Config,
	authService *auth.Service,
	authHandler *auth.Handler,
	moderationHandler *moderation.Handler,
	attachmentsHandler *attachments.Handler,
	statsHandler *stats.Handler,
) *Server {
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		attachmentsHandler: attachmentsHandler,
		statsHandler:       statsHandler,
	}

	router := gin.New()
	router.Use(Recovery(), RequestLogger(), CORS())

	// Аутентификация — единственный незащищённый маршрут
	router.POST("/auth", authHandler.Handle)

	// Всё остальное требует живой сессии
	protected := router.Group("/", SessionRequired(authService))
	protected.GET("/api", s.handleAPIRead)
	protected.POST("/api", moderationHandler.HandleAction)
	protected.POST("/cleanup", attachmentsHandler.Cleanup)

	s.httpServer = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}
	return s
}

// handleAPIRead диспетчеризует чтение дашборда по параметру endpoint.
func (s *Server) handleAPIRead(c *gin.Context) {
	switch c.DefaultQuery("endpoint", "stats") {
	case "stats":
		s.statsHandler.Stats(c)
	case "chats":
		s.statsHandler.Chats(c)
	case "complaints":
		s.statsHandler.Complaints(c)
	case "attachments":
		s.attachmentsHandler.List(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "неизвестный endpoint"})
	}
}

// Start запускает сервер и блокируется до его остановки.
func (s *Server) Start() error {
	log.WithField("addr", s.httpServer.Addr).Info("HTTP-сервер запущен")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown корректно останавливает сервер, дождавшись живых запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("HTTP-сервер останавливается...")
	return s.httpServer.Shutdown(ctx)
}
