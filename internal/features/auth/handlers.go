// Package auth — handlers.go обрабатывает POST /auth.
// Запрос диспетчеризуется по полю action: login / verify / logout.
package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"anontalk.ru/admin-backend/internal/common"
)

// Handler обрабатывает HTTP-запросы аутентификации.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик аутентификации.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type authRequest struct {
	Action       string `json:"action"`
	Password     string `json:"password"`
	SessionToken string `json:"session_token"`
}

// Handle — единая точка входа: POST /auth {action, password?, session_token?}.
func (h *Handler) Handle(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный запрос"})
		return
	}
	if req.Action == "" {
		req.Action = "login"
	}

	switch req.Action {
	case "login":
		h.login(c, req.Password)
	case "verify":
		h.verify(c, h.token(c, req))
	case "logout":
		h.logout(c, h.token(c, req))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "неизвестное действие"})
	}
}

// token достаёт токен из тела запроса или заголовка X-Session-Token.
func (h *Handler) token(c *gin.Context, req authRequest) string {
	if req.SessionToken != "" {
		return req.SessionToken
	}
	return c.GetHeader("X-Session-Token")
}

func (h *Handler) login(c *gin.Context, password string) {
	session, err := h.service.Login(c.Request.Context(), password, c.ClientIP(), c.Request.UserAgent())
	switch {
	case errors.Is(err, common.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case err != nil:
		log.WithError(err).Error("Ошибка входа")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка"})
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"session_token": session.SessionToken,
		})
	}
}

func (h *Handler) verify(c *gin.Context, token string) {
	valid, err := h.service.Verify(c.Request.Context(), token)
	if err != nil {
		log.WithError(err).Error("Ошибка проверки сессии")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка"})
		return
	}
	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func (h *Handler) logout(c *gin.Context, token string) {
	// Logout всегда отвечает успехом, даже если токен незнаком
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		log.WithError(err).Warn("Ошибка отзыва сессии")
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
