// Package moderation — handlers.go обрабатывает действия модерации:
// POST /api {action: resolve_complaint | block_user}.
package moderation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"anontalk.ru/admin-backend/internal/common"
)

// Handler обрабатывает HTTP-запросы модерации.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик модерации.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type actionRequest struct {
	Action      string `json:"action"`
	ComplaintID int64  `json:"complaint_id"`
	Status      string `json:"status"`
	// TelegramID присылает дашборд, но источник истины — сама жалоба:
	// блокируется именно reported_user_id из неё.
	TelegramID int64 `json:"telegram_id"`
}

// HandleAction — POST /api, диспетчеризация по полю action.
func (h *Handler) HandleAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный запрос"})
		return
	}

	switch req.Action {
	case "resolve_complaint":
		h.respond(c, h.service.ResolveComplaint(c.Request.Context(), req.ComplaintID, req.Status))
	case "block_user":
		h.respond(c, h.service.BlockUser(c.Request.Context(), req.ComplaintID))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "неизвестное действие"})
	}
}

func (h *Handler) respond(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, common.ErrComplaintNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNoReportedUser):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrUpstreamFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Ошибка модерации")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка"})
	}
}
