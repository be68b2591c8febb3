// Package attachments — handlers.go обрабатывает список вложений и очистку.
package attachments

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"anontalk.ru/admin-backend/internal/common"
)

// Handler обрабатывает HTTP-запросы к вложениям.
type Handler struct {
	service *Service
	clock   common.Clock
}

// NewHandler создаёт обработчик вложений.
func NewHandler(service *Service, clock common.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

type attachmentView struct {
	ID           int64  `json:"id"`
	ChatID       int64  `json:"chat_id"`
	MediaURL     string `json:"media_url"`
	ContentType  string `json:"content_type"`
	SentAt       string `json:"sent_at"`
	SentLabel    string `json:"sent_label"`
	SenderGender string `json:"sender_gender"`
	// Сколько секунд вложению осталось жить — для таймера на дашборде
	ExpiresInSeconds int64 `json:"expires_in_seconds"`
}

// List — GET /api?endpoint=attachments. Просроченные вложения не попадают
// в выдачу независимо от того, успела ли их удалить очистка.
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Ошибка списка вложений")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка"})
		return
	}

	now := h.clock.Now()
	views := make([]attachmentView, 0, len(items))
	for _, a := range items {
		views = append(views, attachmentView{
			ID:               a.ID,
			ChatID:           a.ChatID,
			MediaURL:         a.MediaURL,
			ContentType:      a.ContentType,
			SentAt:           a.SentAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			SentLabel:        common.FormatRelativeTime(a.SentAt, now),
			SenderGender:     a.SenderGender,
			ExpiresInSeconds: int64(TimeUntilDeletion(a, now).Seconds()),
		})
	}
	c.JSON(http.StatusOK, views)
}

type cleanupRequest struct {
	// DeleteAll — явное подтверждение полного удаления.
	// Без него выполняется только очистка просроченного.
	DeleteAll bool `json:"delete_all"`
}

// Cleanup — POST /cleanup. Пустое тело → очистка просроченных,
// {"delete_all": true} → полное удаление.
func (h *Handler) Cleanup(c *gin.Context) {
	var req cleanupRequest
	// Тело может быть пустым — это обычный запуск очистки
	_ = c.ShouldBindJSON(&req)

	var (
		deleted int
		err     error
	)
	if req.DeleteAll {
		deleted, err = h.service.DeleteAll(c.Request.Context())
	} else {
		deleted, err = h.service.CleanupExpired(c.Request.Context())
	}
	if err != nil {
		log.WithError(err).Error("Ошибка очистки вложений")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted_count": deleted})
}
