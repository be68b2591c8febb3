// Package stats — handlers.go отдаёт проекции дашборда.
package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Handler обрабатывает read-only запросы дашборда.
type Handler struct {
	repo *Repository
}

// NewHandler создаёт обработчик статистики.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Stats — GET /api?endpoint=stats.
func (h *Handler) Stats(c *gin.Context) {
	s, err := h.repo.GetStats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Chats — GET /api?endpoint=chats.
func (h *Handler) Chats(c *gin.Context) {
	chats, err := h.repo.GetActiveChats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, chats)
}

// Complaints — GET /api?endpoint=complaints.
func (h *Handler) Complaints(c *gin.Context) {
	complaints, err := h.repo.GetComplaints(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *Handler) fail(c *gin.Context, err error) {
	log.WithError(err).Error("Ошибка чтения данных дашборда")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка"})
}
