// Package stats собирает read-only проекции для дашборда:
// сводные метрики, активные чаты и список жалоб.
// Эти данные панель только читает — все изменения идут через
// модерацию и очистку вложений.
package stats

import (
	"fmt"
	"strings"
	"time"

	"anontalk.ru/admin-backend/internal/common"
)

// Stats — сводка по сервису за последние сутки.
type Stats struct {
	ActiveUsers        int                `json:"active_users"`
	ActiveChats        int                `json:"active_chats"`
	SearchingUsers     int                `json:"searching_users"`
	PendingComplaints  int                `json:"pending_complaints"`
	GenderDistribution GenderDistribution `json:"gender_distribution"`
	HourlyStats        []HourlyStat       `json:"hourly_stats"`
	AvgChatDurationMin float64            `json:"avg_chat_duration_minutes"`
	TotalMessagesToday int                `json:"total_messages_today"`
}

// GenderDistribution — распределение активных пользователей по полу.
type GenderDistribution struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// HourlyStat — число начатых чатов в конкретный час суток.
type HourlyStat struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// ChatView — строка списка активных чатов, как её показывает дашборд.
type ChatView struct {
	ID       string `json:"id"`       // CH-001
	Duration string `json:"duration"` // ЧЧ:ММ
	Gender   string `json:"gender"`   // M ↔ F
	Messages int    `json:"messages"`
	Status   string `json:"status"`
}

// ComplaintView — строка списка жалоб.
type ComplaintView struct {
	ID             string `json:"id"`     // R-001
	ChatID         string `json:"chatId"` // CH-001
	ReportedUserID *int64 `json:"reported_user_id,omitempty"`
	Reason         string `json:"reason"`
	Status         string `json:"status"`
	Time           string `json:"time"` // ЧЧ:ММ создания
}

// FormatChatID форматирует номер чата для дашборда: 7 → "CH-007".
func FormatChatID(id int64) string {
	return fmt.Sprintf("CH-%03d", id)
}

// FormatComplaintID форматирует номер жалобы: 7 → "R-007".
func FormatComplaintID(id int64) string {
	return fmt.Sprintf("R-%03d", id)
}

// GenderLabel сокращает пару полов до "M ↔ F".
// Неизвестный пол показывается знаком вопроса.
func GenderLabel(g1, g2 string) string {
	return fmt.Sprintf("%s ↔ %s", genderLetter(g1), genderLetter(g2))
}

func genderLetter(g string) string {
	if g == "" {
		return "?"
	}
	return strings.ToUpper(g[:1])
}

// chatView собирает строку списка из сырых данных чата.
func chatView(id int64, startedAt time.Time, now time.Time, g1, g2 string, messages int) ChatView {
	return ChatView{
		ID:       FormatChatID(id),
		Duration: common.FormatClock(now.Sub(startedAt)),
		Gender:   GenderLabel(g1, g2),
		Messages: messages,
		Status:   "active",
	}
}
