// Package moderation реализует разбор жалоб: решение по жалобе
// и блокировку нарушителя в реестре пользователей чата.
// models.go описывает структуру жалобы и её статусы.
package moderation

import "time"

// Статусы жалобы. Переход только pending → resolved | rejected,
// из терминального статуса выхода нет.
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
	StatusRejected = "rejected"
)

// Complaint — жалоба пользователя на собеседника.
// Создаёт её бот чата; панель меняет только статус.
type Complaint struct {
	ID             int64     `db:"id"`
	ChatID         int64     `db:"chat_id"`
	ReportedUserID *int64    `db:"reported_user_id"` // NULL, если нарушитель не определён
	Reason         string    `db:"reason"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
}

// TerminalOutcome сообщает, допустим ли статус как исход разбора жалобы.
func TerminalOutcome(status string) bool {
	return status == StatusResolved || status == StatusRejected
}
