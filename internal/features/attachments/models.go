// Package attachments управляет жизненным циклом вложений чатов.
// Медиа в анонимном чате эфемерно: через 24 часа после отправки
// вложение подлежит удалению. models.go описывает структуру вложения
// и расчёт дедлайна.
package attachments

import "time"

// TTL — срок жизни вложения с момента отправки.
// Одна константа и для отображения «сколько осталось», и для предиката
// очистки: если они разойдутся, дашборд покажет живое время у уже
// удалённой записи.
const TTL = 24 * time.Hour

// Типы содержимого вложений.
const (
	ContentPhoto     = "photo"
	ContentVoice     = "voice"
	ContentVideo     = "video"
	ContentVideoNote = "video_note"
)

// Attachment — медиа-вложение, отправленное в чате.
// Создаёт запись бот чата; панель только читает и удаляет.
// Хранится лишь ссылка на файл, само медиа лежит у Telegram.
type Attachment struct {
	ID           int64     `db:"id"`
	ChatID       int64     `db:"chat_id"`
	MediaURL     string    `db:"media_url"`
	ContentType  string    `db:"content_type"`
	SentAt       time.Time `db:"sent_at"`
	SenderGender string    `db:"sender_gender"`
}

// TimeUntilDeletion возвращает, сколько вложению осталось жить.
// Чистая функция: не решает, удалять ли, — только считает остаток,
// не бывает отрицательной.
func TimeUntilDeletion(a *Attachment, now time.Time) time.Duration {
	left := a.SentAt.Add(TTL).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}
