// Package attachments — store.go описывает интерфейс хранилища вложений.
package attachments

import (
	"context"
	"time"
)

// Store хранит вложения чатов.
// Удаление убирает запись целиком, а не прячет за флагом: после
// очистки «висячих» ссылок на вложение не остаётся.
type Store interface {
	// ListActive возвращает вложения, отправленные после cutoff
	// (то есть ещё не просроченные), свежие первыми.
	ListActive(ctx context.Context, cutoff time.Time) ([]*Attachment, error)
	// DeleteOlderThan удаляет вложения с sent_at не позже cutoff,
	// возвращает число реально удалённых записей.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	// DeleteAll удаляет все вложения независимо от возраста.
	DeleteAll(ctx context.Context) (int, error)
}
