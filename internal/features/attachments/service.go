// Package attachments — service.go содержит логику удержания и очистки.
// Предикат очистки и расчёт остатка опираются на одну и ту же константу TTL.
package attachments

import (
	"context"

	log "github.com/sirupsen/logrus"

	"anontalk.ru/admin-backend/internal/common"
)

// Service управляет жизненным циклом вложений.
type Service struct {
	store Store
	clock common.Clock
}

// NewService создаёт сервис вложений.
func NewService(store Store, clock common.Clock) *Service {
	return &Service{store: store, clock: clock}
}

// ListActive возвращает непросроченные вложения.
// Просроченные не показываются, даже если очистка до них ещё не дошла.
func (s *Service) ListActive(ctx context.Context) ([]*Attachment, error) {
	return s.store.ListActive(ctx, s.clock.Now().Add(-TTL))
}

// CleanupExpired удаляет все вложения старше TTL и возвращает число удалённых.
// Идемпотентна: повторный вызов сразу после первого ничего не найдёт.
// Каждая запись удаляется независимо, поэтому обрыв посреди очистки
// оставит остаток удаляемым для следующего запуска.
func (s *Service) CleanupExpired(ctx context.Context) (int, error) {
	deleted, err := s.store.DeleteOlderThan(ctx, s.clock.Now().Add(-TTL))
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.WithField("deleted", deleted).Info("Просроченные вложения удалены")
	}
	return deleted, nil
}

// DeleteAll удаляет ВСЕ вложения независимо от возраста.
// Деструктивная операция сверх контракта удержания: вызывается только
// по явному delete_all из обработчика очистки, не по расписанию.
func (s *Service) DeleteAll(ctx context.Context) (int, error) {
	deleted, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	log.WithField("deleted", deleted).Warn("Удалены ВСЕ вложения по запросу администратора")
	return deleted, nil
}
