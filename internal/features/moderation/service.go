// Package moderation — service.go содержит бизнес-логику разбора жалоб.
// Правило продукта: блокировка нарушителя всегда закрывает породившую её
// жалобу (одна атомарная операция), но обычное решение по жалобе никогда
// не блокирует пользователя. Эта асимметрия намеренная.
package moderation

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"anontalk.ru/admin-backend/internal/common"
)

// Notifier сообщает пользователю чата о блокировке.
type Notifier interface {
	NotifyBanned(ctx context.Context, telegramID int64) error
}

// Service применяет решения администратора к жалобам.
type Service struct {
	store      Store
	notifier   Notifier
	banTimeout time.Duration
}

// NewService создаёт сервис модерации.
// notifier может быть nil — тогда уведомления о блокировке не отправляются.
func NewService(store Store, notifier Notifier, banTimeout time.Duration) *Service {
	return &Service{
		store:      store,
		notifier:   notifier,
		banTimeout: banTimeout,
	}
}

// ResolveComplaint выносит решение по жалобе: resolved или rejected.
// Переход разрешён только из pending; повторное решение по той же
// жалобе вернёт common.ErrInvalidTransition.
func (s *Service) ResolveComplaint(ctx context.Context, id int64, outcome string) error {
	if !TerminalOutcome(outcome) {
		return fmt.Errorf("недопустимый статус жалобы: %q", outcome)
	}

	applied, err := s.store.TransitionStatus(ctx, id, outcome)
	if err != nil {
		return err
	}
	if !applied {
		complaint, err := s.store.GetComplaint(ctx, id)
		if err != nil {
			return err
		}
		if complaint == nil {
			return common.ErrComplaintNotFound
		}
		return common.ErrInvalidTransition
	}

	log.WithFields(log.Fields{
		"complaint_id": id,
		"status":       outcome,
	}).Info("Жалоба рассмотрена")
	return nil
}

// BlockUser блокирует нарушителя из жалобы и закрывает её как resolved.
// Оба эффекта применяются в одной транзакции: если реестр не принял
// блокировку (или не ответил за banTimeout), статус жалобы не меняется
// и операцию можно безопасно повторить.
func (s *Service) BlockUser(ctx context.Context, complaintID int64) error {
	complaint, err := s.store.GetComplaint(ctx, complaintID)
	if err != nil {
		return err
	}
	if complaint == nil {
		return common.ErrComplaintNotFound
	}
	if complaint.Status != StatusPending {
		return common.ErrInvalidTransition
	}
	if complaint.ReportedUserID == nil {
		return common.ErrNoReportedUser
	}
	telegramID := *complaint.ReportedUserID

	banCtx, cancel := context.WithTimeout(ctx, s.banTimeout)
	defer cancel()

	if err := s.store.BlockAndResolve(banCtx, complaintID, telegramID); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"complaint_id": complaintID,
		"telegram_id":  telegramID,
	}).Info("Пользователь заблокирован, жалоба закрыта")

	// Уведомление — после фиксации: его отказ блокировку не отменяет
	if s.notifier != nil {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.banTimeout)
		defer cancel()
		if err := s.notifier.NotifyBanned(notifyCtx, telegramID); err != nil {
			log.WithError(err).WithField("telegram_id", telegramID).
				Warn("Не удалось уведомить пользователя о блокировке")
		}
	}

	return nil
}
