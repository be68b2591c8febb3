// Package moderation — store.go описывает интерфейс хранилища жалоб.
package moderation

import "context"

// Store хранит жалобы и применяет решения по ним.
type Store interface {
	// GetComplaint возвращает жалобу по id. Если жалобы нет — (nil, nil).
	GetComplaint(ctx context.Context, id int64) (*Complaint, error)

	// TransitionStatus атомарно переводит жалобу pending → to.
	// Возвращает false, если жалоба уже не в pending: из двух
	// конкурентных решений по одной жалобе пройдёт ровно одно.
	TransitionStatus(ctx context.Context, id int64, to string) (bool, error)

	// BlockAndResolve в одной транзакции помечает пользователя
	// заблокированным в реестре и переводит жалобу pending → resolved.
	// Либо применяются оба эффекта, либо ни одного.
	//
	// Ошибки:
	//   - common.ErrInvalidTransition — жалоба уже не в pending
	//   - common.ErrUpstreamFailure — реестр не принял блокировку
	BlockAndResolve(ctx context.Context, complaintID, telegramID int64) error
}
