// Package moderation — postgres_store.go работает с таблицами complaints и users.
package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"anontalk.ru/admin-backend/internal/common"
)

// PostgresStore хранит жалобы в PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore создаёт хранилище поверх пула соединений.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetComplaint(ctx context.Context, id int64) (*Complaint, error) {
	query := `
		SELECT id, chat_id, reported_user_id, reason, status, created_at
		FROM complaints
		WHERE id = $1
	`
	var c Complaint
	err := s.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.ChatID, &c.ReportedUserID, &c.Reason, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения жалобы (id=%d): %w", id, err)
	}
	return &c, nil
}

// TransitionStatus — compare-and-set одним UPDATE: условие status='pending'
// входит в сам запрос, поэтому из двух конкурентных решений пройдёт одно.
func (s *PostgresStore) TransitionStatus(ctx context.Context, id int64, to string) (bool, error) {
	query := `UPDATE complaints SET status = $2 WHERE id = $1 AND status = 'pending'`
	tag, err := s.db.Exec(ctx, query, id, to)
	if err != nil {
		return false, fmt.Errorf("ошибка смены статуса жалобы (id=%d): %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// BlockAndResolve помечает пользователя заблокированным и закрывает жалобу
// в одной транзакции. Откат любой из частей откатывает обе.
func (s *PostgresStore) BlockAndResolve(ctx context.Context, complaintID, telegramID int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE users SET is_blocked = TRUE WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrUpstreamFailure, err)
	}
	if tag.RowsAffected() == 0 {
		// Пользователя нет в реестре — блокировать некого
		return common.ErrUpstreamFailure
	}

	tag, err = tx.Exec(ctx,
		`UPDATE complaints SET status = 'resolved' WHERE id = $1 AND status = 'pending'`, complaintID)
	if err != nil {
		return fmt.Errorf("ошибка закрытия жалобы (id=%d): %w", complaintID, err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrInvalidTransition
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %w", common.ErrUpstreamFailure, err)
	}
	return nil
}
