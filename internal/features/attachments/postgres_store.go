// Package attachments — postgres_store.go работает с таблицей attachments.
package attachments

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore хранит вложения в PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore создаёт хранилище поверх пула соединений.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListActive(ctx context.Context, cutoff time.Time) ([]*Attachment, error) {
	query := `
		SELECT id, chat_id, media_url, content_type, sent_at, sender_gender
		FROM attachments
		WHERE sent_at > $1
		ORDER BY sent_at DESC
		LIMIT 200
	`
	rows, err := s.db.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса вложений: %w", err)
	}
	defer rows.Close()

	var out []*Attachment
	for rows.Next() {
		var a Attachment
		if err := rows.Scan(&a.ID, &a.ChatID, &a.MediaURL, &a.ContentType, &a.SentAt, &a.SenderGender); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM attachments WHERE sent_at <= $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления просроченных вложений: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context) (int, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM attachments`)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления вложений: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
