// Package stats — repository.go выполняет агрегирующие запросы к БД.
// Проекции только читают: ни одна строка здесь не изменяется.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"anontalk.ru/admin-backend/internal/common"
)

// Repository читает данные дашборда из PostgreSQL.
type Repository struct {
	db    *pgxpool.Pool
	clock common.Clock
}

// NewRepository создаёт репозиторий.
func NewRepository(db *pgxpool.Pool, clock common.Clock) *Repository {
	return &Repository{db: db, clock: clock}
}

// GetStats собирает сводку за последние сутки.
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	now := r.clock.Now()
	hourAgo := now.Add(-time.Hour)
	dayAgo := now.Add(-24 * time.Hour)

	var s Stats

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE last_active > $1`, hourAgo,
	).Scan(&s.ActiveUsers)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта активных пользователей: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM chats WHERE is_active = TRUE`,
	).Scan(&s.ActiveChats)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта активных чатов: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE is_searching = TRUE`,
	).Scan(&s.SearchingUsers)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта ищущих пользователей: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM complaints WHERE status = 'pending'`,
	).Scan(&s.PendingComplaints)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта жалоб: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE gender = 'male'),
			COUNT(*) FILTER (WHERE gender = 'female')
		FROM users
		WHERE last_active > $1
	`, dayAgo).Scan(&s.GenderDistribution.Male, &s.GenderDistribution.Female)
	if err != nil {
		return nil, fmt.Errorf("ошибка распределения по полу: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT EXTRACT(HOUR FROM started_at)::int AS hour, COUNT(*)::int
		FROM chats
		WHERE started_at > $1
		GROUP BY hour
		ORDER BY hour
	`, dayAgo)
	if err != nil {
		return nil, fmt.Errorf("ошибка почасовой статистики: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var h HourlyStat
		if err := rows.Scan(&h.Hour, &h.Count); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		s.HourlyStats = append(s.HourlyStats, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (COALESCE(ended_at, NOW()) - started_at)) / 60), 0)
		FROM chats
		WHERE started_at > $1
	`, dayAgo).Scan(&s.AvgChatDurationMin)
	if err != nil {
		return nil, fmt.Errorf("ошибка средней длительности чатов: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(message_count), 0)
		FROM chats
		WHERE started_at > $1
	`, dayAgo).Scan(&s.TotalMessagesToday)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта сообщений: %w", err)
	}

	return &s, nil
}

// GetActiveChats возвращает до 50 активных чатов, свежие первыми.
func (r *Repository) GetActiveChats(ctx context.Context) ([]ChatView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.started_at, c.message_count,
		       COALESCE(u1.gender, ''), COALESCE(u2.gender, '')
		FROM chats c
		JOIN users u1 ON c.user1_telegram_id = u1.telegram_id
		JOIN users u2 ON c.user2_telegram_id = u2.telegram_id
		WHERE c.is_active = TRUE
		ORDER BY c.started_at DESC
		LIMIT 50
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса активных чатов: %w", err)
	}
	defer rows.Close()

	now := r.clock.Now()
	out := make([]ChatView, 0, 50)
	for rows.Next() {
		var (
			id        int64
			startedAt time.Time
			messages  int
			g1, g2    string
		)
		if err := rows.Scan(&id, &startedAt, &messages, &g1, &g2); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, chatView(id, startedAt, now, g1, g2, messages))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// GetComplaints возвращает до 50 последних жалоб.
func (r *Repository) GetComplaints(ctx context.Context) ([]ComplaintView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, chat_id, reported_user_id, reason, status, created_at
		FROM complaints
		ORDER BY created_at DESC
		LIMIT 50
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса жалоб: %w", err)
	}
	defer rows.Close()

	out := make([]ComplaintView, 0, 50)
	for rows.Next() {
		var (
			id, chatID int64
			reported   *int64
			reason     string
			status     string
			createdAt  time.Time
		)
		if err := rows.Scan(&id, &chatID, &reported, &reason, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		out = append(out, ComplaintView{
			ID:             FormatComplaintID(id),
			ChatID:         FormatChatID(chatID),
			ReportedUserID: reported,
			Reason:         reason,
			Status:         status,
			Time:           createdAt.Format("15:04"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}
