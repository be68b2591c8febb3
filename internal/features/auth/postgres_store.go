// Package auth — postgres_store.go работает с таблицами admin_sessions и login_attempts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore хранит сессии и попытки входа в PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore создаёт хранилище поверх пула соединений.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateSession(ctx context.Context, session *Session) error {
	query := `
		INSERT INTO admin_sessions (session_token, ip_address, user_agent, created_at, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
	`
	_, err := s.db.Exec(ctx, query,
		session.SessionToken, session.IPAddress, session.UserAgent,
		session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания сессии: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetSession(ctx context.Context, token string) (*Session, error) {
	query := `
		SELECT id, session_token, ip_address, user_agent, created_at, expires_at, is_active
		FROM admin_sessions
		WHERE session_token = $1 AND is_active = TRUE
	`
	var sess Session
	err := s.db.QueryRow(ctx, query, token).Scan(
		&sess.ID, &sess.SessionToken, &sess.IPAddress, &sess.UserAgent,
		&sess.CreatedAt, &sess.ExpiresAt, &sess.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
	}
	return &sess, nil
}

func (s *PostgresStore) DeactivateSession(ctx context.Context, token string) error {
	query := `UPDATE admin_sessions SET is_active = FALSE WHERE session_token = $1`
	if _, err := s.db.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("ошибка отзыва сессии: %w", err)
	}
	return nil
}

func (s *PostgresStore) LogAttempt(ctx context.Context, ipAddress string, success bool) error {
	query := `INSERT INTO login_attempts (ip_address, success) VALUES ($1, $2)`
	if _, err := s.db.Exec(ctx, query, ipAddress, success); err != nil {
		return fmt.Errorf("ошибка записи попытки входа: %w", err)
	}
	return nil
}

func (s *PostgresStore) CountRecentFailures(ctx context.Context, ipAddress string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM login_attempts
		WHERE ip_address = $1 AND success = FALSE AND attempted_at > $2
	`
	var count int
	if err := s.db.QueryRow(ctx, query, ipAddress, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта попыток входа: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) ClearFailures(ctx context.Context, ipAddress string) error {
	query := `DELETE FROM login_attempts WHERE ip_address = $1 AND success = FALSE`
	if _, err := s.db.Exec(ctx, query, ipAddress); err != nil {
		return fmt.Errorf("ошибка сброса попыток входа: %w", err)
	}
	return nil
}
