// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, хранилища, сервисы, обработчики
// и собирает всё в один объект App.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"anontalk.ru/admin-backend/internal/chatbot"
	"anontalk.ru/admin-backend/internal/common"
	"anontalk.ru/admin-backend/internal/config"
	"anontalk.ru/admin-backend/internal/db/postgres"
	"anontalk.ru/admin-backend/internal/features/attachments"
	"anontalk.ru/admin-backend/internal/features/auth"
	"anontalk.ru/admin-backend/internal/features/moderation"
	"anontalk.ru/admin-backend/internal/features/stats"
	"anontalk.ru/admin-backend/internal/jobs"
	"anontalk.ru/admin-backend/internal/server"
)

// App содержит все компоненты приложения.
type App struct {
	Server    *server.Server
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	// Запускаем миграции
	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Бот анонимного чата (уведомления о блокировке) ===
	notifier, err := chatbot.NewNotifier(cfg.TelegramBotToken)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}

	clock := common.SystemClock()

	// === 3. Хранилища ===
	authStore := auth.NewPostgresStore(pool)
	moderationStore := moderation.NewPostgresStore(pool)
	attachmentsStore := attachments.NewPostgresStore(pool)
	statsRepo := stats.NewRepository(pool, clock)

	// === 4. Сервисы ===
	limiter := auth.NewRateLimiter(authStore, cfg.LoginMaxAttempts, cfg.LoginAttemptsWindow, clock)
	authService := auth.NewService(authStore, limiter, cfg.AdminPasswordHash, cfg.SessionTTL, clock)
	moderationService := moderation.NewService(moderationStore, notifier, cfg.BanTimeout)
	attachmentsService := attachments.NewService(attachmentsStore, clock)

	// === 5. Обработчики ===
	authHandler := auth.NewHandler(authService)
	moderationHandler := moderation.NewHandler(moderationService)
	attachmentsHandler := attachments.NewHandler(attachmentsService, clock)
	statsHandler := stats.NewHandler(statsRepo)

	// === 6. HTTP-сервер ===
	srv := server.New(cfg, authService, authHandler, moderationHandler, attachmentsHandler, statsHandler)

	// === 7. Планировщик задач ===
	scheduler := jobs.NewScheduler(cfg.AppTimezone, attachmentsService)

	return &App{
		Server:    srv,
		Scheduler: scheduler,
		DB:        pool,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	// Инициализируем систему миграций
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	// Выполняем миграции по порядку
	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Users},
		{2, migration002Chats},
		{3, migration003Complaints},
		{4, migration004Attachments},
		{5, migration005AdminSessions},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.
// Таблицы users, chats, complaints и attachments общие с ботом чата:
// CREATE TABLE IF NOT EXISTS позволяет обеим сторонам стартовать первой.

var migration001Users = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    telegram_id BIGINT UNIQUE NOT NULL,
    gender VARCHAR(16),
    is_searching BOOLEAN DEFAULT FALSE,
    is_blocked BOOLEAN DEFAULT FALSE,
    last_active TIMESTAMP DEFAULT NOW(),
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_telegram_id ON users(telegram_id);
CREATE INDEX IF NOT EXISTS idx_users_last_active ON users(last_active DESC);
`

var migration002Chats = `
CREATE TABLE IF NOT EXISTS chats (
    id BIGSERIAL PRIMARY KEY,
    user1_telegram_id BIGINT NOT NULL REFERENCES users(telegram_id),
    user2_telegram_id BIGINT NOT NULL REFERENCES users(telegram_id),
    started_at TIMESTAMP DEFAULT NOW(),
    ended_at TIMESTAMP,
    is_active BOOLEAN DEFAULT TRUE,
    message_count INTEGER DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_chats_is_active ON chats(is_active);
CREATE INDEX IF NOT EXISTS idx_chats_started_at ON chats(started_at DESC);
`

var migration003Complaints = `
CREATE TABLE IF NOT EXISTS complaints (
    id BIGSERIAL PRIMARY KEY,
    chat_id BIGINT NOT NULL REFERENCES chats(id),
    reported_user_id BIGINT,
    reason TEXT NOT NULL,
    status VARCHAR(32) DEFAULT 'pending',
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_complaints_status ON complaints(status);
CREATE INDEX IF NOT EXISTS idx_complaints_created_at ON complaints(created_at DESC);
`

var migration004Attachments = `
CREATE TABLE IF NOT EXISTS attachments (
    id BIGSERIAL PRIMARY KEY,
    chat_id BIGINT NOT NULL REFERENCES chats(id),
    media_url TEXT NOT NULL,
    content_type VARCHAR(32) NOT NULL,
    sender_gender VARCHAR(16),
    sent_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_attachments_sent_at ON attachments(sent_at);
`

var migration005AdminSessions = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    session_token VARCHAR(255) UNIQUE NOT NULL,
    ip_address VARCHAR(64),
    user_agent TEXT,
    created_at TIMESTAMP DEFAULT NOW(),
    expires_at TIMESTAMP NOT NULL,
    is_active BOOLEAN DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_token ON admin_sessions(session_token);
CREATE TABLE IF NOT EXISTS login_attempts (
    id BIGSERIAL PRIMARY KEY,
    ip_address VARCHAR(64) NOT NULL,
    attempted_at TIMESTAMP DEFAULT NOW(),
    success BOOLEAN DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_login_attempts_ip ON login_attempts(ip_address, attempted_at DESC);
`
