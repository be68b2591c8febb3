// Package auth — service.go содержит логику входа, проверки и отзыва сессий.
// Пароль сверяется с Argon2id-хешем из конфигурации, токен — криптографически
// случайный. До сверки пароля проверяется лимит попыток: заблокированный адрес
// не тратит время на сравнение и не даёт атакующему сигнал по таймингу.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"

	"anontalk.ru/admin-backend/internal/common"
)

// Service управляет аутентификацией администратора.
type Service struct {
	store        Store
	limiter      *RateLimiter
	passwordHash string
	sessionTTL   time.Duration
	clock        common.Clock
}

// NewService создаёт сервис аутентификации.
// passwordHash — Argon2id-хеш пароля администратора из конфигурации,
// загружается один раз при старте процесса и больше не меняется.
func NewService(store Store, limiter *RateLimiter, passwordHash string, sessionTTL time.Duration, clock common.Clock) *Service {
	return &Service{
		store:        store,
		limiter:      limiter,
		passwordHash: passwordHash,
		sessionTTL:   sessionTTL,
		clock:        clock,
	}
}

// Login проверяет пароль и выдаёт новую сессию.
//
// Ошибки:
//   - common.ErrTooManyAttempts — адрес набрал лимит неудач в окне
//   - common.ErrWrongPassword — пароль не подошёл (попытка записана)
func (s *Service) Login(ctx context.Context, password, ipAddress, userAgent string) (*Session, error) {
	locked, err := s.limiter.IsLocked(ctx, ipAddress)
	if err != nil {
		return nil, err
	}
	if locked {
		log.WithField("ip", ipAddress).Warn("Вход заблокирован: превышен лимит попыток")
		return nil, common.ErrTooManyAttempts
	}

	if !verifyArgon2id(password, s.passwordHash) {
		if err := s.limiter.RecordFailure(ctx, ipAddress); err != nil {
			return nil, err
		}
		log.WithField("ip", ipAddress).Warn("Неудачная попытка входа")
		return nil, common.ErrWrongPassword
	}

	if err := s.limiter.RecordSuccess(ctx, ipAddress); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &Session{
		SessionToken: generateSecureToken(),
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.sessionTTL),
		IsActive:     true,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	log.WithField("ip", ipAddress).Info("Администратор вошёл в панель")
	return session, nil
}

// Verify возвращает true, если токен принадлежит живой сессии.
// Истёкшая сессия считается отсутствующей и попутно отзывается,
// чтобы не накапливать мёртвые записи.
func (s *Service) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	session, err := s.store.GetSession(ctx, token)
	if err != nil {
		return false, err
	}
	if session == nil {
		return false, nil
	}

	if !s.clock.Now().Before(session.ExpiresAt) {
		// Ленивое вычищение: verify никогда не вернёт true для истёкшей записи
		if err := s.store.DeactivateSession(ctx, token); err != nil {
			log.WithError(err).Warn("Не удалось отозвать истёкшую сессию")
		}
		return false, nil
	}

	return true, nil
}

// Logout отзывает сессию. Идемпотентен: незнакомый токен — не ошибка.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.DeactivateSession(ctx, token)
}

// --- Криптографические утилиты ---

// verifyArgon2id проверяет пароль по хешу Argon2id.
// Формат хеша: $argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func verifyArgon2id(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		log.Error("Некорректный формат хеша Argon2id")
		return false
	}

	var memory uint32
	var iterations uint32
	var parallelism uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		log.WithError(err).Error("Ошибка парсинга параметров Argon2id")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования соли")
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования хеша")
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	// Сравниваем в постоянном времени (защита от timing attack)
	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1
}

// generateSecureToken генерирует криптографически безопасный токен сессии.
func generateSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return base64.URLEncoding.EncodeToString(b)
}
