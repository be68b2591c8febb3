// Package auth — memory_store.go хранит сессии и попытки входа в памяти.
// Используется в тестах и при локальной разработке без БД.
package auth

import (
	"context"
	"sync"
	"time"

	"anontalk.ru/admin-backend/internal/common"
)

// MemoryStore — потокобезопасное хранилище в памяти.
// Скользящее окно попыток — срез таймстампов на адрес,
// устаревшие записи отсекаются лениво при чтении.
type MemoryStore struct {
	mu       sync.Mutex
	clock    common.Clock
	sessions map[string]*Session
	failures map[string][]time.Time
}

// NewMemoryStore создаёт пустое хранилище.
func NewMemoryStore(clock common.Clock) *MemoryStore {
	return &MemoryStore{
		clock:    clock,
		sessions: make(map[string]*Session),
		failures: make(map[string][]time.Time),
	}
}

func (s *MemoryStore) CreateSession(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *session
	cp.IsActive = true
	s.sessions[session.SessionToken] = &cp
	return nil
}

func (s *MemoryStore) GetSession(_ context.Context, token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok || !sess.IsActive {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (s *MemoryStore) DeactivateSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[token]; ok {
		sess.IsActive = false
	}
	return nil
}

func (s *MemoryStore) LogAttempt(_ context.Context, ipAddress string, success bool) error {
	if success {
		// Успехи в окно неудач не входят
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[ipAddress] = append(s.failures[ipAddress], s.clock.Now())
	return nil
}

func (s *MemoryStore) CountRecentFailures(_ context.Context, ipAddress string, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var recent []time.Time
	for _, t := range s.failures[ipAddress] {
		if t.After(since) {
			recent = append(recent, t)
		}
	}
	s.failures[ipAddress] = recent
	return len(recent), nil
}

func (s *MemoryStore) ClearFailures(_ context.Context, ipAddress string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.failures, ipAddress)
	return nil
}
