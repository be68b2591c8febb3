// Package moderation — memory_store.go хранит жалобы и реестр пользователей
// в памяти. Используется в тестах.
package moderation

import (
	"context"
	"sync"

	"anontalk.ru/admin-backend/internal/common"
)

// MemoryStore — потокобезопасное хранилище в памяти.
type MemoryStore struct {
	mu         sync.Mutex
	complaints map[int64]*Complaint
	registry   map[int64]bool // telegram_id → заблокирован

	// BanErr, если задан, возвращается из BlockAndResolve вместо
	// применения эффектов — имитация отказа реестра.
	BanErr error
}

// NewMemoryStore создаёт пустое хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		complaints: make(map[int64]*Complaint),
		registry:   make(map[int64]bool),
	}
}

// PutComplaint кладёт жалобу (наполнение данными в тестах).
func (s *MemoryStore) PutComplaint(c *Complaint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	s.complaints[c.ID] = &cp
}

// AddUser регистрирует пользователя чата (незаблокированного).
func (s *MemoryStore) AddUser(telegramID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry[telegramID] = false
}

// Blocked сообщает, заблокирован ли пользователь в реестре.
func (s *MemoryStore) Blocked(telegramID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry[telegramID]
}

func (s *MemoryStore) GetComplaint(_ context.Context, id int64) (*Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.complaints[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) TransitionStatus(_ context.Context, id int64, to string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.complaints[id]
	if !ok || c.Status != StatusPending {
		return false, nil
	}
	c.Status = to
	return true, nil
}

func (s *MemoryStore) BlockAndResolve(_ context.Context, complaintID, telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.BanErr != nil {
		return s.BanErr
	}

	c, ok := s.complaints[complaintID]
	if !ok || c.Status != StatusPending {
		return common.ErrInvalidTransition
	}
	if _, ok := s.registry[telegramID]; !ok {
		return common.ErrUpstreamFailure
	}

	// Оба эффекта под одним замком: читатель не увидит половину
	s.registry[telegramID] = true
	c.Status = StatusResolved
	return nil
}
