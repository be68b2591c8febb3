// Package attachments — memory_store.go хранит вложения в памяти. Для тестов.
package attachments

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore — потокобезопасное хранилище в памяти.
type MemoryStore struct {
	mu    sync.Mutex
	items map[int64]*Attachment
}

// NewMemoryStore создаёт пустое хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[int64]*Attachment)}
}

// Put кладёт вложение (наполнение данными в тестах).
func (s *MemoryStore) Put(a *Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *a
	s.items[a.ID] = &cp
}

// Exists сообщает, осталась ли запись с данным id.
func (s *MemoryStore) Exists(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[id]
	return ok
}

func (s *MemoryStore) ListActive(_ context.Context, cutoff time.Time) ([]*Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Attachment
	for _, a := range s.items {
		if a.SentAt.After(cutoff) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	return out, nil
}

func (s *MemoryStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for id, a := range s.items {
		if !a.SentAt.After(cutoff) {
			delete(s.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStore) DeleteAll(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := len(s.items)
	s.items = make(map[int64]*Attachment)
	return deleted, nil
}
