package attachments

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock — управляемые часы для симуляции истечения TTL.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func photoAt(id int64, sentAt time.Time) *Attachment {
	return &Attachment{
		ID:           id,
		ChatID:       100 + id,
		MediaURL:     "https://files.example/photo.jpg",
		ContentType:  ContentPhoto,
		SentAt:       sentAt,
		SenderGender: "male",
	}
}

func TestTimeUntilDeletion(t *testing.T) {
	sentAt := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	a := photoAt(1, sentAt)

	assert.Equal(t, TTL, TimeUntilDeletion(a, sentAt))
	assert.Equal(t, time.Hour, TimeUntilDeletion(a, sentAt.Add(23*time.Hour)))
	assert.Equal(t, time.Duration(0), TimeUntilDeletion(a, sentAt.Add(TTL)))
	// Остаток не уходит в минус после дедлайна
	assert.Equal(t, time.Duration(0), TimeUntilDeletion(a, sentAt.Add(48*time.Hour)))
}

func TestTimeUntilDeletionMonotone(t *testing.T) {
	sentAt := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	a := photoAt(1, sentAt)

	prev := TimeUntilDeletion(a, sentAt)
	for now := sentAt; now.Before(sentAt.Add(30 * time.Hour)); now = now.Add(37 * time.Minute) {
		cur := TimeUntilDeletion(a, now)
		assert.LessOrEqual(t, cur, prev, "остаток не должен расти со временем")
		prev = cur
	}
}

func TestCleanupExpiredBoundary(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore()
	svc := NewService(store, clock)

	store.Put(photoAt(1, clock.Now()))

	// За минуту до дедлайна вложение ещё живо
	clock.Advance(23*time.Hour + 59*time.Minute)
	deleted, err := svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	assert.True(t, store.Exists(1))

	// Через минуту после дедлайна — удаляется
	clock.Advance(2 * time.Minute)
	deleted, err = svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.False(t, store.Exists(1), "запись удаляется целиком, а не прячется")

	// Повторная очистка идемпотентна
	deleted, err = svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}

func TestCleanupMatchesTimeUntilDeletion(t *testing.T) {
	// Очистка удаляет ровно тогда, когда остаток дошёл до нуля:
	// предикат и расчёт остатка не должны расходиться.
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore()
	svc := NewService(store, clock)

	a := photoAt(1, clock.Now())
	store.Put(a)

	clock.Advance(TTL)
	require.Equal(t, time.Duration(0), TimeUntilDeletion(a, clock.Now()))

	deleted, err := svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
}

func TestListActiveHidesExpired(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore()
	svc := NewService(store, clock)

	store.Put(photoAt(1, clock.Now().Add(-25*time.Hour))) // просрочено, очистка ещё не бежала
	store.Put(photoAt(2, clock.Now().Add(-1*time.Hour)))

	items, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)
}

func TestDeleteAllIgnoresAge(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore()
	svc := NewService(store, clock)

	store.Put(photoAt(1, clock.Now().Add(-25*time.Hour)))
	store.Put(photoAt(2, clock.Now()))

	deleted, err := svc.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	items, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
