package moderation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anontalk.ru/admin-backend/internal/common"
)

// recordingNotifier запоминает, кого уведомили о блокировке.
type recordingNotifier struct {
	mu       sync.Mutex
	notified []int64
}

func (n *recordingNotifier) NotifyBanned(_ context.Context, telegramID int64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified = append(n.notified, telegramID)
	return nil
}

func pendingComplaint(id int64, reported *int64) *Complaint {
	return &Complaint{
		ID:             id,
		ChatID:         100 + id,
		ReportedUserID: reported,
		Reason:         "оскорбления",
		Status:         StatusPending,
		CreatedAt:      time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC),
	}
}

func int64p(v int64) *int64 { return &v }

func TestResolveComplaint(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.PutComplaint(pendingComplaint(1, nil))
	svc := NewService(store, nil, time.Second)

	require.NoError(t, svc.ResolveComplaint(ctx, 1, StatusRejected))

	c, err := store.GetComplaint(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, c.Status)
}

func TestResolveComplaintTwice(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.PutComplaint(pendingComplaint(1, nil))
	svc := NewService(store, nil, time.Second)

	require.NoError(t, svc.ResolveComplaint(ctx, 1, StatusResolved))

	// Повторное решение отклоняется, статус остаётся от первого
	err := svc.ResolveComplaint(ctx, 1, StatusRejected)
	assert.ErrorIs(t, err, common.ErrInvalidTransition)

	c, _ := store.GetComplaint(ctx, 1)
	assert.Equal(t, StatusResolved, c.Status)
}

func TestResolveComplaintNotFound(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil, time.Second)

	err := svc.ResolveComplaint(context.Background(), 777, StatusResolved)
	assert.ErrorIs(t, err, common.ErrComplaintNotFound)
}

func TestResolveComplaintBadOutcome(t *testing.T) {
	store := NewMemoryStore()
	store.PutComplaint(pendingComplaint(1, nil))
	svc := NewService(store, nil, time.Second)

	err := svc.ResolveComplaint(context.Background(), 1, "pending")
	require.Error(t, err)

	c, _ := store.GetComplaint(context.Background(), 1)
	assert.Equal(t, StatusPending, c.Status, "недопустимый исход не должен менять статус")
}

func TestConcurrentResolutionOnlyOneWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.PutComplaint(pendingComplaint(1, nil))
	svc := NewService(store, nil, time.Second)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, outcome := range []string{StatusResolved, StatusRejected} {
		wg.Add(1)
		go func(o string) {
			defer wg.Done()
			results <- svc.ResolveComplaint(ctx, 1, o)
		}(outcome)
	}
	wg.Wait()
	close(results)

	var ok, conflicts int
	for err := range results {
		if err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, common.ErrInvalidTransition)
			conflicts++
		}
	}
	assert.Equal(t, 1, ok, "из двух конкурентных решений проходит ровно одно")
	assert.Equal(t, 1, conflicts)
}

func TestBlockUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.AddUser(42)
	store.PutComplaint(pendingComplaint(7, int64p(42)))
	notifier := &recordingNotifier{}
	svc := NewService(store, notifier, time.Second)

	require.NoError(t, svc.BlockUser(ctx, 7))

	assert.True(t, store.Blocked(42), "блокировка должна попасть в реестр")
	c, _ := store.GetComplaint(ctx, 7)
	assert.Equal(t, StatusResolved, c.Status, "блокировка закрывает жалобу")
	assert.Equal(t, []int64{42}, notifier.notified)
}

func TestBlockUserWithoutTarget(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.PutComplaint(pendingComplaint(3, nil))
	svc := NewService(store, nil, time.Second)

	err := svc.BlockUser(ctx, 3)
	assert.ErrorIs(t, err, common.ErrNoReportedUser)

	c, _ := store.GetComplaint(ctx, 3)
	assert.Equal(t, StatusPending, c.Status, "статус жалобы не должен измениться")
}

func TestBlockUserRegistryFailureKeepsComplaintPending(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.AddUser(42)
	store.PutComplaint(pendingComplaint(7, int64p(42)))
	store.BanErr = common.ErrUpstreamFailure
	svc := NewService(store, nil, time.Second)

	err := svc.BlockUser(ctx, 7)
	require.ErrorIs(t, err, common.ErrUpstreamFailure)

	c, _ := store.GetComplaint(ctx, 7)
	assert.Equal(t, StatusPending, c.Status, "при отказе реестра жалоба остаётся pending")
	assert.False(t, store.Blocked(42))

	// Повтор после восстановления реестра проходит
	store.BanErr = nil
	require.NoError(t, svc.BlockUser(ctx, 7))
	assert.True(t, store.Blocked(42))
}

func TestBlockUserNotFound(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil, time.Second)

	err := svc.BlockUser(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrComplaintNotFound)
}

func TestBlockUserAlreadyResolved(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.AddUser(42)
	c := pendingComplaint(7, int64p(42))
	c.Status = StatusRejected
	store.PutComplaint(c)
	svc := NewService(store, nil, time.Second)

	err := svc.BlockUser(ctx, 7)
	assert.ErrorIs(t, err, common.ErrInvalidTransition)
	assert.False(t, store.Blocked(42), "по закрытой жалобе блокировать нельзя")
}
