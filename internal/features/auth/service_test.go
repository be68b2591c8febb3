package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"

	"anontalk.ru/admin-backend/internal/common"
)

// fakeClock — управляемые часы для проверки истечения окон и сессий.
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

// testHash генерирует Argon2id-хеш с лёгкими параметрами, чтобы тесты не тормозили.
func testHash(password string) string {
	salt := []byte("0123456789abcdef")
	hash := argon2.IDKey([]byte(password), salt, 2, 16384, 1, 32)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		16384, 2, 1,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

func newTestService(clock common.Clock) (*Service, *MemoryStore) {
	store := NewMemoryStore(clock)
	limiter := NewRateLimiter(store, 5, 15*time.Minute, clock)
	svc := NewService(store, limiter, testHash("admin123"), 24*time.Hour, clock)
	return svc, store
}

func TestLoginVerifyLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeClock())

	session, err := svc.Login(ctx, "admin123", "10.0.0.1", "test-agent")
	require.NoError(t, err)
	require.NotEmpty(t, session.SessionToken)

	valid, err := svc.Verify(ctx, session.SessionToken)
	require.NoError(t, err)
	assert.True(t, valid)

	require.NoError(t, svc.Logout(ctx, session.SessionToken))

	valid, err = svc.Verify(ctx, session.SessionToken)
	require.NoError(t, err)
	assert.False(t, valid, "после logout токен должен быть недействителен")
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeClock())

	_, err := svc.Login(ctx, "не тот пароль", "10.0.0.1", "")
	assert.ErrorIs(t, err, common.ErrWrongPassword)
}

func TestLockoutAfterFiveFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeClock())

	for i := 0; i < 5; i++ {
		_, err := svc.Login(ctx, "не тот пароль", "10.0.0.1", "")
		require.ErrorIs(t, err, common.ErrWrongPassword)
	}

	// Шестая попытка отклоняется ДО сверки пароля, даже с правильным паролем
	_, err := svc.Login(ctx, "admin123", "10.0.0.1", "")
	assert.ErrorIs(t, err, common.ErrTooManyAttempts)

	// Другой адрес не затронут
	session, err := svc.Login(ctx, "admin123", "10.0.0.2", "")
	require.NoError(t, err)
	assert.NotEmpty(t, session.SessionToken)
}

func TestLockoutExpiresWithWindow(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	svc, _ := newTestService(clock)

	for i := 0; i < 5; i++ {
		_, err := svc.Login(ctx, "не тот пароль", "10.0.0.1", "")
		require.ErrorIs(t, err, common.ErrWrongPassword)
	}

	// Окно скользящее: через 16 минут старые неудачи не считаются
	clock.Advance(16 * time.Minute)

	session, err := svc.Login(ctx, "admin123", "10.0.0.1", "")
	require.NoError(t, err)
	assert.NotEmpty(t, session.SessionToken)
}

func TestSuccessResetsFailureWindow(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	svc, store := newTestService(clock)

	for i := 0; i < 4; i++ {
		_, err := svc.Login(ctx, "не тот пароль", "10.0.0.1", "")
		require.ErrorIs(t, err, common.ErrWrongPassword)
	}

	_, err := svc.Login(ctx, "admin123", "10.0.0.1", "")
	require.NoError(t, err)

	// После успеха счётчик начинается заново: эта неудача — попытка №1
	_, err = svc.Login(ctx, "не тот пароль", "10.0.0.1", "")
	require.ErrorIs(t, err, common.ErrWrongPassword)

	count, err := store.CountRecentFailures(ctx, "10.0.0.1", clock.Now().Add(-15*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestVerifyExpiredSession(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	svc, _ := newTestService(clock)

	session, err := svc.Login(ctx, "admin123", "10.0.0.1", "")
	require.NoError(t, err)

	clock.Advance(24*time.Hour + time.Minute)

	valid, err := svc.Verify(ctx, session.SessionToken)
	require.NoError(t, err)
	assert.False(t, valid, "истёкшая сессия должна считаться отсутствующей")
}

func TestLogoutUnknownTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newFakeClock())

	assert.NoError(t, svc.Logout(ctx, "никогда-не-существовал"))
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestConcurrentFailuresAllCounted(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore(clock)
	limiter := NewRateLimiter(store, 5, 15*time.Minute, clock)

	// Параллельные неудачи в один и тот же момент времени не должны слипаться
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = limiter.RecordFailure(ctx, "10.0.0.1")
		}()
	}
	wg.Wait()

	count, err := store.CountRecentFailures(ctx, "10.0.0.1", clock.Now().Add(-15*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 20, count)

	locked, err := limiter.IsLocked(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestVerifyArgon2id(t *testing.T) {
	hash := testHash("secret")

	assert.True(t, verifyArgon2id("secret", hash))
	assert.False(t, verifyArgon2id("не secret", hash))
	assert.False(t, verifyArgon2id("secret", "мусор-вместо-хеша"))
	assert.False(t, verifyArgon2id("secret", ""))
}
