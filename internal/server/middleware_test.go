package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anontalk.ru/admin-backend/internal/common"
	"anontalk.ru/admin-backend/internal/features/auth"
)

func newProtectedRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := common.SystemClock()
	store := auth.NewMemoryStore(clock)
	svc := auth.NewService(store, auth.NewRateLimiter(store, 5, 15*time.Minute, clock),
		"", 24*time.Hour, clock)

	// Сессию кладём напрямую в хранилище: здесь проверяется middleware, не вход
	session := &auth.Session{
		SessionToken: "valid-token",
		CreatedAt:    clock.Now(),
		ExpiresAt:    clock.Now().Add(24 * time.Hour),
		IsActive:     true,
	}
	require.NoError(t, store.CreateSession(context.Background(), session))

	router := gin.New()
	router.GET("/protected", SessionRequired(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, session.SessionToken
}

func TestSessionRequiredWithoutToken(t *testing.T) {
	router, _ := newProtectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionRequiredWithHeaderToken(t *testing.T) {
	router, token := newProtectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Session-Token", token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionRequiredWithQueryToken(t *testing.T) {
	router, token := newProtectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?session_token="+token, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionRequiredUnknownToken(t *testing.T) {
	router, _ := newProtectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Session-Token", "чужой-токен")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/auth", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
