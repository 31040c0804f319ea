package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/gradebench.net/internal/adapter/crypto"
	"gitlab.com/gradebench.net/internal/adapter/logging"
	"gitlab.com/gradebench.net/internal/config"
	"gitlab.com/gradebench.net/internal/core/services/grading"
	"gitlab.com/gradebench.net/internal/domain"
	"gitlab.com/gradebench.net/internal/handlers"
)

type noopLock struct{}

func (noopLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	return "tok", true, nil
}

func (noopLock) Release(ctx context.Context, key, token string) error { return nil }

type emptyRepo struct{}

func (emptyRepo) GetAssignment(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	return nil, nil
}

func TestServerInit(t *testing.T) {
	logger := logging.NewNopLogger()

	t.Run("missing dependencies", func(t *testing.T) {
		srv := NewServer(0, "grading", ServiceProvider{}, logger)
		assert.Error(t, srv.Init())
	})

	t.Run("routes are mounted", func(t *testing.T) {
		svc, err := grading.NewGradingService(emptyRepo{}, nil, nil, nil, nil, logger, &config.GradingConfig{})
		require.NoError(t, err)
		jwtService := crypto.NewJWTService(&config.JwtConfig{Secret: "s"})

		srv := NewServer(0, "grading", *NewServiceProvider(svc, jwtService, noopLock{}, time.Minute), logger)
		require.NoError(t, srv.Init())

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)

		token, err := jwtService.GenerateTokenHMAC(context.Background(), "HS256", map[string]interface{}{"sub": "s1"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/assignments/zz/hidden-runs", strings.NewReader(`{"source": "x"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		rec = httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(handlers.RequestIDHeader))
	})

	t.Run("request ids are set and echoed", func(t *testing.T) {
		svc, err := grading.NewGradingService(emptyRepo{}, nil, nil, nil, nil, logger, &config.GradingConfig{})
		require.NoError(t, err)
		srv := NewServer(0, "grading", *NewServiceProvider(svc, crypto.NewJWTService(&config.JwtConfig{Secret: "s"}), noopLock{}, time.Minute), logger)
		require.NoError(t, srv.Init())
		assert.Equal(t, defaultWriteTimeout, srv.WriteTimeout)

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		_, err = uuid.Parse(rec.Header().Get(handlers.RequestIDHeader))
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/languages", nil)
		req.Header.Set(handlers.RequestIDHeader, "trace-7")
		rec = httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "trace-7", rec.Header().Get(handlers.RequestIDHeader))
		assert.Contains(t, rec.Body.String(), `"request_id":"trace-7"`)
	})

	t.Run("stop before start", func(t *testing.T) {
		NewServer(0, "grading", ServiceProvider{}, logger).Stop(context.Background())
	})
}
