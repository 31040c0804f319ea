package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSystemConfigDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "GRADING_CONCURRENCY", "GRADING_ZERO_CASE_POLICY", "GRADING_HIDDEN_FALLBACK", "GRADING_CHAPTER_GATING", "RUN_LOCK_TTL_SEC", "HTTP_WRITE_TIMEOUT_SEC", "EXECUTOR_TIMEOUT_SEC", "DATABASE_SCHEMA"} {
		t.Setenv(key, "")
	}

	cfg := NewSystemConfig()
	assert.Equal(t, 8082, cfg.HttpPort)
	assert.Equal(t, 4, cfg.GradingConfig.Concurrency)
	assert.Equal(t, "ungraded", cfg.GradingConfig.ZeroCasePolicy)
	assert.True(t, cfg.GradingConfig.HiddenFallback)
	assert.False(t, cfg.GradingConfig.ChapterGating)
	assert.Equal(t, 6*time.Minute, cfg.RedisConfig.RunLockTTL)
	assert.Equal(t, 5*time.Minute, cfg.HttpWriteTimeout)
	assert.Greater(t, cfg.RedisConfig.RunLockTTL, cfg.HttpWriteTimeout)
	assert.Equal(t, 20*time.Second, cfg.ExecutorConfig.Timeout)
	assert.Equal(t, "public", cfg.PostgresConfig.Schema)
}

func TestNewSystemConfigFromEnv(t *testing.T) {
	t.Setenv("DEBUG_MODE", "true")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("GRADING_CONCURRENCY", "8")
	t.Setenv("GRADING_ZERO_CASE_POLICY", "fail")
	t.Setenv("GRADING_HIDDEN_FALLBACK", "false")
	t.Setenv("GRADING_CHAPTER_GATING", "true")
	t.Setenv("ASSIGNMENT_CACHE_TTL_SEC", "10")
	t.Setenv("HTTP_WRITE_TIMEOUT_SEC", "90")
	t.Setenv("EXECUTOR_URL", "http://runner:2358/run")

	cfg := NewSystemConfig()
	assert.True(t, cfg.DebugMode)
	assert.Equal(t, 9000, cfg.HttpPort)
	assert.Equal(t, 8, cfg.GradingConfig.Concurrency)
	assert.Equal(t, "fail", cfg.GradingConfig.ZeroCasePolicy)
	assert.False(t, cfg.GradingConfig.HiddenFallback)
	assert.True(t, cfg.GradingConfig.ChapterGating)
	assert.Equal(t, 10*time.Second, cfg.RedisConfig.AssignmentTTL)
	assert.Equal(t, 90*time.Second, cfg.HttpWriteTimeout)
	assert.Equal(t, "http://runner:2358/run", cfg.ExecutorConfig.Url)
}

func TestGetIntEnvFallsBackOnGarbage(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	assert.Equal(t, 8082, NewSystemConfig().HttpPort)
}
