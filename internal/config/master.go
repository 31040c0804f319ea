package config

import (
	"os"
	"time"
)

type AppConfig struct {
	DebugMode bool
	HttpPort  int
	// HttpWriteTimeout caps one request, including a full submit run.
	HttpWriteTimeout time.Duration
	RedisConfig      *RedisConfig
	PostgresConfig   *PostgresConfig
	JwtConfig        *JwtConfig
	ExecutorConfig   *ExecutorConfig
	GradingConfig    *GradingConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:        os.Getenv("DEBUG_MODE") == "true",
		HttpPort:         getIntEnv("HTTP_PORT", 8082),
		HttpWriteTimeout: getSecondsEnv("HTTP_WRITE_TIMEOUT_SEC", 300),
		RedisConfig:      NewRedisConfig(),
		PostgresConfig:   NewPostgresConfig(),
		JwtConfig:        NewJwtConfig(),
		ExecutorConfig:   NewExecutorConfig(),
		GradingConfig:    NewGradingConfig(),
	}
}
