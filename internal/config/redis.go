package config

import "time"

type RedisConfig struct {
	DB       int
	Url      string
	Password string
	// AssignmentTTL is how long a fetched assignment stays cached.
	AssignmentTTL time.Duration
	// RunLockTTL bounds how long a crashed run can block the next one. It
	// should outlast the HTTP write timeout.
	RunLockTTL time.Duration
}

func NewRedisConfig() *RedisConfig {
	return &RedisConfig{
		DB:            getIntEnv("REDIS_DB", 0),
		Url:           getEnv("REDIS_ADDR", "localhost:6379"),
		Password:      getEnv("REDIS_PASSWORD", ""),
		AssignmentTTL: getSecondsEnv("ASSIGNMENT_CACHE_TTL_SEC", 300),
		RunLockTTL:    getSecondsEnv("RUN_LOCK_TTL_SEC", 360),
	}
}
