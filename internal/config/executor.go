package config

import "time"

type ExecutorConfig struct {
	Url     string
	ApiKey  string
	Timeout time.Duration
}

func NewExecutorConfig() *ExecutorConfig {
	return &ExecutorConfig{
		Url:     getEnv("EXECUTOR_URL", "http://localhost:2358/api/compile"),
		ApiKey:  getEnv("EXECUTOR_API_KEY", ""),
		Timeout: getSecondsEnv("EXECUTOR_TIMEOUT_SEC", 20),
	}
}
