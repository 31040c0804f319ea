package config

type GradingConfig struct {
	// Concurrency caps in-flight executions per run.
	Concurrency int
	// ZeroCasePolicy is "ungraded" or "fail".
	ZeroCasePolicy string
	// HiddenFallback runs every case when none is flagged hidden.
	HiddenFallback bool
	// ChapterGating rejects learner runs on chapters they have not unlocked.
	ChapterGating bool
}

func NewGradingConfig() *GradingConfig {
	return &GradingConfig{
		Concurrency:    getIntEnv("GRADING_CONCURRENCY", 4),
		ZeroCasePolicy: getEnv("GRADING_ZERO_CASE_POLICY", "ungraded"),
		HiddenFallback: getBoolEnv("GRADING_HIDDEN_FALLBACK", true),
		ChapterGating:  getBoolEnv("GRADING_CHAPTER_GATING", false),
	}
}
