package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/gradebench.net/internal/adapter/crypto"
	"gitlab.com/gradebench.net/internal/adapter/executor"
	"gitlab.com/gradebench.net/internal/adapter/postgres/assignmentrepository"
	"gitlab.com/gradebench.net/internal/adapter/postgres/chapteraccess"
	"gitlab.com/gradebench.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/gradebench.net/internal/adapter/redis/assignmentcache"
	"gitlab.com/gradebench.net/internal/adapter/redis/runlock"
	"gitlab.com/gradebench.net/internal/config"
	"gitlab.com/gradebench.net/internal/core/ports/secondary"
	"gitlab.com/gradebench.net/internal/core/services/grading"
	logger2 "gitlab.com/gradebench.net/internal/global/logger"
	http2 "gitlab.com/gradebench.net/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sysCfg := config.NewSystemConfig()
	if sysCfg.DebugMode {
		logger2.UseDevelopment()
	}
	logger := logger2.Logger
	defer func() { _ = logger.Sync() }()
	logger.Info("Starting grading service")

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		logger.Error("Failed to set up database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	// SECONDARY PORTS
	assignmentRepo := assignmentrepository.NewAssignmentRepository(db, logger)
	assignmentPort := assignmentcache.NewCachedAssignmentRepository(assignmentRepo, redisClient, sysCfg.RedisConfig.AssignmentTTL, logger)
	submissionPort := submissionrepository.NewSubmissionRepository(db, sysCfg.PostgresConfig.Schema, logger)
	executorPort := executor.NewHTTPExecutor(sysCfg.ExecutorConfig, logger)
	runLock := runlock.NewRedisRunLock(redisClient)
	var chapterPort secondary.ChapterAccess
	if sysCfg.GradingConfig.ChapterGating {
		chapterPort = chapteraccess.NewChapterAccessRepository(db, sysCfg.PostgresConfig.Schema, logger)
	}

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	//services
	gradingSvc, err := grading.NewGradingService(assignmentPort, submissionPort, chapterPort, executorPort, secondary.SystemClock{}, logger, sysCfg.GradingConfig)
	if err != nil {
		logger.Error("Invalid grading configuration", "error", err)
		os.Exit(1)
	}
	serviceProvider := http2.NewServiceProvider(gradingSvc, jwtProvider, runLock, sysCfg.RedisConfig.RunLockTTL)

	//server
	httpServer := http2.NewServer(sysCfg.HttpPort, "grading", *serviceProvider, logger)
	httpServer.WriteTimeout = sysCfg.HttpWriteTimeout
	if err := httpServer.Init(); err != nil {
		logger.Error("Failed to init http server", "error", err)
		os.Exit(1)
	}
	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 30*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// InitReader loads <env>.env named by the first argument. A missing file is
// not fatal; the process environment is used as is.
func InitReader() {
	if len(os.Args) < 2 {
		logger2.Warn("Env not supplied in argument, using process environment")
		return
	}
	environment := os.Args[1]

	if err := godotenv.Load(environment + ".env"); err != nil {
		logger2.Warn("Could not load env file", "file", environment+".env", "error", err)
	}
}
