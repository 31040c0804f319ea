// Command seed loads assignment documents into Postgres and drops their
// cached copies.
//
//	seed <env> <file.json>...
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/gradebench.net/internal/adapter/postgres/assignmentrepository"
	"gitlab.com/gradebench.net/internal/adapter/redis/assignmentcache"
	"gitlab.com/gradebench.net/internal/config"
	"gitlab.com/gradebench.net/internal/domain"
	logger2 "gitlab.com/gradebench.net/internal/global/logger"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: seed <env> <file.json>...")
		os.Exit(2)
	}
	if err := godotenv.Load(os.Args[1] + ".env"); err != nil {
		logger2.Warn("Could not load env file", "file", os.Args[1]+".env", "error", err)
	}

	logger := logger2.Logger
	defer func() { _ = logger.Sync() }()
	sysCfg := config.NewSystemConfig()

	db, err := sqlx.Connect("postgres", sysCfg.PostgresConfig.Url)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	repo := assignmentrepository.NewAssignmentRepository(db, logger)
	cache := assignmentcache.NewCachedAssignmentRepository(repo, redisClient, sysCfg.RedisConfig.AssignmentTTL, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	failed := false
	for _, path := range os.Args[2:] {
		assignments, err := readAssignments(path)
		if err != nil {
			logger.Error("Failed to read assignments", "file", path, "error", err)
			failed = true
			continue
		}
		for _, a := range assignments {
			if err := repo.SaveAssignment(ctx, a); err != nil {
				failed = true
				continue
			}
			if err := cache.Invalidate(ctx, a.ID); err != nil {
				logger.Warn("Cache invalidation failed", "assignmentId", a.ID, "error", err)
			}
			logger.Info("Seeded assignment", "assignmentId", a.ID, "type", a.Type)
		}
	}
	if failed {
		os.Exit(1)
	}
}

// readAssignments accepts either a single assignment object or an array.
func readAssignments(path string) ([]*domain.Assignment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var list []*domain.Assignment
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var one domain.Assignment
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, err
	}
	return []*domain.Assignment{&one}, nil
}
