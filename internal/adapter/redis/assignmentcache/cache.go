// Package assignmentcache keeps recently fetched assignments in Redis.
package assignmentcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/gradebench.net/internal/core/ports/primary"
	"gitlab.com/gradebench.net/internal/core/ports/secondary"
	"gitlab.com/gradebench.net/internal/domain"
)

const assignmentKeyPrefix = "assignment:"

var _ secondary.AssignmentRepository = (*CachedAssignmentRepository)(nil)

// CachedAssignmentRepository reads through Redis to the wrapped repository.
// Cache failures are logged and fall through; they never fail a lookup.
type CachedAssignmentRepository struct {
	next        secondary.AssignmentRepository
	redisClient *redis.Client
	ttl         time.Duration
	logger      primary.Logger
}

func NewCachedAssignmentRepository(
	next secondary.AssignmentRepository,
	redisClient *redis.Client,
	ttl time.Duration,
	logger primary.Logger,
) *CachedAssignmentRepository {
	return &CachedAssignmentRepository{
		next:        next,
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

func Key(assignmentID string) string {
	return fmt.Sprintf("%s%s", assignmentKeyPrefix, assignmentID)
}

// GetAssignment retrieves an assignment, caching it on a miss
func (r *CachedAssignmentRepository) GetAssignment(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	key := Key(assignmentID)

	cached, err := r.redisClient.Get(ctx, key).Result()
	switch {
	case err == nil:
		var assignment domain.Assignment
		if err := json.Unmarshal([]byte(cached), &assignment); err == nil {
			return &assignment, nil
		}
		r.logger.Warn("Dropping undecodable cached assignment", "assignmentId", assignmentID)
	case err != redis.Nil:
		r.logger.Warn("Assignment cache read failed", "assignmentId", assignmentID, "error", err)
	}

	assignment, err := r.next.GetAssignment(ctx, assignmentID)
	if err != nil || assignment == nil {
		return assignment, err
	}

	payload, err := json.Marshal(assignment)
	if err != nil {
		r.logger.Warn("Failed to marshal assignment for cache", "assignmentId", assignmentID, "error", err)
		return assignment, nil
	}
	if err := r.redisClient.Set(ctx, key, string(payload), r.ttl).Err(); err != nil {
		r.logger.Warn("Assignment cache write failed", "assignmentId", assignmentID, "error", err)
	}
	return assignment, nil
}

// Invalidate drops the cached copy of an assignment.
func (r *CachedAssignmentRepository) Invalidate(ctx context.Context, assignmentID string) error {
	if err := r.redisClient.Del(ctx, Key(assignmentID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate assignment cache: %w", err)
	}
	return nil
}
