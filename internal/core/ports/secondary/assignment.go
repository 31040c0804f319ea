package secondary

import (
	"context"

	"gitlab.com/gradebench.net/internal/domain"
)

type AssignmentRepository interface {
	// GetAssignment retrieves an assignment by ID. Returns nil, nil when missing.
	GetAssignment(ctx context.Context, assignmentID string) (*domain.Assignment, error)
}
