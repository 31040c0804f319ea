package secondary

import (
	"context"

	"gitlab.com/gradebench.net/internal/domain"
)

// SubmissionRepository stores one SubmissionRecord per (assignment, student).
type SubmissionRepository interface {
	// GetByAssignmentAndStudent returns nil, nil when no record exists
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) (*domain.SubmissionRecord, error)

	// ListByAssignment returns every record for an assignment, newest first.
	ListByAssignment(ctx context.Context, assignmentID string) ([]*domain.SubmissionRecord, error)

	CreateSubmission(ctx context.Context, record *domain.SubmissionRecord) error

	UpdateSubmission(ctx context.Context, record *domain.SubmissionRecord) error
}
