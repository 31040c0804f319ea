package grading

import (
	"context"

	"gitlab.com/gradebench.net/internal/domain"
)

// SubmitRequest carries a learner's final submit.
type SubmitRequest struct {
	AssignmentID string
	StudentID    string
	StudentName  string
	// Role decides whether chapter gating applies.
	Role    domain.Role
	Payload domain.SubmissionPayload
}

// SubmitResult is the stored record plus a summary for the learner.
type SubmitResult struct {
	Record  *domain.SubmissionRecord `json:"record"`
	Created bool                     `json:"created"`
	Message string                   `json:"message"`
}

// SubmissionListing is one row of an assignment's submission list.
type SubmissionListing struct {
	*domain.SubmissionRecord
	// Score is the stored auto score, or one derived from the test summary
	// for records graded before scores were kept. Nil shows as "N/A".
	Score      *int   `json:"score"`
	ScoreLabel string `json:"scoreLabel"`
}

// IGradingService is the surface the HTTP layer calls.
type IGradingService interface {
	// RunSampleTests runs every case of one question. Nothing is stored.
	RunSampleTests(ctx context.Context, learner domain.AuthPayload, assignmentID string, questionIndex int, solution domain.Solution) (*domain.RunReport, error)

	// RunHiddenTests runs the hidden cases of every coding question as a
	// pre-submit check. Nothing is stored.
	RunHiddenTests(ctx context.Context, learner domain.AuthPayload, assignmentID string, solution domain.Solution) (*domain.HiddenRunReport, error)

	// Submit grades the final attempt and creates or updates its record.
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)

	// GetSubmission returns the stored record, or nil when none exists.
	GetSubmission(ctx context.Context, assignmentID, studentID string) (*domain.SubmissionRecord, error)

	// ListSubmissions returns every record for an assignment, newest first.
	ListSubmissions(ctx context.Context, assignmentID string) ([]SubmissionListing, error)

	// PreviewTestCases runs unsaved cases for an author.
	PreviewTestCases(ctx context.Context, cases []domain.TestCase, solution domain.Solution) (*domain.RunReport, error)

	// RunCode executes source once with free-form stdin.
	RunCode(ctx context.Context, solution domain.Solution, stdin string) (*domain.ExecutionOutput, error)
}
