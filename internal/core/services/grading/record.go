package grading

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"gitlab.com/gradebench.net/internal/domain"
)

// BuildSubmissionRecord assembles the record for a graded final submit.
// Only the answer fields matching the assignment type are kept.
func BuildSubmissionRecord(
	assignment *domain.Assignment,
	studentID string,
	studentName string,
	payload domain.SubmissionPayload,
	eval domain.Evaluation,
	submittedAt time.Time,
) *domain.SubmissionRecord {
	record := &domain.SubmissionRecord{
		ID:           uuid.New(),
		CourseID:     assignment.CourseID,
		AssignmentID: assignment.ID,
		StudentID:    studentID,
		StudentName:  studentName,
		SubmittedAt:  submittedAt,
		ResultStatus: eval.Status,
		TestSummary:  eval.Summary,
		AutoScore:    eval.AutoScore,
	}

	switch assignment.Type {
	case domain.AssignmentTypeCoding:
		record.CodingSolution = payload.CodingSolution
		record.Language = payload.Language
	case domain.AssignmentTypeMCQ:
		record.MCQAnswers = payload.MCQAnswers
	}
	return record
}

// ResultMessage is the one-line summary shown after a final submit.
func ResultMessage(assignmentType domain.AssignmentType, record *domain.SubmissionRecord) string {
	if record.ResultStatus == domain.ResultStatusUngraded {
		return "No auto-gradable checks"
	}

	if assignmentType == domain.AssignmentTypeMCQ {
		if record.AutoScore == nil {
			return "MCQ Score: N/A"
		}
		return fmt.Sprintf("MCQ Score: %d%%", *record.AutoScore)
	}

	switch record.ResultStatus {
	case domain.ResultStatusSuccess:
		return "Success - All tests passed"
	case domain.ResultStatusPartial:
		return fmt.Sprintf("Partial - %d/%d tests passed", record.TestSummary.PassCount, record.TestSummary.TotalCount)
	default:
		return "Fail - 0 tests passed or compiler error"
	}
}

// DisplayScore is the stored auto score, falling back to the test summary.
func DisplayScore(record *domain.SubmissionRecord) *int {
	if record.AutoScore != nil {
		return record.AutoScore
	}
	return AutoScore(record.TestSummary)
}

// ScoreLabel renders a score for listings.
func ScoreLabel(score *int) string {
	if score == nil {
		return "N/A"
	}
	return strconv.Itoa(*score)
}

// HiddenRunLabel describes a pre-submit run, e.g. "2/3 hidden tests passed".
func HiddenRunLabel(summary domain.TestSummary, usedFallback bool) string {
	if summary.TotalCount == 0 {
		return "No tests configured."
	}
	label := "hidden tests"
	if usedFallback {
		label = "tests"
	}
	return fmt.Sprintf("%d/%d %s passed", summary.PassCount, summary.TotalCount, label)
}
