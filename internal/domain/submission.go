package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResultStatus classifies how completely a submission satisfied its checks.
type ResultStatus string

const (
	ResultStatusSuccess ResultStatus = "success"
	ResultStatusPartial ResultStatus = "partial"
	ResultStatusFail    ResultStatus = "fail"
	// ResultStatusUngraded marks a submission with no auto-gradable checks.
	ResultStatusUngraded ResultStatus = "ungraded"
)

// Evaluation is the aggregate outcome of one grading run.
type Evaluation struct {
	Status    ResultStatus `json:"status"`
	AutoScore *int         `json:"autoScore,omitempty"`
	Summary   TestSummary  `json:"summary"`
}

// Solution is the code a learner asks to have run.
type Solution struct {
	Language string `json:"language"`
	Source   string `json:"source"`
}

// SubmissionPayload is the raw answer payload of a final submit.
type SubmissionPayload struct {
	Language       string         `json:"language,omitempty"`
	CodingSolution string         `json:"codingSolution,omitempty"`
	MCQAnswers     map[int]Answer `json:"mcqAnswers,omitempty"`
}

// SubmissionRecord is the persisted outcome of a learner's attempt. There is
// at most one per (assignment, student).
type SubmissionRecord struct {
	ID             uuid.UUID      `json:"id"`
	CourseID       string         `json:"courseId"`
	AssignmentID   string         `json:"assignmentId"`
	StudentID      string         `json:"studentId"`
	StudentName    string         `json:"studentName,omitempty"`
	SubmittedAt    time.Time      `json:"submittedAt"`
	ResultStatus   ResultStatus   `json:"resultStatus"`
	TestSummary    TestSummary    `json:"testSummary"`
	AutoScore      *int           `json:"autoScore,omitempty"`
	MCQAnswers     map[int]Answer `json:"mcqAnswers,omitempty"`
	CodingSolution string         `json:"codingSolution,omitempty"`
	Language       string         `json:"language,omitempty"`
}

// SubmissionTable lists the column names of the submissions table.
type SubmissionTable struct {
	ID             string
	CourseID       string
	AssignmentID   string
	StudentID      string
	StudentName    string
	SubmittedAt    string
	ResultStatus   string
	PassCount      string
	TotalCount     string
	AutoScore      string
	MCQAnswers     string
	CodingSolution string
	Language       string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:             "id",
		CourseID:       "course_id",
		AssignmentID:   "assignment_id",
		StudentID:      "student_id",
		StudentName:    "student_name",
		SubmittedAt:    "submitted_at",
		ResultStatus:   "result_status",
		PassCount:      "pass_count",
		TotalCount:     "total_count",
		AutoScore:      "auto_score",
		MCQAnswers:     "mcq_answers",
		CodingSolution: "coding_solution",
		Language:       "language",
	}
}

func (SubmissionTable) TableName() string {
	return "submissions"
}

// Columns returns every column in insert order.
func (t SubmissionTable) Columns() []string {
	return []string{
		t.ID, t.CourseID, t.AssignmentID, t.StudentID, t.StudentName,
		t.SubmittedAt, t.ResultStatus, t.PassCount, t.TotalCount, t.AutoScore,
		t.MCQAnswers, t.CodingSolution, t.Language,
	}
}
