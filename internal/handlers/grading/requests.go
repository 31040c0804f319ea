package grading

import (
	gradingsvc "gitlab.com/gradebench.net/internal/core/services/grading"
	"gitlab.com/gradebench.net/internal/domain"
)

// RunRequest is the body of the sample-run and hidden-run endpoints.
type RunRequest struct {
	Language string `json:"language" validate:"omitempty,max=32"`
	Source   string `json:"source" validate:"max=200000"`
}

func (r RunRequest) Solution() domain.Solution {
	return domain.Solution{Language: r.Language, Source: r.Source}
}

// CompileRequest runs source once with free-form stdin.
type CompileRequest struct {
	Language string `json:"language" validate:"omitempty,max=32"`
	Source   string `json:"source" validate:"max=200000"`
	Stdin    string `json:"stdin" validate:"max=65536"`
}

// SubmitRequest is a final submit. Coding assignments use language and
// codingSolution, MCQ assignments use mcqAnswers.
type SubmitRequest struct {
	Language       string                `json:"language" validate:"omitempty,max=32"`
	CodingSolution string                `json:"codingSolution" validate:"max=200000"`
	MCQAnswers     map[int]domain.Answer `json:"mcqAnswers" validate:"omitempty,max=500"`
}

func (r SubmitRequest) Payload() domain.SubmissionPayload {
	return domain.SubmissionPayload{
		Language:       r.Language,
		CodingSolution: r.CodingSolution,
		MCQAnswers:     r.MCQAnswers,
	}
}

// PreviewRequest runs unsaved test cases against reference code.
type PreviewRequest struct {
	Language  string            `json:"language" validate:"omitempty,max=32"`
	Source    string            `json:"source" validate:"max=200000"`
	TestCases []domain.TestCase `json:"testCases" validate:"required,min=1,max=100"`
}

type LanguageInfo struct {
	Name        domain.Language `json:"name"`
	StarterCode string          `json:"starterCode"`
	Default     bool            `json:"default"`
}

type LanguagesResponse struct {
	Languages []LanguageInfo `json:"languages"`
}

type SubmissionListResponse struct {
	Submissions []gradingsvc.SubmissionListing `json:"submissions"`
}

type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}
