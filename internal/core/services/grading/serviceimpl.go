package grading

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gitlab.com/gradebench.net/internal/config"
	"gitlab.com/gradebench.net/internal/core/ports/primary"
	"gitlab.com/gradebench.net/internal/core/ports/secondary"
	"gitlab.com/gradebench.net/internal/domain"
	"gitlab.com/gradebench.net/internal/static/errs"
)

var _ IGradingService = (*GradingService)(nil)

// GradingService ties the runner and classifier to assignment and submission storage.
type GradingService struct {
	assignmentRepo secondary.AssignmentRepository
	submissionRepo secondary.SubmissionRepository
	chapterAccess  secondary.ChapterAccess
	executor       secondary.CodeExecutor
	runner         *Runner
	classifier     Classifier
	clock          secondary.Clock
	logger         primary.Logger
	hiddenFallback bool
}

// NewGradingService creates a new grading service. A nil chapterAccess turns
// chapter gating off.
func NewGradingService(
	assignmentRepo secondary.AssignmentRepository,
	submissionRepo secondary.SubmissionRepository,
	chapterAccess secondary.ChapterAccess,
	executor secondary.CodeExecutor,
	clock secondary.Clock,
	logger primary.Logger,
	cfg *config.GradingConfig,
) (*GradingService, error) {
	policy, err := ParseZeroCasePolicy(cfg.ZeroCasePolicy)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = secondary.SystemClock{}
	}
	return &GradingService{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		chapterAccess:  chapterAccess,
		executor:       executor,
		runner:         NewRunner(executor, logger, cfg.Concurrency),
		classifier:     Classifier{ZeroCase: policy},
		clock:          clock,
		logger:         logger,
		hiddenFallback: cfg.HiddenFallback,
	}, nil
}

// RunSampleTests runs every case of one question, hidden or not.
func (s *GradingService) RunSampleTests(ctx context.Context, learner domain.AuthPayload, assignmentID string, questionIndex int, solution domain.Solution) (*domain.RunReport, error) {
	solution, err := normalizeSolution(solution)
	if err != nil {
		return nil, err
	}

	assignment, err := s.getCodingAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkChapterAccess(ctx, assignment, learner.Subject, learner.Role); err != nil {
		return nil, err
	}
	if questionIndex < 0 || questionIndex >= len(assignment.CodingQuestions) {
		return nil, fmt.Errorf("%w: index %d", errs.ErrQuestionNotFound, questionIndex)
	}

	report := s.runner.Run(ctx, assignment.CodingQuestions[questionIndex].TestCases, solution)
	s.logger.Info("Sample tests run",
		"assignmentId", assignmentID,
		"question", questionIndex,
		"passed", report.Summary.PassCount,
		"total", report.Summary.TotalCount)
	return report, nil
}

// RunHiddenTests runs the hidden cases across all coding questions.
func (s *GradingService) RunHiddenTests(ctx context.Context, learner domain.AuthPayload, assignmentID string, solution domain.Solution) (*domain.HiddenRunReport, error) {
	solution, err := normalizeSolution(solution)
	if err != nil {
		return nil, err
	}

	assignment, err := s.getCodingAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkChapterAccess(ctx, assignment, learner.Subject, learner.Role); err != nil {
		return nil, err
	}

	cases, usedFallback := SelectHiddenCases(assignment.TestCases(), s.hiddenFallback)
	report := s.runner.Run(ctx, cases, solution)

	s.logger.Info("Hidden tests run",
		"assignmentId", assignmentID,
		"fallback", usedFallback,
		"passed", report.Summary.PassCount,
		"total", report.Summary.TotalCount)

	return &domain.HiddenRunReport{
		RunReport:    *report,
		UsedFallback: usedFallback,
		Label:        HiddenRunLabel(report.Summary, usedFallback),
	}, nil
}

// SelectHiddenCases keeps the hidden cases. When none is hidden and fallback
// is set, every case is returned instead.
func SelectHiddenCases(all []domain.TestCase, fallback bool) (cases []domain.TestCase, usedFallback bool) {
	hidden := make([]domain.TestCase, 0, len(all))
	for _, tc := range all {
		if tc.IsHidden() {
			hidden = append(hidden, tc)
		}
	}
	if len(hidden) == 0 && fallback {
		return all, true
	}
	return hidden, false
}

// Submit grades the attempt and stores it, updating the student's existing
// record in place when there is one.
func (s *GradingService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	assignment, err := s.assignmentRepo.GetAssignment(ctx, req.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, errs.ErrAssignmentNotFound
	}
	if err := s.checkChapterAccess(ctx, assignment, req.StudentID, req.Role); err != nil {
		return nil, err
	}

	payload := req.Payload
	var eval domain.Evaluation
	switch assignment.Type {
	case domain.AssignmentTypeCoding:
		lang, err := parseLanguage(payload.Language)
		if err != nil {
			return nil, err
		}
		payload.Language = string(lang)

		cases := assignment.TestCases()
		report := s.runner.Run(ctx, cases, domain.Solution{Language: payload.Language, Source: payload.CodingSolution})
		eval = s.classifier.Coding(report.Summary, report.HadError)
	case domain.AssignmentTypeMCQ:
		eval = s.classifier.MCQ(assignment.MCQQuestions, payload.MCQAnswers)
	default:
		return nil, fmt.Errorf("unknown assignment type %q", assignment.Type)
	}

	existing, err := s.submissionRepo.GetByAssignmentAndStudent(ctx, assignment.ID, req.StudentID)
	if err != nil {
		s.logger.Error("Failed to look up submission", "assignmentId", assignment.ID, "studentId", req.StudentID, "error", err)
		return nil, fmt.Errorf("%w: %w", errs.ErrSubmissionNotRecorded, err)
	}

	record := BuildSubmissionRecord(assignment, req.StudentID, req.StudentName, payload, eval, s.clock.Now())
	if existing != nil {
		record.ID = existing.ID
		err = s.submissionRepo.UpdateSubmission(ctx, record)
	} else {
		err = s.submissionRepo.CreateSubmission(ctx, record)
	}
	if err != nil {
		s.logger.Error("Failed to store submission", "assignmentId", assignment.ID, "studentId", req.StudentID, "error", err)
		return nil, fmt.Errorf("%w: %w", errs.ErrSubmissionNotRecorded, err)
	}

	s.logger.Info("Submission graded",
		"assignmentId", assignment.ID,
		"studentId", req.StudentID,
		"status", record.ResultStatus,
		"passed", record.TestSummary.PassCount,
		"total", record.TestSummary.TotalCount)

	return &SubmitResult{
		Record:  record,
		Created: existing == nil,
		Message: ResultMessage(assignment.Type, record),
	}, nil
}

// GetSubmission returns the stored record for a student.
func (s *GradingService) GetSubmission(ctx context.Context, assignmentID, studentID string) (*domain.SubmissionRecord, error) {
	record, err := s.submissionRepo.GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return record, nil
}

// ListSubmissions lists an assignment's submissions for its authors.
func (s *GradingService) ListSubmissions(ctx context.Context, assignmentID string) ([]SubmissionListing, error) {
	assignment, err := s.assignmentRepo.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, errs.ErrAssignmentNotFound
	}

	records, err := s.submissionRepo.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SubmittedAt.After(records[j].SubmittedAt)
	})

	listing := make([]SubmissionListing, 0, len(records))
	for _, record := range records {
		score := DisplayScore(record)
		listing = append(listing, SubmissionListing{
			SubmissionRecord: record,
			Score:            score,
			ScoreLabel:       ScoreLabel(score),
		})
	}
	return listing, nil
}

// PreviewTestCases runs author-supplied cases without touching storage.
func (s *GradingService) PreviewTestCases(ctx context.Context, cases []domain.TestCase, solution domain.Solution) (*domain.RunReport, error) {
	solution, err := normalizeSolution(solution)
	if err != nil {
		return nil, err
	}
	return s.runner.Run(ctx, cases, solution), nil
}

// RunCode executes source once. Empty stdout falls back to the compiler output.
func (s *GradingService) RunCode(ctx context.Context, solution domain.Solution, stdin string) (*domain.ExecutionOutput, error) {
	solution, err := normalizeSolution(solution)
	if err != nil {
		return nil, err
	}

	out, err := s.executor.Execute(ctx, domain.ExecutionRequest{
		Language: solution.Language,
		Source:   solution.Source,
		Stdin:    stdin,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute code: %w", err)
	}
	if out.Stdout == "" && out.CompileOutput != "" {
		out.Stdout = out.CompileOutput
	}
	return out, nil
}

func (s *GradingService) getCodingAssignment(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	assignment, err := s.assignmentRepo.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, errs.ErrAssignmentNotFound
	}
	if assignment.Type != domain.AssignmentTypeCoding {
		return nil, errs.ErrNotCodingAssignment
	}
	return assignment, nil
}

// checkChapterAccess keeps learners inside the chapters they have unlocked.
// Admins are never gated.
func (s *GradingService) checkChapterAccess(ctx context.Context, assignment *domain.Assignment, studentID string, role domain.Role) error {
	if s.chapterAccess == nil || role == domain.RoleAdmin {
		return nil
	}

	ok, err := s.chapterAccess.CanAccess(ctx, studentID, assignment.CourseID, assignment.Day)
	if err != nil {
		return fmt.Errorf("failed to check chapter access: %w", err)
	}
	if !ok {
		s.logger.Info("Chapter locked",
			"assignmentId", assignment.ID,
			"courseId", assignment.CourseID,
			"day", assignment.Day,
			"studentId", studentID)
		return errs.ErrChapterLocked
	}
	return nil
}

func normalizeSolution(solution domain.Solution) (domain.Solution, error) {
	lang, err := parseLanguage(solution.Language)
	if err != nil {
		return solution, err
	}
	if strings.TrimSpace(solution.Source) == "" {
		return solution, errs.ErrEmptySolution
	}
	solution.Language = string(lang)
	return solution, nil
}

func parseLanguage(name string) (domain.Language, error) {
	if strings.TrimSpace(name) == "" {
		return domain.DefaultLanguage, nil
	}
	lang, ok := domain.ParseLanguage(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", errs.ErrUnsupportedLanguage, name)
	}
	return lang, nil
}
