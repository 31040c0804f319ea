package grading

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"gitlab.com/gradebench.net/internal/core/ports/primary"
	"gitlab.com/gradebench.net/internal/core/ports/secondary"
	"gitlab.com/gradebench.net/internal/domain"
)

const defaultConcurrency = 4

// Runner executes a batch of test cases against one solution.
type Runner struct {
	executor    secondary.CodeExecutor
	logger      primary.Logger
	concurrency int
}

// NewRunner creates a runner that keeps at most concurrency executions in flight.
func NewRunner(executor secondary.CodeExecutor, logger primary.Logger, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Runner{
		executor:    executor,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Run executes every case exactly once. Results keep the order of cases and a
// failing execution only ever affects its own slot.
func (r *Runner) Run(ctx context.Context, cases []domain.TestCase, solution domain.Solution) *domain.RunReport {
	results := make([]domain.TestResult, len(cases))
	wroteStderr := make([]bool, len(cases))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, tc := range cases {
		i, tc := i, tc
		g.Go(func() error {
			results[i] = r.runOne(ctx, i, tc, solution)
			wroteStderr[i] = results[i].Stderr != ""
			return nil
		})
	}
	_ = g.Wait()

	report := &domain.RunReport{
		Results: results,
		Summary: domain.TestSummary{TotalCount: len(cases)},
	}
	for i, res := range results {
		if res.Passed {
			report.Summary.PassCount++
		}
		if wroteStderr[i] {
			report.HadError = true
		}
	}
	return report
}

func (r *Runner) runOne(ctx context.Context, index int, tc domain.TestCase, solution domain.Solution) domain.TestResult {
	result := domain.TestResult{
		Input:          tc.Input,
		DisplayInput:   TransformForDisplay(tc.Input),
		ExpectedOutput: strings.TrimSpace(tc.Expected()),
	}

	out, err := r.executor.Execute(ctx, domain.ExecutionRequest{
		Language: solution.Language,
		Source:   solution.Source,
		Stdin:    TransformForCompiler(tc.Input),
	})
	if err != nil {
		r.logger.Warn("Test case execution failed", "case", index, "error", err)
		result.Error = err.Error()
		return result
	}

	result.ActualOutput = strings.TrimSpace(out.Stdout)
	result.Stderr = strings.TrimSpace(out.Stderr)
	result.Passed = NormalizeAndCompare(result.ActualOutput, result.ExpectedOutput)
	return result
}
