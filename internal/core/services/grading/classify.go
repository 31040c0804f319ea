package grading

import (
	"fmt"
	"math"

	"gitlab.com/gradebench.net/internal/domain"
)

// ZeroCasePolicy decides the status of a run that had nothing to check.
type ZeroCasePolicy string

const (
	// ZeroCaseUngraded reports "ungraded" with no score.
	ZeroCaseUngraded ZeroCasePolicy = "ungraded"
	// ZeroCaseFail reports "fail" with no score.
	ZeroCaseFail ZeroCasePolicy = "fail"
)

func ParseZeroCasePolicy(s string) (ZeroCasePolicy, error) {
	switch ZeroCasePolicy(s) {
	case ZeroCaseUngraded, ZeroCaseFail:
		return ZeroCasePolicy(s), nil
	case "":
		return ZeroCaseUngraded, nil
	default:
		return "", fmt.Errorf("unknown zero case policy %q", s)
	}
}

// Classifier turns pass counts into a ResultStatus and auto-score.
type Classifier struct {
	ZeroCase ZeroCasePolicy
}

var DefaultClassifier = Classifier{ZeroCase: ZeroCaseUngraded}

// ClassifyCoding classifies a coding run with the default zero-case policy.
func ClassifyCoding(summary domain.TestSummary, hadError bool) domain.Evaluation {
	return DefaultClassifier.Coding(summary, hadError)
}

// ClassifyMCQ grades answers against questions with the default zero-case policy.
func ClassifyMCQ(questions []domain.MCQQuestion, answers map[int]domain.Answer) domain.Evaluation {
	return DefaultClassifier.MCQ(questions, answers)
}

// Coding classifies a coding run. hadError only decides between partial and
// fail; a run where every case passed is a success regardless.
func (c Classifier) Coding(summary domain.TestSummary, hadError bool) domain.Evaluation {
	eval := domain.Evaluation{Summary: summary, AutoScore: AutoScore(summary)}
	switch {
	case summary.TotalCount == 0:
		eval.Status = c.zeroCaseStatus()
	case summary.PassCount == summary.TotalCount:
		eval.Status = domain.ResultStatusSuccess
	case summary.PassCount > 0 && !hadError:
		eval.Status = domain.ResultStatusPartial
	default:
		eval.Status = domain.ResultStatusFail
	}
	return eval
}

// MCQ counts questions answered with exactly the correct set of options.
func (c Classifier) MCQ(questions []domain.MCQQuestion, answers map[int]domain.Answer) domain.Evaluation {
	summary := domain.TestSummary{TotalCount: len(questions)}
	for i, q := range questions {
		if AnsweredCorrectly(q, answers, i) {
			summary.PassCount++
		}
	}

	eval := domain.Evaluation{Summary: summary, AutoScore: AutoScore(summary)}
	switch {
	case summary.TotalCount == 0:
		eval.Status = c.zeroCaseStatus()
	case summary.PassCount == summary.TotalCount:
		eval.Status = domain.ResultStatusSuccess
	case summary.PassCount > 0:
		eval.Status = domain.ResultStatusPartial
	default:
		eval.Status = domain.ResultStatusFail
	}
	return eval
}

// AnsweredCorrectly reports whether answers[index] equals the question's key.
// Subsets and supersets are wrong.
func AnsweredCorrectly(q domain.MCQQuestion, answers map[int]domain.Answer, index int) bool {
	key, ok := q.AnswerKey()
	if !ok {
		return false
	}
	answer, given := answers[index]
	if !given {
		return false
	}
	return answer.Equal(key)
}

// AutoScore is round(pass/total*100), or nil when there is nothing to score.
func AutoScore(summary domain.TestSummary) *int {
	if summary.TotalCount <= 0 {
		return nil
	}
	score := int(math.Round(float64(summary.PassCount) / float64(summary.TotalCount) * 100))
	return &score
}

func (c Classifier) zeroCaseStatus() domain.ResultStatus {
	if c.ZeroCase == ZeroCaseFail {
		return domain.ResultStatusFail
	}
	return domain.ResultStatusUngraded
}
