package grading

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gitlab.com/gradebench.net/internal/domain"
)

// fakeExecutor answers each request through fn and records what it saw.
type fakeExecutor struct {
	fn func(req domain.ExecutionRequest) (*domain.ExecutionOutput, error)

	mu       sync.Mutex
	requests []domain.ExecutionRequest

	inFlight    int32
	maxInFlight int32
	delay       time.Duration
}

func (f *fakeExecutor) Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionOutput, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		m := atomic.LoadInt32(&f.maxInFlight)
		if n <= m || atomic.CompareAndSwapInt32(&f.maxInFlight, m, n) {
			break
		}
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.fn(req)
}

func (f *fakeExecutor) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// echoExecutor prints the sum of the whitespace separated integers on stdin,
// or stdin itself if it is not numeric.
func echoExecutor() *fakeExecutor {
	return &fakeExecutor{fn: func(req domain.ExecutionRequest) (*domain.ExecutionOutput, error) {
		sum := 0
		for _, tok := range strings.Fields(req.Stdin) {
			v := 0
			for _, ch := range tok {
				if ch < '0' || ch > '9' {
					return &domain.ExecutionOutput{Stdout: req.Stdin + "\n"}, nil
				}
				v = v*10 + int(ch-'0')
			}
			sum += v
		}
		return &domain.ExecutionOutput{Stdout: strconv.Itoa(sum) + "\n"}, nil
	}}
}

type fakeAssignmentRepo struct {
	assignments map[string]*domain.Assignment
	err         error
}

func (f *fakeAssignmentRepo) GetAssignment(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.assignments[assignmentID], nil
}

type fakeSubmissionRepo struct {
	mu      sync.Mutex
	records map[string]*domain.SubmissionRecord

	getErr    error
	listErr   error
	createErr error
	updateErr error

	creates int
	updates int
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{records: make(map[string]*domain.SubmissionRecord)}
}

func submissionKey(assignmentID, studentID string) string {
	return assignmentID + "/" + studentID
}

func (f *fakeSubmissionRepo) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) (*domain.SubmissionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	rec, ok := f.records[submissionKey(assignmentID, studentID)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeSubmissionRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]*domain.SubmissionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.SubmissionRecord, 0)
	for _, rec := range f.records {
		if rec.AssignmentID == assignmentID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) CreateSubmission(ctx context.Context, record *domain.SubmissionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	key := submissionKey(record.AssignmentID, record.StudentID)
	if _, exists := f.records[key]; exists {
		return errors.New("duplicate submission")
	}
	cp := *record
	f.records[key] = &cp
	f.creates++
	return nil
}

func (f *fakeSubmissionRepo) UpdateSubmission(ctx context.Context, record *domain.SubmissionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	key := submissionKey(record.AssignmentID, record.StudentID)
	existing, ok := f.records[key]
	if !ok || existing.ID != record.ID {
		return errors.New("submission not found")
	}
	cp := *record
	f.records[key] = &cp
	f.updates++
	return nil
}

// fakeChapterAccess unlocks everything except the listed "student/course/day" keys.
type fakeChapterAccess struct {
	mu     sync.Mutex
	locked map[string]bool
	err    error
	checks []string
}

func (f *fakeChapterAccess) lock(studentID, courseID string, day int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locked == nil {
		f.locked = make(map[string]bool)
	}
	f.locked[chapterKey(studentID, courseID, day)] = true
}

func (f *fakeChapterAccess) CanAccess(ctx context.Context, studentID, courseID string, day int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := chapterKey(studentID, courseID, day)
	f.checks = append(f.checks, key)
	if f.err != nil {
		return false, f.err
	}
	return !f.locked[key], nil
}

func chapterKey(studentID, courseID string, day int) string {
	return studentID + "/" + courseID + "/" + strconv.Itoa(day)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
