package errs

import (
	"errors"
	"fmt"
)

var (
	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrNotCodingAssignment   = errors.New("assignment is not a coding assignment")
	ErrEmptySolution         = errors.New("please write some code before running tests")
	ErrUnsupportedLanguage   = errors.New("unsupported language")
	ErrRunInProgress         = errors.New("a run is already in progress")
	ErrSubmissionNotRecorded = errors.New("submission not recorded")
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("forbidden")
)

// ErrChapterLocked is returned when a learner works ahead of their unlocked chapters.
var ErrChapterLocked = fmt.Errorf("%w: chapter is locked", ErrForbidden)
