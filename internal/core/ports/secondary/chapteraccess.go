package secondary

import "context"

// ChapterAccess answers whether a learner has unlocked a course chapter.
type ChapterAccess interface {
	// CanAccess reports whether studentID may work on the chapter of courseID
	// scheduled for day. Day 1 is the first chapter in course order.
	CanAccess(ctx context.Context, studentID, courseID string, day int) (bool, error)
}
