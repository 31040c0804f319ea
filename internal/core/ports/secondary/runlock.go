package secondary

import (
	"context"
	"fmt"
	"time"
)

type RunMode string

const (
	RunModeSample  RunMode = "sample"
	RunModeHidden  RunMode = "hidden"
	RunModeSubmit  RunMode = "submit"
	RunModeCompile RunMode = "compile"
	RunModePreview RunMode = "preview"
)

// RunLock keeps a learner from starting two runs of the same kind at once.
type RunLock interface {
	// Acquire returns false when key is already held. The returned token
	// identifies this holder to Release.
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	// Release frees key only if it is still held with token.
	Release(ctx context.Context, key, token string) error
}

// RunLockKey builds the lock key for one learner's run of one kind.
func RunLockKey(studentID, scope string, mode RunMode) string {
	return fmt.Sprintf("runlock:%s:%s:%s", studentID, scope, mode)
}
