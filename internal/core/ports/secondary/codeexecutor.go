package secondary

import (
	"context"

	"gitlab.com/gradebench.net/internal/domain"
)

type CodeExecutor interface {
	// Execute runs source once against stdin. Any transport or service failure
	// is returned as an error.
	Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionOutput, error)
}
