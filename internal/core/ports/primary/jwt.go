package primary

import (
	"context"

	"gitlab.com/gradebench.net/internal/domain"
)

type JWTService interface {
	GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error)
	DecodeTokenPayload(ctx context.Context, token string) (domain.AuthPayload, error)
}
