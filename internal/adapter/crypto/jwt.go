package crypto

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/gradebench.net/internal/config"
	"gitlab.com/gradebench.net/internal/core/ports/primary"
	"gitlab.com/gradebench.net/internal/domain"
	"gitlab.com/gradebench.net/internal/static/errs"
)

var _ primary.JWTService = (*JWTServiceImpl)(nil)

type JWTServiceImpl struct {
	HMACSecretKey string
}

func NewJWTService(jwtConfig *config.JwtConfig) primary.JWTService {
	return &JWTServiceImpl{
		HMACSecretKey: jwtConfig.Secret,
	}
}

func (J JWTServiceImpl) GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error) {
	signingMethod := jwt.GetSigningMethod(method)
	if signingMethod == nil {
		return "", fmt.Errorf("unsupported signing method: %s", method)
	}

	// Ensure the claims map contains an expiration time
	if _, exists := claims["exp"]; !exists {
		claims["exp"] = time.Now().Add(time.Hour * 1).Unix()
	}

	tok := jwt.NewWithClaims(signingMethod, jwt.MapClaims(claims))
	return tok.SignedString([]byte(J.HMACSecretKey))
}

// DecodeTokenPayload verifies an HS256 token and returns its claims.
func (J JWTServiceImpl) DecodeTokenPayload(ctx context.Context, token string) (domain.AuthPayload, error) {
	parsedToken, err := J.parse(token, jwt.SigningMethodHS256.Name)
	if err != nil {
		return domain.AuthPayload{}, err
	}
	if !parsedToken.Valid {
		return domain.AuthPayload{}, errs.ErrInvalidToken
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return domain.AuthPayload{}, errs.ErrInvalidToken
	}

	raw, err := json.Marshal(claims)
	if err != nil {
		return domain.AuthPayload{}, fmt.Errorf("failed to encode token payload: %w", err)
	}
	var payload domain.AuthPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.AuthPayload{}, fmt.Errorf("failed to parse AuthPayload: %w", err)
	}
	if payload.Subject == "" {
		return domain.AuthPayload{}, fmt.Errorf("%w: missing subject", errs.ErrInvalidToken)
	}
	if payload.Role == "" {
		payload.Role = domain.RoleStudent
	}
	return payload, nil
}

func (J JWTServiceImpl) parse(token string, method string) (*jwt.Token, error) {
	signingMethod := jwt.GetSigningMethod(method)
	if signingMethod == nil {
		return nil, fmt.Errorf("unsupported signing method: %s", method)
	}

	parsedToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(J.HMACSecretKey), nil
	}, jwt.WithValidMethods([]string{signingMethod.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidToken, err)
	}
	return parsedToken, nil
}
