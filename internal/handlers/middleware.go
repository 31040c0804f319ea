package handlers

import (
	"context"
	"net/http"
	"strings"

	"gitlab.com/gradebench.net/internal/core/ports/primary"
	"gitlab.com/gradebench.net/internal/domain"
	"gitlab.com/gradebench.net/internal/handlers/response"
	"gitlab.com/gradebench.net/internal/static/errs"
)

type authPayloadKey struct{}

type MiddlewareProvider struct {
	jwtService primary.JWTService
	logger     primary.Logger
}

func New(jwtService primary.JWTService, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		jwtService: jwtService,
		logger:     logger,
	}
}

// JWTMiddleware rejects requests without a valid bearer token and stores the
// decoded claims on the request context.
func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.WriteError(w, response.ErrorMessage{Message: "Authorization header missing", StatusCode: http.StatusUnauthorized, RequestID: RequestIDFrom(r.Context())})
			return
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		payload, err := m.jwtService.DecodeTokenPayload(r.Context(), tokenString)
		if err != nil {
			m.logger.Debug("Rejected token", "requestId", RequestIDFrom(r.Context()), "error", err)
			response.WriteError(w, response.ErrorMessage{Message: "Invalid token", StatusCode: http.StatusUnauthorized, RequestID: RequestIDFrom(r.Context())})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAuthPayload(r.Context(), payload)))
	})
}

// RequireAuthor only lets trainers and admins through. It must run after
// JWTMiddleware.
func (m *MiddlewareProvider) RequireAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := AuthPayloadFrom(r.Context())
		if !ok || !payload.CanAuthor() {
			response.WriteError(w, response.ErrorMessage{Message: errs.ErrForbidden.Error(), StatusCode: http.StatusForbidden, RequestID: RequestIDFrom(r.Context())})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithAuthPayload(ctx context.Context, payload domain.AuthPayload) context.Context {
	return context.WithValue(ctx, authPayloadKey{}, payload)
}

func AuthPayloadFrom(ctx context.Context) (domain.AuthPayload, bool) {
	payload, ok := ctx.Value(authPayloadKey{}).(domain.AuthPayload)
	return payload, ok
}
