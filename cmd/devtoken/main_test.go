package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/gradebench.net/internal/adapter/crypto"
	"gitlab.com/gradebench.net/internal/config"
	"gitlab.com/gradebench.net/internal/domain"
)

func TestBuildClaims(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		claims, err := buildClaims([]string{"s1"}, now)
		require.NoError(t, err)
		assert.Equal(t, "s1", claims["sub"])
		assert.Equal(t, "s1", claims["username"])
		assert.Equal(t, "student", claims["role"])
		assert.Equal(t, now.Add(tokenTTL).Unix(), claims["exp"])
	})

	t.Run("role and name", func(t *testing.T) {
		claims, err := buildClaims([]string{"t1", "trainer", "Tess"}, now)
		require.NoError(t, err)
		assert.Equal(t, "trainer", claims["role"])
		assert.Equal(t, "Tess", claims["username"])
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := buildClaims([]string{"s1", "root"}, now)
		assert.ErrorContains(t, err, "unknown role")
	})
}

func TestSignedTokenDecodes(t *testing.T) {
	svc := crypto.NewJWTService(&config.JwtConfig{Secret: "dev"})
	claims, err := buildClaims([]string{"a1", "admin"}, time.Now())
	require.NoError(t, err)

	token, err := svc.GenerateTokenHMAC(context.Background(), "HS256", claims)
	require.NoError(t, err)

	payload, err := svc.DecodeTokenPayload(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, domain.AuthPayload{Subject: "a1", Username: "a1", Role: domain.RoleAdmin}, payload)
}
