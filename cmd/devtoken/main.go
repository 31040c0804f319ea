// Command devtoken signs an access token with the configured secret, for
// calling the API from a local shell.
//
//	devtoken <env> <subject> [role] [username]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"gitlab.com/gradebench.net/internal/adapter/crypto"
	"gitlab.com/gradebench.net/internal/config"
	"gitlab.com/gradebench.net/internal/domain"
	logger2 "gitlab.com/gradebench.net/internal/global/logger"
)

const tokenTTL = 8 * time.Hour

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: devtoken <env> <subject> [role] [username]")
		os.Exit(2)
	}
	if err := godotenv.Load(os.Args[1] + ".env"); err != nil {
		logger2.Warn("Could not load env file", "file", os.Args[1]+".env", "error", err)
	}

	claims, err := buildClaims(os.Args[2:], time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	jwtConfig := config.NewJwtConfig()
	if jwtConfig.Secret == "" {
		logger2.Error("JWT_SECRET is not set")
		os.Exit(1)
	}
	jwtService := crypto.NewJWTService(jwtConfig)
	token, err := jwtService.GenerateTokenHMAC(context.Background(), "HS256", claims)
	if err != nil {
		logger2.Error("Failed to sign token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func buildClaims(args []string, now time.Time) (map[string]interface{}, error) {
	role := domain.RoleStudent
	if len(args) > 1 {
		role = domain.Role(args[1])
	}
	switch role {
	case domain.RoleStudent, domain.RoleTrainer, domain.RoleAdmin:
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	username := args[0]
	if len(args) > 2 {
		username = args[2]
	}
	return map[string]interface{}{
		"sub":      args[0],
		"username": username,
		"role":     string(role),
		"exp":      now.Add(tokenTTL).Unix(),
	}, nil
}
