// Command token-generator prints a signed access token for a user ID, for
// calling the authenticated job routes by hand during development.
//
//	JOBBOARD_AUTH_JWT_SECRET=... go run ./cmd/token-generator -user <uuid>
//
// When -user is omitted a random user ID is generated and printed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/phrazzld/jobboard-api/internal/config"
	"github.com/phrazzld/jobboard-api/internal/service/auth"
	"github.com/spf13/viper"
)

func main() {
	userFlag := flag.String("user", "", "user ID to issue the token for (default: random)")
	flag.Parse()

	if err := run(*userFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawUserID string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	authCfg, err := loadAuthConfig()
	if err != nil {
		return err
	}

	userID := uuid.New()
	if rawUserID != "" {
		if userID, err = uuid.Parse(rawUserID); err != nil {
			return fmt.Errorf("invalid user ID %q: %w", rawUserID, err)
		}
	}

	jwtService, err := auth.NewJWTService(authCfg)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}

	token, err := jwtService.GenerateToken(context.Background(), userID)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Printf("User ID: %s\nToken: %s\n", userID, token)
	return nil
}

// loadAuthConfig reads only the auth settings, so a database URL is not needed.
func loadAuthConfig() (config.AuthConfig, error) {
	v := viper.New()
	v.SetDefault("token_lifetime_minutes", 60)
	v.SetEnvPrefix("JOBBOARD_AUTH")
	v.AutomaticEnv()

	cfg := config.AuthConfig{
		JWTSecret:            v.GetString("jwt_secret"),
		TokenLifetimeMinutes: v.GetInt("token_lifetime_minutes"),
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("JOBBOARD_AUTH_JWT_SECRET is not set")
	}
	return cfg, nil
}
