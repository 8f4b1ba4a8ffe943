// Command seed creates or resets an account.  Running it again for the same
// username replaces the password, name and role.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/portfolio-api/internal/auth"
	"github.com/iliyamo/portfolio-api/internal/config"
	"github.com/iliyamo/portfolio-api/internal/database"
	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/model"
	"github.com/iliyamo/portfolio-api/internal/repository"
)

func main() {
	username := flag.String("username", "admin", "login name")
	password := flag.String("password", "", "password (required)")
	fullName := flag.String("full-name", "", "display name")
	role := flag.String("role", string(model.RoleAdmin), "admin or user")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.New(cfg.Env, os.Stderr)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	u, err := seed(ctx, cfg, model.NewUser{Username: *username, Password: *password, Role: *role, FullName: optional(*fullName)})
	if err != nil {
		logger.Error(ctx, "seed failed", "err", err)
		os.Exit(1)
	}
	logger.Info(ctx, "user seeded", "user_id", u.ID, "username", u.Username, "role", string(u.Role))
}

func seed(ctx context.Context, cfg config.Config, req model.NewUser) (model.User, error) {
	role, err := req.Validate()
	if err != nil {
		return model.User{}, err
	}
	hash, err := auth.HashPassword(req.Password, cfg.BcryptCost)
	if err != nil {
		return model.User{}, err
	}

	db, err := database.Open(cfg)
	if err != nil {
		return model.User{}, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if cfg.MigrateOnStart {
		if err := database.Migrate(ctx, db); err != nil {
			return model.User{}, fmt.Errorf("migrate: %w", err)
		}
	}

	return repository.NewUserRepo(db).Upsert(ctx, model.User{
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
