package seed

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/jaeho/gongu/internal/app/models"
	appRepos "github.com/jaeho/gongu/internal/app/repositories"
	"github.com/jaeho/gongu/internal/pkg/auth"
)

const defaultAdminUsername = "admin"

// CreateDefaultData creates the default admin account if it does not exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.ExistsByUsername(ctx, defaultAdminUsername)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme-admin"
		lgr.Warn().Msg("ADMIN_PASSWORD not set, seeding admin with the default password")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &appModels.User{
		Username: defaultAdminUsername,
		Email:    "admin@gongu.local",
		Password: hash,
		IsAdmin:  true,
	}

	id, err := userRepo.Create(ctx, admin)
	if err != nil {
		return err
	}

	lgr.Info().Int64("userID", id).Msg("Default admin account created")
	return nil
}
