package user

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/google/uuid"
)

const (
	seedAdminEmail    = "admin@optimacom.com"
	seedAdminPassword = "admin"
)

// EnsureSeedAdmin inserts the bootstrap admin account if no account with its
// email exists yet. Runs after migrations, before serving.
func EnsureSeedAdmin(ctx context.Context, repo Repository) error {
	_, err := repo.GetByEmail(ctx, seedAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &User{
		ID:       uuid.New(),
		Username: "Admin",
		Email:    seedAdminEmail,
		Password: string(hashed),
		Role:     RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}

	zap.L().Named("user.seed").Info("seed admin account created",
		zap.String("email", seedAdminEmail),
	)
	return nil
}
