package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/project-system/internal/core/domain"
)

// EnsureAdminUser creates the bootstrap administrator when no admin
// account exists yet. Runs once at startup; a no-op on every restart
// after the first.
func EnsureAdminUser(ctx context.Context, users *UserRepository, email, password string, log zerolog.Logger) error {
	counts, err := users.CountByRole(ctx)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if counts[domain.RoleAdmin] > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: hash password: %w", err)
	}

	now := time.Now().UTC()
	admin := &domain.User{
		Name:         "System Admin",
		Email:        email,
		Role:         domain.RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := users.Create(ctx, admin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Info().Str("user_id", created.ID).Str("email", email).Msg("bootstrap admin created")
	return nil
}
