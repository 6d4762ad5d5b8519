package ports

import (
	"context"
	"time"

	"github.com/taskhub/project-system/internal/core/domain"
)

// AuthService implements login and logout. Login returns a signed JWT
// carrying the actor's identity and role; Logout revokes the token's id
// until its natural expiry.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}
