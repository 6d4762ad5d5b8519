package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/project-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stub revoker
// ---------------------------------------------------------------------------

type stubRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (r *stubRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[jti] = ttl
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := r.revoked[jti]
	return ok, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testSecret = "test-secret"

func seedCredentialed(repo *stubUserRepo, email, password string, role domain.Role) *domain.User {
	u := repo.seed("Test User", email, role)
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u.PasswordHash = string(hash)
	return u
}

// ---------------------------------------------------------------------------
// Login tests
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	user := seedCredentialed(repo, "ana@example.com", "correct-horse", domain.RoleAdmin)
	svc := NewAuthService(repo, newStubRevoker(), testSecret, time.Hour, discardLogger)

	token, got, err := svc.Login(context.Background(), "ana@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("wrong user returned: %s", got.ID)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ID || claims["role"] != string(domain.RoleAdmin) {
		t.Errorf("claims wrong: %+v", claims)
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Error("token must carry a jti for revocation")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedCredentialed(repo, "ana@example.com", "correct-horse", domain.RoleUser)
	svc := NewAuthService(repo, newStubRevoker(), testSecret, time.Hour, discardLogger)

	_, _, err := svc.Login(context.Background(), "ana@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Unknown email and wrong password must be indistinguishable.
func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevoker(), testSecret, time.Hour, discardLogger)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInputs(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubRevoker(), testSecret, time.Hour, discardLogger)

	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@b.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
	if repo.calls != 0 {
		t.Error("empty credentials must not touch the repository")
	}
}

// ---------------------------------------------------------------------------
// Logout tests
// ---------------------------------------------------------------------------

func TestAuthService_Logout_RevokesUntilExpiry(t *testing.T) {
	revoker := newStubRevoker()
	svc := NewAuthService(newStubUserRepo(), revoker, testSecret, time.Hour, discardLogger)

	exp := time.Now().Add(30 * time.Minute)
	if err := svc.Logout(context.Background(), "jti-1", exp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ttl, ok := revoker.revoked["jti-1"]
	if !ok {
		t.Fatal("token id must be revoked")
	}
	if ttl <= 0 || ttl > 30*time.Minute {
		t.Errorf("ttl must cover the remaining lifetime, got %v", ttl)
	}
}

func TestAuthService_Logout_ExpiredTokenIsNoop(t *testing.T) {
	revoker := newStubRevoker()
	svc := NewAuthService(newStubUserRepo(), revoker, testSecret, time.Hour, discardLogger)

	if err := svc.Logout(context.Background(), "jti-old", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(revoker.revoked) != 0 {
		t.Error("an already expired token needs no denylist entry")
	}
}

func TestAuthService_Logout_RevokerError(t *testing.T) {
	revoker := newStubRevoker()
	revoker.err = errors.New("redis down")
	svc := NewAuthService(newStubUserRepo(), revoker, testSecret, time.Hour, discardLogger)

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Hour)); err == nil {
		t.Fatal("expected error when the revoker fails")
	}
}
