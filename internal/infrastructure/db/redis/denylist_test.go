package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestDenylist(t *testing.T) (*TokenDenylist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTokenDenylist(client), mr
}

func TestTokenDenylist_RevokeAndCheck(t *testing.T) {
	dl, _ := newTestDenylist(t)
	ctx := context.Background()

	revoked, err := dl.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revoked {
		t.Fatal("unknown jti must not read as revoked")
	}

	if err := dl.Revoke(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	revoked, err = dl.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !revoked {
		t.Fatal("revoked jti must read as revoked")
	}

	// Other token ids stay unaffected.
	revoked, _ = dl.IsRevoked(ctx, "jti-2")
	if revoked {
		t.Fatal("unrelated jti must not be revoked")
	}
}

func TestTokenDenylist_EntryExpiresWithToken(t *testing.T) {
	dl, mr := newTestDenylist(t)
	ctx := context.Background()

	if err := dl.Revoke(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	// Past the token's own expiry the entry is gone.
	mr.FastForward(2 * time.Minute)

	revoked, err := dl.IsRevoked(ctx, "jti-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revoked {
		t.Fatal("denylist entry must lapse with the token")
	}
}
