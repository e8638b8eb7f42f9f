package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type cachedReport struct {
	Balance string `json:"balance"`
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, *reportCache) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return server, &reportCache{client: client, ttl: time.Minute}
}

func TestReportCache_SetGet(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := cache.Set(ctx, "dashboard", userID, "2024-03-01:2024-03-15", cachedReport{Balance: "1250"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got cachedReport
	hit, err := cache.Get(ctx, "dashboard", userID, "2024-03-01:2024-03-15", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.Balance != "1250" {
		t.Errorf("expected balance 1250, got %s", got.Balance)
	}
}

func TestReportCache_MissOnUnknownKey(t *testing.T) {
	_, cache := newTestCache(t)

	var got cachedReport
	hit, err := cache.Get(context.Background(), "dashboard", uuid.New(), "x", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Error("expected miss")
	}
}

func TestReportCache_DistinctParams(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := cache.Set(ctx, "dashboard", userID, "a", cachedReport{Balance: "1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got cachedReport
	hit, err := cache.Get(ctx, "dashboard", userID, "b", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Error("expected miss for different params")
	}
}

func TestReportCache_TTLExpiry(t *testing.T) {
	server, cache := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := cache.Set(ctx, "dashboard", userID, "x", cachedReport{Balance: "1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	server.FastForward(2 * time.Minute)

	var got cachedReport
	hit, err := cache.Get(ctx, "dashboard", userID, "x", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Error("expected entry to expire")
	}
}

func TestReportCache_InvalidateUser(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	if err := cache.Set(ctx, "dashboard", userID, "a", cachedReport{Balance: "1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cache.Set(ctx, "export", userID, "b", cachedReport{Balance: "2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cache.Set(ctx, "dashboard", otherID, "a", cachedReport{Balance: "3"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := cache.InvalidateUser(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got cachedReport
	for _, params := range []string{"a", "b"} {
		hit, err := cache.Get(ctx, "dashboard", userID, params, &got)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hit {
			t.Errorf("expected %s to be invalidated", params)
		}
	}

	hit, err := cache.Get(ctx, "dashboard", otherID, "a", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hit {
		t.Error("other user's entry should survive")
	}
}
