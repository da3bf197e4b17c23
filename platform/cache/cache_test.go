package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisFromClient(client, "test"), mr
}

func TestGetMissingKeyReturnsErrMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.Get(context.Background(), "absent")
	if !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
}

func TestSetThenGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "ref:MR1150", []byte(`{"name":"caneca"}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := c.Get(ctx, "ref:MR1150")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != `{"name":"caneca"}` {
		t.Fatalf("unexpected value: %s", got)
	}
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "ref:A1", []byte("x"), time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := c.Get(ctx, "ref:A1"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after TTL, got %v", err)
	}
}

func TestClearRemovesKeys(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "a", []byte("1"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := c.Set(ctx, "b", []byte("2"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := c.Clear(ctx, "a", "b"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected key a cleared, got %v", err)
	}
	if _, err := c.Get(ctx, "b"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected key b cleared, got %v", err)
	}
}

func TestClearWithNoKeysIsNoop(t *testing.T) {
	c, _ := newTestCache(t)
	if err := c.Clear(context.Background()); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}
