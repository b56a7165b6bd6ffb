package api

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	rl := newRateLimiter(5)
	base := time.Now()

	for i := 0; i < 100; i++ {
		rl.get(fmt.Sprintf("10.0.0.%d", i), base)
	}
	rl.get("10.0.1.1", base.Add(time.Hour))

	remaining := rl.evictIdle(base.Add(30 * time.Minute))
	if remaining != 1 {
		t.Fatalf("remaining limiters = %d, want 1", remaining)
	}
	if _, ok := rl.limiters["10.0.1.1"]; !ok {
		t.Error("recently seen client was evicted")
	}
}

func TestRateLimiterRecreatesEvictedClient(t *testing.T) {
	rl := newRateLimiter(1)
	now := time.Now()

	if !rl.get("10.0.0.1", now).Allow() {
		t.Fatal("first request denied")
	}
	if rl.get("10.0.0.1", now).Allow() {
		t.Fatal("second request allowed, want limited")
	}

	rl.evictIdle(now.Add(time.Second))

	if !rl.get("10.0.0.1", now.Add(2*time.Second)).Allow() {
		t.Error("request after eviction denied, want a fresh bucket")
	}
}

func TestRateLimiterCleanupRunsUntilCancelled(t *testing.T) {
	rl := newRateLimiter(5)
	rl.get("10.0.0.1", time.Now().Add(-time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl.startCleanup(ctx, 5*time.Millisecond, time.Minute)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		rl.mu.Lock()
		n := len(rl.limiters)
		rl.mu.Unlock()
		if n == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("idle limiter was not evicted by the cleanup loop")
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := newRateLimiter(0)
	for i := 0; i < 1000; i++ {
		if !rl.get("10.0.0.1", time.Now()).Allow() {
			t.Fatalf("request %d denied with limiting disabled", i)
		}
	}
}
