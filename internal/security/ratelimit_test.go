package security

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	defer rl.Stop()

	if !rl.AllowPlayer(1) || !rl.AllowPlayer(1) {
		t.Fatal("first two requests should be allowed")
	}
	if rl.AllowPlayer(1) {
		t.Error("third request within the window should be limited")
	}
	if !rl.AllowPlayer(2) {
		t.Error("other players have their own bucket")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)
	defer rl.Stop()

	if !rl.Allow("a") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("a") {
		t.Fatal("second request should be limited")
	}
	time.Sleep(30 * time.Millisecond)
	if !rl.Allow("a") {
		t.Error("bucket should refill after the window")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0, time.Second)
	defer rl.Stop()

	for i := 0; i < 100; i++ {
		if !rl.Allow("a") {
			t.Fatalf("request %d limited with limiting disabled", i)
		}
	}
}

func TestRateLimiterPrune(t *testing.T) {
	rl := NewRateLimiter(1, time.Millisecond)
	defer rl.Stop()

	rl.Allow("stale")
	rl.prune(time.Now().Add(time.Second))

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	if len(rl.visitors) != 0 {
		t.Errorf("expected stale visitor to be pruned, have %d", len(rl.visitors))
	}
}

func TestGenerateSessionID(t *testing.T) {
	a, b := GenerateSessionID(), GenerateSessionID()
	if a == b {
		t.Error("session ids should be unique")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string, got %q", a)
	}
}
