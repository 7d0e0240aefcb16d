package middleware

import (
	"fmt"
	"testing"
	"time"
)

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    5,
		Window: time.Minute,
	})

	for i := 0; i < 5; i++ {
		if !rl.Allow("submitter:abc") {
			t.Errorf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    3,
		Window: time.Minute,
	})

	for i := 0; i < 3; i++ {
		rl.Allow("ip:1.2.3.4")
	}

	if rl.Allow("ip:1.2.3.4") {
		t.Error("4th request should be blocked")
	}
}

func TestRateLimiterSeparateKeys(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: time.Minute,
	})

	rl.Allow("submitter:aaa")
	rl.Allow("submitter:aaa")

	if rl.Allow("submitter:aaa") {
		t.Error("submitter aaa should be over limit")
	}
	if !rl.Allow("submitter:bbb") {
		t.Error("submitter bbb should be allowed")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    1,
		Window: 10 * time.Millisecond,
	})

	if !rl.Allow("ip:1.2.3.4") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("ip:1.2.3.4") {
		t.Fatal("second request should be blocked")
	}

	time.Sleep(15 * time.Millisecond)

	if !rl.Allow("ip:1.2.3.4") {
		t.Error("request after window reset should be allowed")
	}
}

func TestRateLimiterManyKeys(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    1,
		Window: time.Minute,
	})

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("submitter:%d", i)
		if !rl.Allow(key) {
			t.Errorf("first request for %s should be allowed", key)
		}
	}
}
