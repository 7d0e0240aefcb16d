package throttle

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestCountdownRegistry_FiresOnce(t *testing.T) {
	r := NewCountdownRegistry()

	var fired atomic.Int32
	r.Arm("sub-a", 20*time.Millisecond, func() { fired.Add(1) })

	time.Sleep(60 * time.Millisecond)

	if got := fired.Load(); got != 1 {
		t.Errorf("onExpire fired %d times, want 1", got)
	}
	if r.Active("sub-a") {
		t.Error("countdown still active after expiry")
	}
}

func TestCountdownRegistry_RearmCancelsPrevious(t *testing.T) {
	r := NewCountdownRegistry()

	var first, second atomic.Int32
	r.Arm("sub-a", 30*time.Millisecond, func() { first.Add(1) })
	r.Arm("sub-a", 30*time.Millisecond, func() { second.Add(1) })

	time.Sleep(80 * time.Millisecond)

	if got := first.Load(); got != 0 {
		t.Errorf("replaced countdown fired %d times, want 0", got)
	}
	if got := second.Load(); got != 1 {
		t.Errorf("current countdown fired %d times, want 1", got)
	}
}

func TestCountdownRegistry_Cancel(t *testing.T) {
	r := NewCountdownRegistry()

	var fired atomic.Int32
	r.Arm("sub-a", 30*time.Millisecond, func() { fired.Add(1) })
	r.Cancel("sub-a")

	if r.Active("sub-a") {
		t.Error("countdown active after Cancel")
	}

	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("cancelled countdown fired %d times, want 0", got)
	}
}

func TestCountdownRegistry_KeysIndependent(t *testing.T) {
	r := NewCountdownRegistry()

	var a, b atomic.Int32
	r.Arm("sub-a", 20*time.Millisecond, func() { a.Add(1) })
	r.Arm("sub-b", 20*time.Millisecond, func() { b.Add(1) })
	r.Cancel("sub-a")

	time.Sleep(60 * time.Millisecond)

	if a.Load() != 0 {
		t.Error("cancelled key fired")
	}
	if b.Load() != 1 {
		t.Error("independent key did not fire")
	}
}

func TestCountdownRegistry_Remaining(t *testing.T) {
	r := NewCountdownRegistry()

	if got := r.Remaining("missing"); got != 0 {
		t.Errorf("Remaining for missing key = %v, want 0", got)
	}

	r.Arm("sub-a", 500*time.Millisecond, nil)
	got := r.Remaining("sub-a")
	if got <= 0 || got > 500*time.Millisecond {
		t.Errorf("Remaining = %v, want (0, 500ms]", got)
	}
}
