package throttle

import (
	"testing"
	"time"
)

func TestCanSubmitNow_NoCooldown(t *testing.T) {
	tests := []struct {
		name string
		cs   CooldownState
	}{
		{"zero value state", CooldownState{}},
		{"zero cooldown seconds", CooldownState{LastSubmitAt: time.Now(), CooldownSeconds: 0}},
		{"negative cooldown seconds", CooldownState{LastSubmitAt: time.Now(), CooldownSeconds: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanSubmitNow(tt.cs, time.Now())
			if !d.Allowed {
				t.Errorf("CanSubmitNow() allowed = false, want true")
			}
			if d.RemainingSeconds != 0 {
				t.Errorf("CanSubmitNow() remaining = %d, want 0", d.RemainingSeconds)
			}
		})
	}
}

func TestCanSubmitNow_Arithmetic(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	cs := CooldownState{LastSubmitAt: base, CooldownSeconds: 30}

	tests := []struct {
		name          string
		elapsed       time.Duration
		wantAllowed   bool
		wantRemaining int
	}{
		{"immediately after submit", 0, false, 30},
		{"1s in", 1 * time.Second, false, 29},
		{"29s in", 29 * time.Second, false, 1},
		{"29.5s in rounds up", 29*time.Second + 500*time.Millisecond, false, 1},
		{"exactly 30s", 30 * time.Second, true, 0},
		{"well past the window", 5 * time.Minute, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanSubmitNow(cs, base.Add(tt.elapsed))
			if d.Allowed != tt.wantAllowed {
				t.Errorf("allowed = %v, want %v", d.Allowed, tt.wantAllowed)
			}
			if d.RemainingSeconds != tt.wantRemaining {
				t.Errorf("remaining = %d, want %d", d.RemainingSeconds, tt.wantRemaining)
			}
		})
	}
}

func TestArm(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	cs := Arm(now, 90)
	if !cs.LastSubmitAt.Equal(now) {
		t.Errorf("LastSubmitAt = %v, want %v", cs.LastSubmitAt, now)
	}
	if cs.CooldownSeconds != 90 {
		t.Errorf("CooldownSeconds = %d, want 90", cs.CooldownSeconds)
	}

	d := CanSubmitNow(cs, now.Add(89*time.Second))
	if d.Allowed || d.RemainingSeconds != 1 {
		t.Errorf("89s into a 90s cooldown: allowed=%v remaining=%d, want false/1", d.Allowed, d.RemainingSeconds)
	}
}
