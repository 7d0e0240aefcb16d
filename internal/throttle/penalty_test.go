package throttle

import (
	"testing"
	"time"
)

func TestRecordViolation_Escalation(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	wantCooldowns := []int{30, 90, 150}

	var ps PenaltyState
	for i, want := range wantCooldowns {
		var cooldown int
		ps, cooldown = RecordViolation(ps, now)

		if ps.Violations != i+1 {
			t.Fatalf("violation %d: count = %d, want %d", i+1, ps.Violations, i+1)
		}
		if cooldown != want {
			t.Errorf("violation %d: cooldown = %ds, want %ds", i+1, cooldown, want)
		}

		wantBlocked := i+1 >= BlockThreshold
		if ps.IsBlocked != wantBlocked {
			t.Errorf("violation %d: blocked = %v, want %v", i+1, ps.IsBlocked, wantBlocked)
		}
	}
}

func TestRecordViolation_BlockedExactlyAtThreshold(t *testing.T) {
	now := time.Now()

	ps := PenaltyState{}
	for i := 0; i < BlockThreshold-1; i++ {
		ps, _ = RecordViolation(ps, now)
		if ps.IsBlocked {
			t.Fatalf("blocked after %d violations, threshold is %d", ps.Violations, BlockThreshold)
		}
	}

	ps, _ = RecordViolation(ps, now)
	if !ps.IsBlocked {
		t.Fatalf("not blocked after %d violations", ps.Violations)
	}
}

func TestRecordViolation_SetsLastViolationAt(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	ps, _ := RecordViolation(PenaltyState{}, now)
	if !ps.LastViolationAt.Equal(now) {
		t.Errorf("LastViolationAt = %v, want %v", ps.LastViolationAt, now)
	}
}

func TestReset(t *testing.T) {
	ps := PenaltyState{Violations: 5, LastViolationAt: time.Now(), IsBlocked: true}

	ps = Reset()
	if ps.Violations != 0 || ps.IsBlocked || !ps.LastViolationAt.IsZero() {
		t.Errorf("Reset() = %+v, want zero state", ps)
	}
}
