package throttle

import (
	"math"
	"time"
)

// BaseCooldownSeconds is the wait applied after every accepted submission.
const BaseCooldownSeconds = 30

// CooldownState tracks when a submitter last acted and how long they must wait.
// The zero value means no cooldown is active, which is also how unparseable
// persisted state is treated.
type CooldownState struct {
	LastSubmitAt    time.Time `json:"lastSubmitAt"`
	CooldownSeconds int       `json:"cooldownSeconds"`
}

// Decision is the result of a rate-limit check.
type Decision struct {
	Allowed          bool
	RemainingSeconds int
}

// CanSubmitNow reports whether a submitter may act at the given instant.
// remaining = ceil(cooldownSeconds - (now - lastSubmitAt)), floored at 0
// for display; allowed exactly when remaining <= 0.
func CanSubmitNow(cs CooldownState, now time.Time) Decision {
	if cs.LastSubmitAt.IsZero() || cs.CooldownSeconds <= 0 {
		return Decision{Allowed: true}
	}

	elapsed := now.Sub(cs.LastSubmitAt).Seconds()
	remaining := float64(cs.CooldownSeconds) - elapsed
	if remaining <= 0 {
		return Decision{Allowed: true}
	}

	return Decision{
		Allowed:          false,
		RemainingSeconds: int(math.Ceil(remaining)),
	}
}

// Arm returns the cooldown state for a submission accepted at now.
// Callers use the Penalty Tracker's escalated value after a rejection
// and BaseCooldownSeconds after a successful submission.
func Arm(now time.Time, cooldownSeconds int) CooldownState {
	return CooldownState{
		LastSubmitAt:    now,
		CooldownSeconds: cooldownSeconds,
	}
}
