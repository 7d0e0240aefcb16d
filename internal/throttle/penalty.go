package throttle

import "time"

const (
	// BlockThreshold is the violation count at which a submitter is
	// permanently blocked (until an administrative reset).
	BlockThreshold = 3

	// Escalation: 30s base, +60s per further violation up to the block.
	firstViolationCooldown  = 30
	secondViolationCooldown = 90
	thirdViolationCooldown  = 150
)

// PenaltyState tracks moderation rejections for one submitter.
// Invariant: IsBlocked == (Violations >= BlockThreshold).
type PenaltyState struct {
	Violations      int       `json:"violations"`
	LastViolationAt time.Time `json:"lastViolationAt,omitzero"`
	IsBlocked       bool      `json:"isBlocked"`
}

// RecordViolation increments the violation count and returns the new state
// together with the cooldown to arm. Once the returned state is blocked the
// cooldown value is irrelevant: the submission gate must short-circuit before
// ever reaching the moderator again.
func RecordViolation(ps PenaltyState, now time.Time) (PenaltyState, int) {
	ps.Violations++
	ps.LastViolationAt = now
	ps.IsBlocked = ps.Violations >= BlockThreshold

	return ps, cooldownFor(ps.Violations)
}

// cooldownFor maps the post-increment violation count to seconds of cooldown.
func cooldownFor(violations int) int {
	switch violations {
	case 1:
		return firstViolationCooldown
	case 2:
		return secondViolationCooldown
	default:
		return thirdViolationCooldown
	}
}

// Reset clears all violations and the block. This is the explicit
// administrative unblock; no automatic decay exists.
func Reset() PenaltyState {
	return PenaltyState{}
}
