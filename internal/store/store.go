// Package store persists per-submitter state: penalty counters, cooldowns,
// the upvote ledger, and auth sessions. The backing store only needs to be a
// durable per-client key-value space; the Redis implementation is the default
// and the in-memory one backs tests and single-node dev setups.
package store

import (
	"context"
	"errors"

	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/throttle"
)

// ErrSessionNotFound is returned when a session token is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// StateStore is the persistence boundary for the submission gate and the
// upvote handler. Unparseable persisted state is never an error: it reads
// back as the zero value ("no cooldown active", "no violations").
type StateStore interface {
	// Penalty state, one record per submitter.
	PenaltyState(ctx context.Context, submitterID string) (throttle.PenaltyState, error)
	SavePenaltyState(ctx context.Context, submitterID string, ps throttle.PenaltyState) error

	// Cooldown state, one record per submitter.
	CooldownState(ctx context.Context, submitterID string) (throttle.CooldownState, error)
	SaveCooldownState(ctx context.Context, submitterID string, cs throttle.CooldownState) error

	// ClearSubmitter removes penalty and cooldown state (administrative reset).
	ClearSubmitter(ctx context.Context, submitterID string) error

	// Upvote ledger: a grow-only per-submitter set of question IDs.
	HasUpvoted(ctx context.Context, submitterID, questionID string) (bool, error)
	RecordUpvote(ctx context.Context, submitterID, questionID string) error

	// Auth sessions, expiring at Session.ExpiresAt.
	SaveSession(ctx context.Context, s model.Session) error
	Session(ctx context.Context, token string) (model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}
