package service

import "errors"

var (
	// ErrSubmissionInFlight means this submitter already has a submission
	// being checked; the caller retries once it completes.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrModerationUnavailable wraps a failed moderator call. Transient:
	// nothing was persisted and the attempt is safe to retry immediately.
	ErrModerationUnavailable = errors.New("moderation service unavailable")

	// ErrRoomClosed means the room is inactive (terminated or expired).
	ErrRoomClosed = errors.New("room is closed")

	// ErrRoomPaused means the room is not accepting questions right now.
	ErrRoomPaused = errors.New("room is paused")
)
