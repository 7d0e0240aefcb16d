package model

import "time"

// Moderation status values. The automatic moderator runs before insert, so
// questions are normally created approved; pending marks one awaiting manual
// review, and an admin can later move any question between approved and
// rejected (takedown or reinstate).
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Question is a single audience question in a room.
type Question struct {
	ID               string    `json:"id"`
	RoomID           string    `json:"roomId"`
	Text             string    `json:"text"`
	Upvotes          int       `json:"upvotes"`
	ModerationStatus string    `json:"moderationStatus"`
	SubmitterID      string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"-"`
}

// SubmitQuestionRequest is the API request body for submitting a question.
type SubmitQuestionRequest struct {
	Text string `json:"text"`
}

// SubmitQuestionResponse is returned after an accepted submission.
type SubmitQuestionResponse struct {
	Question        Question `json:"question"`
	TextCorrected   bool     `json:"textCorrected"`
	CooldownSeconds int      `json:"cooldownSeconds"`
}

// UpvoteResponse is returned by the upvote endpoint. AlreadyUpvoted is true
// when this submitter's ledger already contained the question, in which case
// Upvotes is the unchanged count.
type UpvoteResponse struct {
	QuestionID     string `json:"questionId"`
	Upvotes        int    `json:"upvotes"`
	AlreadyUpvoted bool   `json:"alreadyUpvoted"`
}

// CooldownResponse reports a submitter's throttle status.
type CooldownResponse struct {
	OnCooldown       bool   `json:"onCooldown"`
	RemainingSeconds int    `json:"remainingSeconds"`
	Blocked          bool   `json:"blocked"`
	Violations       int    `json:"violations"`
	AvailableAt      string `json:"availableAt,omitempty"`
}
