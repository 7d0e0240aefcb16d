package model

import "time"

// Room is a live Q&A session that questions are submitted into.
type Room struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ShareLink   string     `json:"shareLink"`
	IsActive    bool       `json:"isActive"`
	IsPaused    bool       `json:"isPaused"`
	CreatedBy   *string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// CreateRoomRequest is the API request body for creating a room.
// ExpiresInHours of 0 means the room never expires.
type CreateRoomRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	ExpiresInHours int    `json:"expiresInHours,omitempty"`
}
