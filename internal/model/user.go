package model

import "time"

// Student is an attendee account. Passwords are stored in plaintext on
// purpose: this is a demo login, not a security boundary.
type Student struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	CollegeName string    `json:"collegeName"`
	PhoneNumber string    `json:"phoneNumber"`
	Password    string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Admin is a moderator account identified by username.
type Admin struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is an issued auth session, stored server-side with a TTL.
type Session struct {
	Token     string    `json:"sessionToken"`
	UserID    string    `json:"userId"`
	UserType  string    `json:"userType"` // "student" or "admin"
	ExpiresAt time.Time `json:"expiresAt"`
}

// RegisterRequest is the API request body for student registration.
type RegisterRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	CollegeName string `json:"collegeName"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// LoginRequest is the API request body for logging in. For admin logins the
// Email field carries the username.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// StatsResponse is the API response for global statistics.
type StatsResponse struct {
	TotalRooms     int `json:"totalRooms"`
	ActiveRooms    int `json:"activeRooms"`
	TotalQuestions int `json:"totalQuestions"`
	TotalUpvotes   int `json:"totalUpvotes"`
	TotalStudents  int `json:"totalStudents"`
}
