package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/amar19818/askroom/pkg/identity"
)

// Field length limits matching database schema constraints.
const (
	MaxQuestionLen = 200 // questions.text VARCHAR(200)
	MaxRoomNameLen = 128 // rooms.name VARCHAR(128)
	MaxEmailLen    = 255 // students.email VARCHAR(255)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateQuestionText trims the text and enforces the non-empty and length
// rules before anything reaches the submission gate.
func ValidateQuestionText(text string) (string, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "question text is required"
	}
	if len(text) > MaxQuestionLen {
		return "", "question text must be at most 200 characters"
	}
	return text, ""
}

// ValidateSubmitterID checks the X-Submitter-ID header value.
func ValidateSubmitterID(id string) (string, string) {
	return identity.Validate(id)
}

// ValidateUUID checks that a path parameter is a well-formed UUID.
func ValidateUUID(value, field string) (string, string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", field + " is required"
	}
	if _, err := uuid.Parse(value); err != nil {
		return "", field + " must be a valid UUID"
	}
	return value, ""
}

// ValidateRoomName checks a room name on creation.
func ValidateRoomName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "room name is required"
	}
	if len(name) > MaxRoomNameLen {
		return "", "room name must be at most 128 characters"
	}
	return name, ""
}

// ValidateEmail does a minimal well-formedness check; this is a demo login,
// not an email verifier.
func ValidateEmail(email string) (string, string) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", "email is required"
	}
	if len(email) > MaxEmailLen {
		return "", "email must be at most 255 characters"
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return "", "email is not valid"
	}
	return email, ""
}
