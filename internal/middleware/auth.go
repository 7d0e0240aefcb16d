package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/amar19818/askroom/internal/model"
)

// SessionValidator resolves a session token to a live session.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (model.Session, error)
}

// RequireAdmin guards admin routes. The session token comes from the
// X-Session-Token header; the resolved session is stored in locals under
// "session" for handlers that need the admin's identity.
func RequireAdmin(sessions SessionValidator) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Get("X-Session-Token")
		if token == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Missing session token")
		}

		sess, err := sessions.Validate(c.Context(), token)
		if err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired session")
		}
		if sess.UserType != "admin" {
			return ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "Admin access required")
		}

		c.Locals("session", sess)
		return c.Next()
	}
}
