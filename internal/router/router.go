package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/amar19818/askroom/internal/handler"
	"github.com/amar19818/askroom/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Question *handler.QuestionHandler
	Room     *handler.RoomHandler
	Auth     *handler.AuthHandler
	Admin    *handler.AdminHandler
	Stats    *handler.StatsHandler
	Sync     *handler.SyncHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, sessions middleware.SessionValidator, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics (before the API group, no auth)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api")

	submitLimit := middleware.NewQuestionSubmitRateLimiter().Handler()
	upvoteLimit := middleware.NewUpvoteRateLimiter().Handler()
	listLimit := middleware.NewListRateLimiter().Handler()
	authLimit := middleware.NewAuthRateLimiter().Handler()
	syncLimit := middleware.NewSyncRateLimiter().Handler()
	admin := middleware.RequireAdmin(sessions)

	// Auth routes
	api.Post("/auth/register", h.Auth.Register, authLimit)
	api.Post("/auth/login", h.Auth.Login, authLimit)
	api.Post("/auth/logout", h.Auth.Logout)

	// Room routes
	api.Get("/rooms", h.Room.List, listLimit)
	api.Get("/rooms/:shareLink", h.Room.GetByShareLink, listLimit)
	api.Post("/rooms", h.Room.Create, admin)
	api.Post("/rooms/:roomId/pause", h.Room.Pause, admin)
	api.Post("/rooms/:roomId/resume", h.Room.Resume, admin)
	api.Delete("/rooms/:roomId", h.Room.Terminate, admin)

	// Question routes
	api.Get("/rooms/:roomId/questions", h.Question.ListByRoom, listLimit)
	api.Post("/rooms/:roomId/questions", h.Question.Submit, submitLimit)
	api.Post("/questions/:questionId/upvote", h.Question.Upvote, upvoteLimit)
	api.Get("/submitters/:submitterId/cooldown", h.Question.CooldownStatus)

	// Admin moderation routes
	api.Post("/admin/questions/:questionId/approve", h.Admin.ApproveQuestion, admin)
	api.Post("/admin/questions/:questionId/reject", h.Admin.RejectQuestion, admin)
	api.Post("/admin/submitters/:submitterId/reset", h.Admin.ResetSubmitter, admin)

	// Stats and sync routes
	api.Get("/stats", h.Stats.GetStats)
	api.Get("/sync/delta", h.Sync.DeltaSync, syncLimit)
	api.Get("/events", h.Sync.Events)
}
