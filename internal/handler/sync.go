package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"

	"github.com/amar19818/askroom/internal/middleware"
	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/repository"
	"github.com/amar19818/askroom/internal/service"
)

// keepAliveInterval is how often the event stream sends a comment line to
// keep intermediaries from closing an idle connection.
const keepAliveInterval = 25 * time.Second

type SyncHandler struct {
	questions *repository.QuestionRepo
	feed      *service.FeedWorker
}

func NewSyncHandler(questions *repository.QuestionRepo, feed *service.FeedWorker) *SyncHandler {
	return &SyncHandler{questions: questions, feed: feed}
}

// DeltaSync handles GET /api/sync/delta?since=TIMESTAMP
func (h *SyncHandler) DeltaSync(c fiber.Ctx) error {
	sinceStr := fiber.Query[string](c, "since")
	if sinceStr == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_PARAM",
			"since query parameter is required (RFC3339 timestamp)")
	}

	since, err := time.Parse(time.RFC3339, sinceStr)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM",
			"since must be a valid RFC3339 timestamp")
	}

	questions, err := h.questions.ChangedSince(c.Context(), since)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch delta sync")
	}

	return c.JSON(model.SyncDeltaResponse{
		Questions:     questions,
		SyncTimestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Events handles GET /api/events — the live question feed as server-sent
// events. An optional roomId query parameter narrows the stream to one room.
func (h *SyncHandler) Events(c fiber.Ctx) error {
	roomID := fiber.Query[string](c, "roomId")

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	events, cancel := h.feed.Subscribe()
	reqCtx := c.RequestCtx()

	reqCtx.SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		// Initial comment confirms the stream is open before any event.
		fmt.Fprint(w, ": connected\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		keepAlive := time.NewTicker(keepAliveInterval)
		defer keepAlive.Stop()

		for {
			select {
			case <-reqCtx.Done():
				return

			case <-keepAlive.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				if err := w.Flush(); err != nil {
					return
				}

			case ev, ok := <-events:
				if !ok {
					return
				}
				if roomID != "" && ev.Question.RoomID != roomID {
					continue
				}
				if err := writeEvent(w, ev); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

func writeEvent(w *bufio.Writer, ev model.QuestionEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Action, data); err != nil {
		return err
	}
	return w.Flush()
}
