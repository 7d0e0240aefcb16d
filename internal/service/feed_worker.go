package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/repository"
)

// FeedWorker listens for PostgreSQL NOTIFY on the 'question_changes' channel
// and fans question events out to subscribed clients. Delivery is
// at-least-once: a reconnect can replay events, so consumers de-duplicate by
// question id.
type FeedWorker struct {
	pool      *pgxpool.Pool
	questions *repository.QuestionRepo

	mu     sync.Mutex
	nextID int
	subs   map[int]chan model.QuestionEvent
}

// NewFeedWorker creates a change-feed worker.
func NewFeedWorker(pool *pgxpool.Pool, questions *repository.QuestionRepo) *FeedWorker {
	return &FeedWorker{
		pool:      pool,
		questions: questions,
		subs:      make(map[int]chan model.QuestionEvent),
	}
}

// Subscribe registers a consumer. The returned cancel func must be called
// when the consumer goes away; events a slow consumer can't keep up with are
// dropped rather than blocking the fan-out.
func (w *FeedWorker) Subscribe() (<-chan model.QuestionEvent, func()) {
	ch := make(chan model.QuestionEvent, 32)

	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = ch
	w.mu.Unlock()

	cancel := func() {
		w.mu.Lock()
		if sub, ok := w.subs[id]; ok {
			delete(w.subs, id)
			close(sub)
		}
		w.mu.Unlock()
	}
	return ch, cancel
}

// Start begins listening for question_changes notifications. It reconnects
// with backoff until the context is cancelled.
func (w *FeedWorker) Start(ctx context.Context) {
	log.Println("feed-worker: starting")

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("feed-worker: stopping (context cancelled)")
				return
			}
			log.Printf("feed-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("feed-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on question_changes,
// and dispatches each notification.
func (w *FeedWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN question_changes")
	if err != nil {
		return err
	}
	log.Println("feed-worker: listening on question_changes")

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		w.dispatch(ctx, notification.Payload)
	}
}

// dispatch decodes an "action:questionID" payload, loads the question, and
// broadcasts it. Unknown payloads are dropped with a log line.
func (w *FeedWorker) dispatch(ctx context.Context, payload string) {
	action, questionID, ok := strings.Cut(payload, ":")
	if !ok || questionID == "" {
		log.Printf("feed-worker: malformed payload %q", payload)
		return
	}

	q, err := w.questions.FindByID(ctx, questionID)
	if err != nil {
		log.Printf("feed-worker: load question %s failed: %v", questionID, err)
		return
	}

	event := model.QuestionEvent{Action: action, Question: q}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, sub := range w.subs {
		select {
		case sub <- event:
		default:
			// Slow consumer; it will catch up through delta sync.
		}
	}
}
