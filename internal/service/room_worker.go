package service

import (
	"context"
	"log"
	"time"

	"github.com/amar19818/askroom/internal/repository"
)

// RoomWorker is a periodic background job that deactivates rooms whose
// expiry time has passed.
type RoomWorker struct {
	rooms    *repository.RoomRepo
	interval time.Duration
	stopCh   chan struct{}
}

// NewRoomWorker creates a worker that ticks every interval.
func NewRoomWorker(rooms *repository.RoomRepo, interval time.Duration) *RoomWorker {
	return &RoomWorker{
		rooms:    rooms,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the expiry loop. It runs one tick immediately, then every
// interval.
func (w *RoomWorker) Start(ctx context.Context) {
	log.Printf("room-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("room-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("room-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *RoomWorker) Stop() {
	close(w.stopCh)
}

func (w *RoomWorker) tick(ctx context.Context) {
	closed, err := w.rooms.DeactivateExpired(ctx)
	if err != nil {
		log.Printf("room-worker: deactivate expired rooms failed: %v", err)
		return
	}
	if closed > 0 {
		log.Printf("room-worker: closed %d expired rooms", closed)
	}
}
