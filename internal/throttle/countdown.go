package throttle

import (
	"sync"
	"time"
)

// CountdownRegistry keeps at most one live countdown timer per key.
// Arming a new countdown always cancels the previous one first, so two
// timers can never race to flip a submitter's allowed state.
type CountdownRegistry struct {
	mu     sync.Mutex
	timers map[string]*countdown
}

type countdown struct {
	timer     *time.Timer
	expiresAt time.Time
}

// NewCountdownRegistry creates an empty registry.
func NewCountdownRegistry() *CountdownRegistry {
	return &CountdownRegistry{timers: make(map[string]*countdown)}
}

// Arm starts a single-shot countdown for key, replacing any countdown that
// is already running. onExpire runs once, after the duration elapses, unless
// the countdown is cancelled or replaced first.
func (r *CountdownRegistry) Arm(key string, d time.Duration, onExpire func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.timers[key]; ok {
		existing.timer.Stop()
	}

	cd := &countdown{expiresAt: time.Now().Add(d)}
	cd.timer = time.AfterFunc(d, func() {
		r.mu.Lock()
		// A rearm may have replaced this countdown while the callback was
		// already queued; if so it no longer owns the key and stays silent.
		current, ok := r.timers[key]
		owns := ok && current == cd
		if owns {
			delete(r.timers, key)
		}
		r.mu.Unlock()

		if owns && onExpire != nil {
			onExpire()
		}
	})
	r.timers[key] = cd
}

// Cancel stops and removes the countdown for key, if any.
func (r *CountdownRegistry) Cancel(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cd, ok := r.timers[key]; ok {
		cd.timer.Stop()
		delete(r.timers, key)
	}
}

// Active reports whether a countdown is currently running for key.
func (r *CountdownRegistry) Active(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.timers[key]
	return ok
}

// Remaining returns the time left on the countdown for key, or zero if none
// is running.
func (r *CountdownRegistry) Remaining(key string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	cd, ok := r.timers[key]
	if !ok {
		return 0
	}
	if left := time.Until(cd.expiresAt); left > 0 {
		return left
	}
	return 0
}
