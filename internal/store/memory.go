package store

import (
	"context"
	"sync"
	"time"

	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/throttle"
)

// MemoryStore is an in-process StateStore used when no Redis is configured
// and throughout the test suite. State does not survive a restart.
type MemoryStore struct {
	mu        sync.Mutex
	penalties map[string]throttle.PenaltyState
	cooldowns map[string]throttle.CooldownState
	upvoted   map[string]map[string]struct{}
	sessions  map[string]model.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		penalties: make(map[string]throttle.PenaltyState),
		cooldowns: make(map[string]throttle.CooldownState),
		upvoted:   make(map[string]map[string]struct{}),
		sessions:  make(map[string]model.Session),
	}
}

func (s *MemoryStore) PenaltyState(_ context.Context, submitterID string) (throttle.PenaltyState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.penalties[submitterID], nil
}

func (s *MemoryStore) SavePenaltyState(_ context.Context, submitterID string, ps throttle.PenaltyState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.penalties[submitterID] = ps
	return nil
}

func (s *MemoryStore) CooldownState(_ context.Context, submitterID string) (throttle.CooldownState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cooldowns[submitterID], nil
}

func (s *MemoryStore) SaveCooldownState(_ context.Context, submitterID string, cs throttle.CooldownState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cooldowns[submitterID] = cs
	return nil
}

func (s *MemoryStore) ClearSubmitter(_ context.Context, submitterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.penalties, submitterID)
	delete(s.cooldowns, submitterID)
	return nil
}

func (s *MemoryStore) HasUpvoted(_ context.Context, submitterID, questionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.upvoted[submitterID][questionID]
	return ok, nil
}

func (s *MemoryStore) RecordUpvote(_ context.Context, submitterID, questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.upvoted[submitterID]
	if !ok {
		set = make(map[string]struct{})
		s.upvoted[submitterID] = set
	}
	set[questionID] = struct{}{}
	return nil
}

func (s *MemoryStore) SaveSession(_ context.Context, sess model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return nil
}

func (s *MemoryStore) Session(_ context.Context, token string) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok || time.Now().After(sess.ExpiresAt) {
		return model.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

func (s *MemoryStore) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
