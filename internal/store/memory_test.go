package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/throttle"
)

func TestMemoryStorePenaltyRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	ps, err := s.PenaltyState(ctx, "aaaa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ps.Violations != 0 || ps.IsBlocked {
		t.Errorf("fresh submitter should have zero state, got %+v", ps)
	}

	saved := throttle.PenaltyState{Violations: 2, LastViolationAt: time.Now()}
	if err := s.SavePenaltyState(ctx, "aaaa", saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, _ := s.PenaltyState(ctx, "aaaa")
	if got.Violations != 2 {
		t.Errorf("Violations = %d, want 2", got.Violations)
	}
}

func TestMemoryStoreClearSubmitter(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.SavePenaltyState(ctx, "aaaa", throttle.PenaltyState{Violations: 3, IsBlocked: true})
	s.SaveCooldownState(ctx, "aaaa", throttle.CooldownState{LastSubmitAt: time.Now(), CooldownSeconds: 150})

	if err := s.ClearSubmitter(ctx, "aaaa"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	ps, _ := s.PenaltyState(ctx, "aaaa")
	if ps.Violations != 0 || ps.IsBlocked {
		t.Errorf("penalty state should be cleared, got %+v", ps)
	}
	cs, _ := s.CooldownState(ctx, "aaaa")
	if cs.CooldownSeconds != 0 {
		t.Errorf("cooldown state should be cleared, got %+v", cs)
	}
}

func TestMemoryStoreUpvoteLedger(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	has, err := s.HasUpvoted(ctx, "aaaa", "q-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if has {
		t.Error("fresh ledger should not contain q-1")
	}

	if err := s.RecordUpvote(ctx, "aaaa", "q-1"); err != nil {
		t.Fatalf("record: %v", err)
	}

	has, _ = s.HasUpvoted(ctx, "aaaa", "q-1")
	if !has {
		t.Error("ledger should contain q-1 after record")
	}

	// A different submitter's ledger is independent.
	has, _ = s.HasUpvoted(ctx, "bbbb", "q-1")
	if has {
		t.Error("ledger entries must be scoped per submitter")
	}
}

func TestMemoryStoreSessionExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Session(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("unknown token: got %v, want ErrSessionNotFound", err)
	}

	live := model.Session{Token: "tok-live", UserID: "u1", UserType: "admin",
		ExpiresAt: time.Now().Add(time.Hour)}
	if err := s.SaveSession(ctx, live); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Session(ctx, "tok-live")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.UserType != "admin" {
		t.Errorf("UserType = %q, want admin", got.UserType)
	}

	expired := model.Session{Token: "tok-old", UserID: "u2", UserType: "student",
		ExpiresAt: time.Now().Add(-time.Minute)}
	s.SaveSession(ctx, expired)
	if _, err := s.Session(ctx, "tok-old"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired token: got %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStoreDeleteSession(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.SaveSession(ctx, model.Session{Token: "tok", UserID: "u1", UserType: "student",
		ExpiresAt: time.Now().Add(time.Hour)})

	if err := s.DeleteSession(ctx, "tok"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Session(ctx, "tok"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("deleted token: got %v, want ErrSessionNotFound", err)
	}
}
