package service

import (
	"context"
	"errors"
	"testing"

	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/store"
)

type fakeUpvoteStore struct {
	counts     map[string]int
	increments int
	failNext   bool
}

func newFakeUpvoteStore() *fakeUpvoteStore {
	return &fakeUpvoteStore{counts: map[string]int{"q-1": 4}}
}

func (f *fakeUpvoteStore) IncrementUpvote(_ context.Context, questionID string) (model.Question, error) {
	if f.failNext {
		f.failNext = false
		return model.Question{}, errors.New("connection refused")
	}
	if _, ok := f.counts[questionID]; !ok {
		return model.Question{}, errors.New("no rows in result set")
	}
	f.counts[questionID]++
	f.increments++
	return model.Question{ID: questionID, Upvotes: f.counts[questionID]}, nil
}

func (f *fakeUpvoteStore) FindByID(_ context.Context, questionID string) (model.Question, error) {
	count, ok := f.counts[questionID]
	if !ok {
		return model.Question{}, errors.New("no rows in result set")
	}
	return model.Question{ID: questionID, Upvotes: count}, nil
}

func TestUpvote_IncrementsOnce(t *testing.T) {
	questions := newFakeUpvoteStore()
	svc := NewUpvoteService(questions, store.NewMemoryStore())

	res, err := svc.Upvote(context.Background(), testSubmitter, "q-1")
	if err != nil {
		t.Fatalf("Upvote() error: %v", err)
	}
	if res.Upvotes != 5 || res.AlreadyUpvoted {
		t.Errorf("result = %+v, want 5 upvotes, not already upvoted", res)
	}
}

func TestUpvote_Idempotent(t *testing.T) {
	questions := newFakeUpvoteStore()
	svc := NewUpvoteService(questions, store.NewMemoryStore())

	if _, err := svc.Upvote(context.Background(), testSubmitter, "q-1"); err != nil {
		t.Fatalf("first Upvote() error: %v", err)
	}

	res, err := svc.Upvote(context.Background(), testSubmitter, "q-1")
	if err != nil {
		t.Fatalf("second Upvote() error: %v", err)
	}
	if !res.AlreadyUpvoted {
		t.Error("second upvote not reported as duplicate")
	}
	if res.Upvotes != 5 {
		t.Errorf("count after duplicate = %d, want 5", res.Upvotes)
	}
	if questions.increments != 1 {
		t.Errorf("store incremented %d times, want exactly 1", questions.increments)
	}
}

func TestUpvote_DifferentSubmittersCount(t *testing.T) {
	questions := newFakeUpvoteStore()
	svc := NewUpvoteService(questions, store.NewMemoryStore())

	svc.Upvote(context.Background(), "aaaaaaaaaaaaaaaa", "q-1")
	res, err := svc.Upvote(context.Background(), "bbbbbbbbbbbbbbbb", "q-1")
	if err != nil {
		t.Fatalf("Upvote() error: %v", err)
	}
	if res.Upvotes != 6 {
		t.Errorf("count = %d, want 6 (two distinct submitters)", res.Upvotes)
	}
}

func TestUpvote_StoreFailureLeavesLedgerUntouched(t *testing.T) {
	questions := newFakeUpvoteStore()
	st := store.NewMemoryStore()
	svc := NewUpvoteService(questions, st)

	questions.failNext = true
	if _, err := svc.Upvote(context.Background(), testSubmitter, "q-1"); err == nil {
		t.Fatal("Upvote() error = nil, want store failure")
	}

	if voted, _ := st.HasUpvoted(context.Background(), testSubmitter, "q-1"); voted {
		t.Fatal("ledger recorded an upvote that never landed")
	}

	// The retry must still be able to increment.
	res, err := svc.Upvote(context.Background(), testSubmitter, "q-1")
	if err != nil {
		t.Fatalf("retry Upvote() error: %v", err)
	}
	if res.Upvotes != 5 || res.AlreadyUpvoted {
		t.Errorf("retry result = %+v, want a fresh increment to 5", res)
	}
}
