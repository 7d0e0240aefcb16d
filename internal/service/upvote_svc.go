package service

import (
	"context"
	"fmt"
	"log"

	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/store"
)

// UpvoteIncrementer is the slice of the question store the upvote handler
// needs: an atomic increment-by-one owned by the store.
type UpvoteIncrementer interface {
	IncrementUpvote(ctx context.Context, questionID string) (model.Question, error)
	FindByID(ctx context.Context, questionID string) (model.Question, error)
}

// UpvoteService applies upvotes guarded by the per-submitter ledger.
type UpvoteService struct {
	questions UpvoteIncrementer
	state     store.StateStore
}

func NewUpvoteService(questions UpvoteIncrementer, state store.StateStore) *UpvoteService {
	return &UpvoteService{questions: questions, state: state}
}

// Upvote increments a question's counter once per submitter. A repeat call
// for the same question is an idempotent no-op that never reaches the store.
// The ledger is only written after the store confirms the increment, so a
// failed increment stays retryable.
func (s *UpvoteService) Upvote(ctx context.Context, submitterID, questionID string) (*model.UpvoteResponse, error) {
	already, err := s.state.HasUpvoted(ctx, submitterID, questionID)
	if err != nil {
		return nil, fmt.Errorf("read upvote ledger: %w", err)
	}
	if already {
		q, err := s.questions.FindByID(ctx, questionID)
		if err != nil {
			return nil, fmt.Errorf("find question: %w", err)
		}
		return &model.UpvoteResponse{
			QuestionID:     questionID,
			Upvotes:        q.Upvotes,
			AlreadyUpvoted: true,
		}, nil
	}

	q, err := s.questions.IncrementUpvote(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("increment upvote: %w", err)
	}

	if err := s.state.RecordUpvote(ctx, submitterID, questionID); err != nil {
		// The increment landed but the ledger write failed; surfacing an
		// error here would invite a double vote on retry, so log and
		// return the new count.
		log.Printf("upvote: ledger write for %s/%s failed: %v", submitterID, questionID, err)
	}

	return &model.UpvoteResponse{QuestionID: questionID, Upvotes: q.Upvotes}, nil
}
