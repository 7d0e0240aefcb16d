package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/moderation"
	"github.com/amar19818/askroom/internal/store"
	"github.com/amar19818/askroom/internal/throttle"
)

// Outcome of one pass through the submission gate.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeRejected  Outcome = "rejected"
	OutcomeBlocked   Outcome = "blocked"
	OutcomeThrottled Outcome = "throttled"
)

// Moderator is the external content-review collaborator.
type Moderator interface {
	Review(ctx context.Context, text string) (moderation.Verdict, error)
}

// QuestionInserter is the slice of the question store the gate needs.
type QuestionInserter interface {
	Insert(ctx context.Context, text, status, roomID, submitterID string) (model.Question, error)
}

// RoomFinder resolves a room before the gate runs.
type RoomFinder interface {
	FindByID(ctx context.Context, roomID string) (model.Room, error)
}

// SubmitResult describes how the gate resolved a submission attempt.
type SubmitResult struct {
	Outcome          Outcome
	Question         *model.Question     // set for OutcomeAccepted
	TextCorrected    bool                // moderator rewrote the text
	CooldownSeconds  int                 // cooldown armed by this attempt
	RemainingSeconds int                 // set for OutcomeThrottled
	Reason           string              // set for OutcomeRejected
	Severity         moderation.Severity // set for OutcomeRejected
	Violations       int
	Blocked          bool
}

// SubmissionService runs the submission gate: blocked check, cooldown check,
// moderation, persistence, and penalty escalation, in that order.
type SubmissionService struct {
	questions  QuestionInserter
	rooms      RoomFinder
	state      store.StateStore
	moderator  Moderator
	countdowns *throttle.CountdownRegistry

	// now is swapped out in tests.
	now func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewSubmissionService(questions QuestionInserter, rooms RoomFinder, state store.StateStore,
	moderator Moderator, countdowns *throttle.CountdownRegistry) *SubmissionService {
	return &SubmissionService{
		questions:  questions,
		rooms:      rooms,
		state:      state,
		moderator:  moderator,
		countdowns: countdowns,
		now:        time.Now,
		inFlight:   make(map[string]struct{}),
	}
}

// Submit runs the gate for one submitter and one piece of text.
//
// The ordering is load-bearing: a blocked submitter never reaches the
// moderator, and an attempt refused purely by an active cooldown neither
// calls the moderator nor counts as a violation.
func (s *SubmissionService) Submit(ctx context.Context, roomID, submitterID, text string) (*SubmitResult, error) {
	if !s.acquire(submitterID) {
		return nil, ErrSubmissionInFlight
	}
	defer s.release(submitterID)

	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if !room.IsActive {
		return nil, ErrRoomClosed
	}
	if room.IsPaused {
		return nil, ErrRoomPaused
	}

	penalty, err := s.state.PenaltyState(ctx, submitterID)
	if err != nil {
		return nil, fmt.Errorf("load penalty state: %w", err)
	}
	if penalty.IsBlocked {
		return &SubmitResult{
			Outcome:    OutcomeBlocked,
			Violations: penalty.Violations,
			Blocked:    true,
		}, nil
	}

	now := s.now()
	cooldown, err := s.state.CooldownState(ctx, submitterID)
	if err != nil {
		return nil, fmt.Errorf("load cooldown state: %w", err)
	}
	if d := throttle.CanSubmitNow(cooldown, now); !d.Allowed {
		return &SubmitResult{
			Outcome:          OutcomeThrottled,
			RemainingSeconds: d.RemainingSeconds,
			Violations:       penalty.Violations,
		}, nil
	}

	trimmed := strings.TrimSpace(text)
	verdict, err := s.moderator.Review(ctx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModerationUnavailable, err)
	}

	if !verdict.IsApproved {
		return s.reject(ctx, submitterID, penalty, verdict, now)
	}

	finalText := trimmed
	corrected := false
	if verdict.CorrectedText != "" && verdict.CorrectedText != trimmed {
		finalText = verdict.CorrectedText
		corrected = true
	}

	q, err := s.questions.Insert(ctx, finalText, model.StatusApproved, roomID, submitterID)
	if err != nil {
		// Store failure is transient: no cooldown is armed so the
		// submitter can retry as soon as the busy flag clears.
		return nil, fmt.Errorf("insert question: %w", err)
	}

	if err := s.armCooldown(ctx, submitterID, now, throttle.BaseCooldownSeconds); err != nil {
		log.Printf("submission: arm cooldown for %s failed: %v", submitterID, err)
	}

	return &SubmitResult{
		Outcome:         OutcomeAccepted,
		Question:        &q,
		TextCorrected:   corrected,
		CooldownSeconds: throttle.BaseCooldownSeconds,
		Violations:      penalty.Violations,
	}, nil
}

// reject handles a moderator disapproval. A malformed verdict rejects the
// text but leaves penalty and cooldown state untouched, so a retry stays
// possible without escalation.
func (s *SubmissionService) reject(ctx context.Context, submitterID string,
	penalty throttle.PenaltyState, verdict moderation.Verdict, now time.Time) (*SubmitResult, error) {

	if verdict.Malformed {
		return &SubmitResult{
			Outcome:    OutcomeRejected,
			Reason:     verdict.Reason,
			Severity:   verdict.Severity,
			Violations: penalty.Violations,
		}, nil
	}

	newPenalty, cooldownSeconds := throttle.RecordViolation(penalty, now)
	if err := s.state.SavePenaltyState(ctx, submitterID, newPenalty); err != nil {
		return nil, fmt.Errorf("save penalty state: %w", err)
	}

	if newPenalty.IsBlocked {
		// The block supersedes any cooldown; a pending countdown would
		// only suggest a recovery that will never come.
		s.countdowns.Cancel(submitterID)
		log.Printf("submission: submitter %s blocked after %d violations", submitterID, newPenalty.Violations)
		return &SubmitResult{
			Outcome:    OutcomeRejected,
			Reason:     verdict.Reason,
			Severity:   verdict.Severity,
			Violations: newPenalty.Violations,
			Blocked:    true,
		}, nil
	}

	if err := s.armCooldown(ctx, submitterID, now, cooldownSeconds); err != nil {
		log.Printf("submission: arm cooldown for %s failed: %v", submitterID, err)
	}

	return &SubmitResult{
		Outcome:         OutcomeRejected,
		Reason:          verdict.Reason,
		Severity:        verdict.Severity,
		CooldownSeconds: cooldownSeconds,
		Violations:      newPenalty.Violations,
	}, nil
}

// armCooldown persists the new cooldown window and restarts this submitter's
// countdown, replacing any previous timer.
func (s *SubmissionService) armCooldown(ctx context.Context, submitterID string, now time.Time, seconds int) error {
	if err := s.state.SaveCooldownState(ctx, submitterID, throttle.Arm(now, seconds)); err != nil {
		return err
	}
	s.countdowns.Arm(submitterID, time.Duration(seconds)*time.Second, func() {
		log.Printf("submission: cooldown elapsed for %s", submitterID)
	})
	return nil
}

// CooldownStatus reports a submitter's current gate status from persisted
// state. A blocked submitter is never "available", no matter how much time
// has passed.
func (s *SubmissionService) CooldownStatus(ctx context.Context, submitterID string) (model.CooldownResponse, error) {
	penalty, err := s.state.PenaltyState(ctx, submitterID)
	if err != nil {
		return model.CooldownResponse{}, fmt.Errorf("load penalty state: %w", err)
	}
	if penalty.IsBlocked {
		return model.CooldownResponse{
			OnCooldown: true,
			Blocked:    true,
			Violations: penalty.Violations,
		}, nil
	}

	cooldown, err := s.state.CooldownState(ctx, submitterID)
	if err != nil {
		return model.CooldownResponse{}, fmt.Errorf("load cooldown state: %w", err)
	}

	now := s.now()
	d := throttle.CanSubmitNow(cooldown, now)
	resp := model.CooldownResponse{
		OnCooldown:       !d.Allowed,
		RemainingSeconds: d.RemainingSeconds,
		Violations:       penalty.Violations,
	}
	if !d.Allowed {
		resp.AvailableAt = now.Add(time.Duration(d.RemainingSeconds) * time.Second).UTC().Format(time.RFC3339)
	}
	return resp, nil
}

// ResetSubmitter clears penalty and cooldown state and cancels any running
// countdown. This is the administrative unblock; nothing else ever lowers a
// violation count.
func (s *SubmissionService) ResetSubmitter(ctx context.Context, submitterID string) error {
	if err := s.state.ClearSubmitter(ctx, submitterID); err != nil {
		return fmt.Errorf("clear submitter state: %w", err)
	}
	s.countdowns.Cancel(submitterID)
	log.Printf("submission: submitter %s reset by admin", submitterID)
	return nil
}

func (s *SubmissionService) acquire(submitterID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[submitterID]; busy {
		return false
	}
	s.inFlight[submitterID] = struct{}{}
	return true
}

func (s *SubmissionService) release(submitterID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, submitterID)
}
