package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amar19818/askroom/internal/model"
)

// FreshnessWindow bounds the question list: only questions younger than this
// are shown to attendees.
const FreshnessWindow = 5 * time.Minute

type QuestionRepo struct {
	pool *pgxpool.Pool
}

func NewQuestionRepo(pool *pgxpool.Pool) *QuestionRepo {
	return &QuestionRepo{pool: pool}
}

const questionColumns = `id, room_id, text, upvotes, moderation_status, submitter_id, created_at, updated_at`

func scanQuestion(row pgx.Row) (model.Question, error) {
	var q model.Question
	err := row.Scan(&q.ID, &q.RoomID, &q.Text, &q.Upvotes, &q.ModerationStatus,
		&q.SubmitterID, &q.CreatedAt, &q.UpdatedAt)
	return q, err
}

// Insert persists a new question and notifies the change feed in the same
// transaction.
func (r *QuestionRepo) Insert(ctx context.Context, text, status, roomID, submitterID string) (model.Question, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Question{}, err
	}
	defer tx.Rollback(ctx)

	id := uuid.NewString()
	q, err := scanQuestion(tx.QueryRow(ctx, `
		INSERT INTO questions (id, room_id, text, moderation_status, submitter_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+questionColumns,
		id, roomID, text, status, submitterID))
	if err != nil {
		return model.Question{}, err
	}

	_, err = tx.Exec(ctx, `SELECT pg_notify('question_changes', $1)`, model.ActionInsert+":"+id)
	if err != nil {
		return model.Question{}, err
	}

	return q, tx.Commit(ctx)
}

// IncrementUpvote atomically bumps the upvote counter by exactly one and
// returns the updated question. Concurrent increments are safe: the addition
// happens inside the UPDATE, never as read-modify-write.
func (r *QuestionRepo) IncrementUpvote(ctx context.Context, questionID string) (model.Question, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Question{}, err
	}
	defer tx.Rollback(ctx)

	q, err := scanQuestion(tx.QueryRow(ctx, `
		UPDATE questions SET upvotes = upvotes + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING `+questionColumns,
		questionID))
	if err != nil {
		return model.Question{}, err // pgx.ErrNoRows when the question doesn't exist
	}

	_, err = tx.Exec(ctx, `SELECT pg_notify('question_changes', $1)`, model.ActionUpdate+":"+questionID)
	if err != nil {
		return model.Question{}, err
	}

	return q, tx.Commit(ctx)
}

// FindByID returns a single question.
func (r *QuestionRepo) FindByID(ctx context.Context, questionID string) (model.Question, error) {
	return scanQuestion(r.pool.QueryRow(ctx, `
		SELECT `+questionColumns+` FROM questions WHERE id = $1`, questionID))
}

// ListApproved returns the approved questions of a room inside the freshness
// window, most-upvoted first.
func (r *QuestionRepo) ListApproved(ctx context.Context, roomID string) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE room_id = $1
		  AND moderation_status = $2
		  AND created_at > NOW() - make_interval(secs => $3)
		ORDER BY upvotes DESC, created_at DESC`,
		roomID, model.StatusApproved, FreshnessWindow.Seconds())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectQuestions(rows)
}

// UpdateModerationStatus moves a question to approved or rejected. Used both
// to resolve pending questions and to take down (or reinstate) one the
// automatic moderator already let through. The guard makes a repeat of the
// same resolution a no-match; returns pgx.ErrNoRows when nothing changed.
func (r *QuestionRepo) UpdateModerationStatus(ctx context.Context, questionID, status string) (model.Question, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Question{}, err
	}
	defer tx.Rollback(ctx)

	q, err := scanQuestion(tx.QueryRow(ctx, `
		UPDATE questions SET moderation_status = $1, updated_at = NOW()
		WHERE id = $2 AND moderation_status <> $1
		RETURNING `+questionColumns,
		status, questionID))
	if err != nil {
		return model.Question{}, err
	}

	_, err = tx.Exec(ctx, `SELECT pg_notify('question_changes', $1)`, model.ActionUpdate+":"+questionID)
	if err != nil {
		return model.Question{}, err
	}

	return q, tx.Commit(ctx)
}

// ChangedSince returns questions touched after the given timestamp, oldest
// first, for the delta-sync endpoint.
func (r *QuestionRepo) ChangedSince(ctx context.Context, since time.Time) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE updated_at > $1
		ORDER BY updated_at ASC
		LIMIT 1000`,
		since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectQuestions(rows)
}

func collectQuestions(rows pgx.Rows) ([]model.Question, error) {
	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
