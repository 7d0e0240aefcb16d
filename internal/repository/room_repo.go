package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amar19818/askroom/internal/model"
)

type RoomRepo struct {
	pool *pgxpool.Pool
}

func NewRoomRepo(pool *pgxpool.Pool) *RoomRepo {
	return &RoomRepo{pool: pool}
}

const roomColumns = `id, name, description, share_link, is_active, is_paused, created_by, created_at, expires_at`

func scanRoom(row pgx.Row) (model.Room, error) {
	var r model.Room
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.ShareLink, &r.IsActive,
		&r.IsPaused, &r.CreatedBy, &r.CreatedAt, &r.ExpiresAt)
	return r, err
}

// Create inserts a new room with a fresh share link.
func (r *RoomRepo) Create(ctx context.Context, req model.CreateRoomRequest, createdBy string) (model.Room, error) {
	var expiresAt *time.Time
	if req.ExpiresInHours > 0 {
		t := time.Now().Add(time.Duration(req.ExpiresInHours) * time.Hour)
		expiresAt = &t
	}

	// created_by is nullable; an empty id would not parse as a UUID.
	var creator *string
	if createdBy != "" {
		creator = &createdBy
	}

	return scanRoom(r.pool.QueryRow(ctx, `
		INSERT INTO rooms (id, name, description, share_link, created_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+roomColumns,
		uuid.NewString(), req.Name, req.Description, uuid.NewString(), creator, expiresAt))
}

// ListActive returns all active rooms, newest first.
func (r *RoomRepo) ListActive(ctx context.Context) ([]model.Room, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+roomColumns+`
		FROM rooms
		WHERE is_active = true
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// FindByID returns a single room.
func (r *RoomRepo) FindByID(ctx context.Context, roomID string) (model.Room, error) {
	return scanRoom(r.pool.QueryRow(ctx, `
		SELECT `+roomColumns+` FROM rooms WHERE id = $1`, roomID))
}

// FindByShareLink resolves an attendee's share link to its room.
func (r *RoomRepo) FindByShareLink(ctx context.Context, shareLink string) (model.Room, error) {
	return scanRoom(r.pool.QueryRow(ctx, `
		SELECT `+roomColumns+` FROM rooms WHERE share_link = $1 AND is_active = true`, shareLink))
}

// SetPaused pauses or resumes question intake for a room.
func (r *RoomRepo) SetPaused(ctx context.Context, roomID string, paused bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE rooms SET is_paused = $1 WHERE id = $2 AND is_active = true`, paused, roomID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Terminate deactivates a room. Terminated rooms are never reactivated.
func (r *RoomRepo) Terminate(ctx context.Context, roomID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE rooms SET is_active = false WHERE id = $1 AND is_active = true`, roomID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeactivateExpired terminates all rooms whose expiry has passed. Returns the
// number of rooms closed; called periodically by the room worker.
func (r *RoomRepo) DeactivateExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE rooms SET is_active = false
		WHERE is_active = true AND expires_at IS NOT NULL AND expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
