package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amar19818/askroom/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// CreateStudent registers a new student account. The password is stored as
// given: demo login, see model.Student.
func (r *UserRepo) CreateStudent(ctx context.Context, req model.RegisterRequest) (model.Student, error) {
	var s model.Student
	err := r.pool.QueryRow(ctx, `
		INSERT INTO students (id, email, name, college_name, phone_number, password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, name, college_name, phone_number, password, created_at`,
		uuid.NewString(), req.Email, req.Name, req.CollegeName, req.PhoneNumber, req.Password).
		Scan(&s.ID, &s.Email, &s.Name, &s.CollegeName, &s.PhoneNumber, &s.Password, &s.CreatedAt)
	return s, err
}

// FindStudentByEmail returns a student account by email.
func (r *UserRepo) FindStudentByEmail(ctx context.Context, email string) (model.Student, error) {
	var s model.Student
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, college_name, phone_number, password, created_at
		FROM students WHERE email = $1`, email).
		Scan(&s.ID, &s.Email, &s.Name, &s.CollegeName, &s.PhoneNumber, &s.Password, &s.CreatedAt)
	return s, err
}

// FindAdminByUsername returns an admin account by username.
func (r *UserRepo) FindAdminByUsername(ctx context.Context, username string) (model.Admin, error) {
	var a model.Admin
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, created_at FROM admin_users WHERE username = $1`, username).
		Scan(&a.ID, &a.Username, &a.CreatedAt)
	return a, err
}

// GetStats returns aggregate counts across all tables.
func (r *UserRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM rooms) AS total_rooms,
			(SELECT COUNT(*) FROM rooms WHERE is_active = true) AS active_rooms,
			(SELECT COUNT(*) FROM questions) AS total_questions,
			(SELECT COALESCE(SUM(upvotes), 0) FROM questions) AS total_upvotes,
			(SELECT COUNT(*) FROM students) AS total_students`

	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalRooms, &stats.ActiveRooms, &stats.TotalQuestions,
		&stats.TotalUpvotes, &stats.TotalStudents,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
