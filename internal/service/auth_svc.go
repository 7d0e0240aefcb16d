package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/repository"
	"github.com/amar19818/askroom/internal/store"
)

const sessionTTL = 24 * time.Hour

// ErrInvalidCredentials covers unknown accounts and wrong passwords alike,
// so a login probe can't tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService implements the demo login flow: plaintext student passwords,
// any password for admins, opaque session tokens with a server-side TTL.
type AuthService struct {
	users *repository.UserRepo
	state store.StateStore
}

func NewAuthService(users *repository.UserRepo, state store.StateStore) *AuthService {
	return &AuthService{users: users, state: state}
}

// Register creates a student account and logs it in.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.Session, error) {
	student, err := s.users.CreateStudent(ctx, req)
	if err != nil {
		return model.Session{}, fmt.Errorf("create student: %w", err)
	}
	return s.issueSession(ctx, student.ID, "student")
}

// Login authenticates a student (email + plaintext password) or an admin
// (username, any password — demo behavior carried over deliberately).
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.Session, error) {
	switch req.UserType {
	case "admin":
		admin, err := s.users.FindAdminByUsername(ctx, req.Email)
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, ErrInvalidCredentials
		}
		if err != nil {
			return model.Session{}, fmt.Errorf("find admin: %w", err)
		}
		return s.issueSession(ctx, admin.ID, "admin")

	default:
		student, err := s.users.FindStudentByEmail(ctx, req.Email)
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, ErrInvalidCredentials
		}
		if err != nil {
			return model.Session{}, fmt.Errorf("find student: %w", err)
		}
		if student.Password != req.Password {
			return model.Session{}, ErrInvalidCredentials
		}
		return s.issueSession(ctx, student.ID, "student")
	}
}

// Logout revokes a session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.state.DeleteSession(ctx, token)
}

// Validate resolves a session token, rejecting unknown and expired ones.
func (s *AuthService) Validate(ctx context.Context, token string) (model.Session, error) {
	return s.state.Session(ctx, token)
}

func (s *AuthService) issueSession(ctx context.Context, userID, userType string) (model.Session, error) {
	sess := model.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		UserType:  userType,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.state.SaveSession(ctx, sess); err != nil {
		return model.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}
