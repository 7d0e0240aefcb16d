package service

import (
	"context"

	"github.com/amar19818/askroom/internal/model"
	"github.com/amar19818/askroom/internal/repository"
)

// RoomService wraps room lifecycle operations: create, list, pause/resume,
// terminate.
type RoomService struct {
	repo *repository.RoomRepo
}

func NewRoomService(repo *repository.RoomRepo) *RoomService {
	return &RoomService{repo: repo}
}

func (s *RoomService) Create(ctx context.Context, req model.CreateRoomRequest, createdBy string) (model.Room, error) {
	return s.repo.Create(ctx, req, createdBy)
}

func (s *RoomService) ListActive(ctx context.Context) ([]model.Room, error) {
	return s.repo.ListActive(ctx)
}

func (s *RoomService) FindByShareLink(ctx context.Context, shareLink string) (model.Room, error) {
	return s.repo.FindByShareLink(ctx, shareLink)
}

func (s *RoomService) SetPaused(ctx context.Context, roomID string, paused bool) error {
	return s.repo.SetPaused(ctx, roomID, paused)
}

func (s *RoomService) Terminate(ctx context.Context, roomID string) error {
	return s.repo.Terminate(ctx, roomID)
}
