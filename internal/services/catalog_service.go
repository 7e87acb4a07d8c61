package services

import (
	"context"
	"strings"

	"github.com/gravadigital/eventos-api/internal/auth"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/domain/room"
	"github.com/gravadigital/eventos-api/internal/storage/postgres"
)

// CategoryService manages event categories
type CategoryService struct {
	repo postgres.CategoryRepository
}

func NewCategoryService(repo postgres.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

func (s *CategoryService) Create(ctx context.Context, actor auth.Identity, req CategoryRequest) (*event.Category, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	category := &event.Category{Name: strings.TrimSpace(req.Name)}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]*event.Category, error) {
	return s.repo.GetAll(ctx)
}

// RoomService manages the rooms schedules can book
type RoomService struct {
	repo postgres.RoomRepository
}

func NewRoomService(repo postgres.RoomRepository) *RoomService {
	return &RoomService{repo: repo}
}

type RoomRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Code     string `json:"code" binding:"required,max=32"`
	Capacity *int   `json:"capacity" binding:"omitempty,min=0"`
}

func (s *RoomService) Create(ctx context.Context, actor auth.Identity, req RoomRequest) (*room.Room, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	rm := room.NewRoom(strings.TrimSpace(req.Name), strings.ToUpper(strings.TrimSpace(req.Code)), req.Capacity)
	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *RoomService) List(ctx context.Context) ([]*room.Room, error) {
	return s.repo.GetAll(ctx)
}
