package postgres

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/domain/room"
	"github.com/gravadigital/eventos-api/internal/logger"
)

// PostgresCategoryRepository implements CategoryRepository using GORM
type PostgresCategoryRepository struct {
	db  *gorm.DB
	log *log.Logger
}

func NewPostgresCategoryRepository(db *gorm.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db, log: logger.Repository("category")}
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, category *event.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return common.NewValidationError(map[string]string{"name": "a category with this name already exists"})
		}
		r.log.Error("Failed to create category", "error", err, "name", category.Name)
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*event.Category, error) {
	var category event.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "category")
	}
	return &category, nil
}

func (r *PostgresCategoryRepository) GetAll(ctx context.Context) ([]*event.Category, error) {
	var categories []*event.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// PostgresRoomRepository implements RoomRepository using GORM
type PostgresRoomRepository struct {
	db  *gorm.DB
	log *log.Logger
}

func NewPostgresRoomRepository(db *gorm.DB) *PostgresRoomRepository {
	return &PostgresRoomRepository{db: db, log: logger.Repository("room")}
}

func (r *PostgresRoomRepository) Create(ctx context.Context, rm *room.Room) error {
	if err := r.db.WithContext(ctx).Create(rm).Error; err != nil {
		if isUniqueViolation(err) {
			return common.NewValidationError(map[string]string{"code": "a room with this code already exists"})
		}
		r.log.Error("Failed to create room", "error", err, "code", rm.Code)
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (r *PostgresRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	var rm room.Room
	if err := r.db.WithContext(ctx).First(&rm, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "room")
	}
	return &rm, nil
}

func (r *PostgresRoomRepository) GetAll(ctx context.Context) ([]*room.Room, error) {
	var rooms []*room.Room
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}
	return rooms, nil
}

func (r *PostgresRoomRepository) MissingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&room.Room{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("failed to check rooms: %w", err)
	}
	return missing(ids, found), nil
}
