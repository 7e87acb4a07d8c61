package postgres

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/logger"
)

// PostgresEventRepository implements EventRepository using GORM
type PostgresEventRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresEventRepository creates a new PostgreSQL event repository
func NewPostgresEventRepository(db *gorm.DB) *PostgresEventRepository {
	return &PostgresEventRepository{
		db:  db,
		log: logger.Repository("event"),
	}
}

func (r *PostgresEventRepository) Create(ctx context.Context, e *event.Event, responsibleIDs []uuid.UUID) error {
	r.log.Debug("Creating event", "slug", e.Slug, "category_id", e.CategoryID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(e).Error; err != nil {
			return err
		}
		return replaceResponsibles(tx, "event_responsibles", "event_id", e.ID, responsibleIDs)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return common.NewValidationError(map[string]string{"slug": "an event with this name already exists"})
		}
		r.log.Error("Failed to create event", "error", err, "slug", e.Slug)
		return fmt.Errorf("failed to create event: %w", err)
	}

	r.log.Info("Event created", "id", e.ID, "slug", e.Slug)
	return nil
}

func (r *PostgresEventRepository) Update(ctx context.Context, e *event.Event, responsibleIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(e).Error; err != nil {
			return err
		}
		return replaceResponsibles(tx, "event_responsibles", "event_id", e.ID, responsibleIDs)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return common.NewValidationError(map[string]string{"slug": "an event with this name already exists"})
		}
		r.log.Error("Failed to update event", "error", err, "id", e.ID)
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (r *PostgresEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	var e event.Event
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Responsibles").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err, "event")
	}
	return &e, nil
}

func (r *PostgresEventRepository) GetAll(ctx context.Context) ([]*event.Event, error) {
	var events []*event.Event
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Responsibles").
		Order("start_date DESC").
		Find(&events).Error
	if err != nil {
		r.log.Error("Failed to get events", "error", err)
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}

// Delete removes the event; activities, schedules and registries follow by cascade
func (r *PostgresEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM activity_responsibles WHERE activity_id IN (SELECT id FROM activities WHERE event_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM event_responsibles WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&event.Event{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		r.log.Error("Failed to delete event", "error", err, "id", id)
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if affected == 0 {
		return common.NewNotFound("event")
	}

	r.log.Info("Event deleted", "id", id)
	return nil
}

func (r *PostgresEventRepository) CountRegistries(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&activity.Registry{}).
		Joins("JOIN activities ON activities.id = activity_registries.activity_id").
		Where("activities.event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count event registries: %w", err)
	}
	return count, nil
}
