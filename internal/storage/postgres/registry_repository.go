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
	"github.com/gravadigital/eventos-api/internal/logger"
)

// PostgresRegistryRepository implements RegistryRepository using GORM
type PostgresRegistryRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresRegistryRepository creates a new PostgreSQL registry repository
func NewPostgresRegistryRepository(db *gorm.DB) *PostgresRegistryRepository {
	return &PostgresRegistryRepository{
		db:  db,
		log: logger.Repository("registry"),
	}
}

func (r *PostgresRegistryRepository) Create(ctx context.Context, registry *activity.Registry) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(registry).Error; err != nil {
		if isUniqueViolation(err) {
			return common.ErrAlreadyRegisteredOnActivity
		}
		r.log.Error("Failed to create registry", "error", err, "activity_id", registry.ActivityID)
		return fmt.Errorf("failed to create registry: %w", err)
	}

	r.log.Info("Registry created", "id", registry.ID, "activity_id", registry.ActivityID, "user_id", registry.UserID)
	return nil
}

func (r *PostgresRegistryRepository) Update(ctx context.Context, registry *activity.Registry) error {
	err := r.db.WithContext(ctx).Model(&activity.Registry{}).
		Where("id = ?", registry.ID).
		Updates(map[string]any{
			"ready_for_certificate": registry.ReadyForCertificate,
			"rating":                registry.Rating,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update registry: %w", err)
	}
	return nil
}

func (r *PostgresRegistryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&activity.Registry{}, "id = ?", id)
	if res.Error != nil {
		r.log.Error("Failed to delete registry", "error", res.Error, "id", id)
		return fmt.Errorf("failed to delete registry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.NewNotFound("registry")
	}
	return nil
}

func (r *PostgresRegistryRepository) GetByID(ctx context.Context, id uuid.UUID) (*activity.Registry, error) {
	var registry activity.Registry
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Presences").
		First(&registry, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err, "registry")
	}
	return &registry, nil
}

func (r *PostgresRegistryRepository) GetByActivityAndUser(ctx context.Context, activityID, userID uuid.UUID) (*activity.Registry, error) {
	var registry activity.Registry
	err := r.db.WithContext(ctx).
		Preload("Presences").
		Where("activity_id = ? AND user_id = ?", activityID, userID).
		First(&registry).Error
	if err != nil {
		return nil, translateNotFound(err, "registry")
	}
	return &registry, nil
}

func (r *PostgresRegistryRepository) GetByActivityID(ctx context.Context, activityID uuid.UUID) ([]*activity.Registry, error) {
	var registries []*activity.Registry
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Presences").
		Where("activity_id = ?", activityID).
		Order("registry_date ASC").
		Find(&registries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get registries: %w", err)
	}
	return registries, nil
}

func (r *PostgresRegistryRepository) GetReadyByEventID(ctx context.Context, eventID uuid.UUID) ([]*activity.Registry, error) {
	var registries []*activity.Registry
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Activity.Schedules").
		Joins("JOIN activities ON activities.id = activity_registries.activity_id").
		Where("activities.event_id = ? AND activity_registries.ready_for_certificate = ?", eventID, true).
		Find(&registries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ready registries: %w", err)
	}
	return registries, nil
}

func (r *PostgresRegistryRepository) CountByActivityID(ctx context.Context, activityID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&activity.Registry{}).
		Where("activity_id = ?", activityID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count registries: %w", err)
	}
	return count, nil
}

// CountPresencesByActivityID counts confirmed presences over every registry of the activity
func (r *PostgresRegistryRepository) CountPresencesByActivityID(ctx context.Context, activityID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&activity.Presence{}).
		Joins("JOIN activity_registries ON activity_registries.id = presences.activity_registry_id").
		Where("activity_registries.activity_id = ? AND presences.is_present = ?", activityID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count presences: %w", err)
	}
	return count, nil
}

func (r *PostgresRegistryRepository) GetPresences(ctx context.Context, registryID uuid.UUID) ([]activity.Presence, error) {
	var presences []activity.Presence
	if err := r.db.WithContext(ctx).
		Where("activity_registry_id = ?", registryID).
		Find(&presences).Error; err != nil {
		return nil, fmt.Errorf("failed to get presences: %w", err)
	}
	return presences, nil
}

func (r *PostgresRegistryRepository) SavePresence(ctx context.Context, presence *activity.Presence) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "activity_registry_id"}, {Name: "schedule_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_present", "updated_at"}),
		}).
		Create(presence).Error
	if err != nil {
		r.log.Error("Failed to save presence", "error", err, "registry_id", presence.ActivityRegistryID)
		return fmt.Errorf("failed to save presence: %w", err)
	}
	return nil
}
