package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/logger"
)

// PostgresActivityRepository implements ActivityRepository using GORM
type PostgresActivityRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresActivityRepository creates a new PostgreSQL activity repository
func NewPostgresActivityRepository(db *gorm.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{
		db:  db,
		log: logger.Repository("activity"),
	}
}

func (r *PostgresActivityRepository) Create(ctx context.Context, a *activity.Activity, responsibleIDs []uuid.UUID) error {
	r.log.Debug("Creating activity", "event_id", a.EventID, "title", a.Title, "schedules", len(a.Schedules))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(a).Error; err != nil {
			return err
		}
		if err := r.writeSchedules(tx, a); err != nil {
			return err
		}
		return replaceResponsibles(tx, "activity_responsibles", "activity_id", a.ID, responsibleIDs)
	})
	if err != nil {
		r.log.Error("Failed to create activity", "error", err, "title", a.Title)
		return fmt.Errorf("failed to create activity: %w", err)
	}

	r.log.Info("Activity created", "id", a.ID, "event_id", a.EventID)
	return nil
}

func (r *PostgresActivityRepository) Update(ctx context.Context, a *activity.Activity, responsibleIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(a).Error; err != nil {
			return err
		}
		if err := tx.Where("activity_id = ?", a.ID).Delete(&activity.Schedule{}).Error; err != nil {
			return err
		}
		if err := r.writeSchedules(tx, a); err != nil {
			return err
		}
		return replaceResponsibles(tx, "activity_responsibles", "activity_id", a.ID, responsibleIDs)
	})
	if err != nil {
		r.log.Error("Failed to update activity", "error", err, "id", a.ID)
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return nil
}

func (r *PostgresActivityRepository) writeSchedules(tx *gorm.DB, a *activity.Activity) error {
	if len(a.Schedules) == 0 {
		return nil
	}
	for i := range a.Schedules {
		a.Schedules[i].ActivityID = a.ID
	}
	return tx.Omit(clause.Associations).Create(&a.Schedules).Error
}

func (r *PostgresActivityRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Event.Category").
		Preload("Schedules", func(db *gorm.DB) *gorm.DB {
			return db.Order("schedules.start_date ASC")
		}).
		Preload("Schedules.Room").
		Preload("Responsibles")
}

func (r *PostgresActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*activity.Activity, error) {
	var a activity.Activity
	if err := r.preloaded(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "activity")
	}
	return &a, nil
}

func (r *PostgresActivityRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]*activity.Activity, error) {
	var activities []*activity.Activity
	err := r.preloaded(ctx).
		Where("event_id = ?", eventID).
		Order("title ASC").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	return activities, nil
}

// Delete removes the activity; schedules and registries follow by cascade
func (r *PostgresActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM activity_responsibles WHERE activity_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&activity.Activity{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		r.log.Error("Failed to delete activity", "error", err, "id", id)
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if affected == 0 {
		return common.NewNotFound("activity")
	}

	r.log.Info("Activity deleted", "id", id)
	return nil
}

func (r *PostgresActivityRepository) GetScheduleByID(ctx context.Context, id uuid.UUID) (*activity.Schedule, error) {
	var s activity.Schedule
	if err := r.db.WithContext(ctx).Preload("Room").First(&s, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "schedule")
	}
	return &s, nil
}

type conflictRow struct {
	ScheduleID        uuid.UUID
	ActivityID        uuid.UUID
	ActivityName      string
	EventID           uuid.UUID
	StartDate         time.Time
	DurationInMinutes int
	RoomID            *uuid.UUID
	RoomName          *string
}

// FindConflictCandidates loads the stored schedules that may clash with the
// filter: same event and room, or sharing a responsible, inside [From, Until).
func (r *PostgresActivityRepository) FindConflictCandidates(ctx context.Context, f activity.ConflictFilter) ([]activity.ExistingSchedule, error) {
	if f.IsEmpty() {
		return nil, nil
	}

	var (
		clauses []string
		args    []any
	)
	if len(f.RoomIDs) > 0 {
		clauses = append(clauses, "(a.event_id = ? AND s.room_id IN ?)")
		args = append(args, f.EventID, f.RoomIDs)
	}
	if len(f.ResponsibleIDs) > 0 {
		clauses = append(clauses, "s.activity_id IN (SELECT activity_id FROM activity_responsibles WHERE user_id IN ?)")
		args = append(args, f.ResponsibleIDs)
	}

	var rows []conflictRow
	err := r.db.WithContext(ctx).
		Table("schedules AS s").
		Select(`s.id AS schedule_id, s.activity_id, a.title AS activity_name, a.event_id,
			s.start_date, s.duration_in_minutes, s.room_id, rm.name AS room_name`).
		Joins("JOIN activities a ON a.id = s.activity_id").
		Joins("LEFT JOIN rooms rm ON rm.id = s.room_id").
		Where("s.activity_id <> ?", f.ExcludeActivityID).
		Where("s.start_date < ?", f.Until).
		Where("s.start_date + s.duration_in_minutes * interval '1 minute' > ?", f.From).
		Where("("+strings.Join(clauses, " OR ")+")", args...).
		Order("s.start_date ASC").
		Scan(&rows).Error
	if err != nil {
		r.log.Error("Failed to load conflict candidates", "error", err, "event_id", f.EventID)
		return nil, fmt.Errorf("failed to load conflict candidates: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	activityIDs := make([]uuid.UUID, 0, len(rows))
	eventIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		activityIDs = append(activityIDs, row.ActivityID)
		eventIDs = append(eventIDs, row.EventID)
	}

	responsibles, err := r.responsiblesOf(ctx, activityIDs)
	if err != nil {
		return nil, err
	}
	eventNames, err := r.eventNames(ctx, eventIDs)
	if err != nil {
		return nil, err
	}

	existing := make([]activity.ExistingSchedule, 0, len(rows))
	for _, row := range rows {
		existing = append(existing, activity.ExistingSchedule{
			ScheduleID:        row.ScheduleID,
			ActivityID:        row.ActivityID,
			ActivityName:      row.ActivityName,
			EventID:           row.EventID,
			EventName:         eventNames[row.EventID],
			StartDate:         row.StartDate,
			DurationInMinutes: row.DurationInMinutes,
			RoomID:            row.RoomID,
			RoomName:          row.RoomName,
			ResponsibleIDs:    responsibles[row.ActivityID],
		})
	}
	return existing, nil
}

func (r *PostgresActivityRepository) responsiblesOf(ctx context.Context, activityIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	var links []struct {
		ActivityID uuid.UUID
		UserID     uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Table("activity_responsibles").
		Select("activity_id, user_id").
		Where("activity_id IN ?", activityIDs).
		Scan(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load activity responsibles: %w", err)
	}

	out := make(map[uuid.UUID][]uuid.UUID)
	for _, l := range links {
		out[l.ActivityID] = append(out[l.ActivityID], l.UserID)
	}
	return out, nil
}

func (r *PostgresActivityRepository) eventNames(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	var events []event.Event
	if err := r.db.WithContext(ctx).Preload("Category").Where("id IN ?", eventIDs).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	names := make(map[uuid.UUID]string, len(events))
	for i := range events {
		names[events[i].ID] = events[i].DisplayName()
	}
	return names, nil
}
