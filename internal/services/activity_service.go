package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gravadigital/eventos-api/internal/auth"
	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/logger"
	"github.com/gravadigital/eventos-api/internal/storage/postgres"
)

// ActivityService schedules activities and guards their edition and removal
type ActivityService struct {
	activityRepo postgres.ActivityRepository
	eventRepo    postgres.EventRepository
	roomRepo     postgres.RoomRepository
	userRepo     postgres.UserRepository
	registryRepo postgres.RegistryRepository
	now          Clock
	log          *log.Logger
}

func NewActivityService(
	activityRepo postgres.ActivityRepository,
	eventRepo postgres.EventRepository,
	roomRepo postgres.RoomRepository,
	userRepo postgres.UserRepository,
	registryRepo postgres.RegistryRepository,
	clock Clock,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		eventRepo:    eventRepo,
		roomRepo:     roomRepo,
		userRepo:     userRepo,
		registryRepo: registryRepo,
		now:          orDefault(clock),
		log:          logger.Service("activity"),
	}
}

// ScheduleRequest is one time slot of an activity. At least one of room_id and url is required.
type ScheduleRequest struct {
	StartDate         time.Time  `json:"start_date" binding:"required"`
	DurationInMinutes int        `json:"duration_in_minutes" binding:"required,min=1"`
	RoomID            *uuid.UUID `json:"room_id"`
	URL               *string    `json:"url" binding:"omitempty,url"`
}

// ActivityRequest is the body of activity create and update
type ActivityRequest struct {
	Title          string            `json:"title" binding:"required,max=200"`
	Description    string            `json:"description" binding:"max=5000"`
	Vacancies      *int              `json:"vacancies" binding:"omitempty,min=0"`
	Speakers       []string          `json:"speakers" binding:"dive,required,max=200"`
	Schedules      []ScheduleRequest `json:"schedules" binding:"required,min=1,dive"`
	ResponsibleIDs []uuid.UUID       `json:"responsible_ids"`
}

func (req ActivityRequest) apply(a *activity.Activity) {
	a.Title = strings.TrimSpace(req.Title)
	a.Description = strings.TrimSpace(req.Description)
	a.Vacancies = req.Vacancies
	a.Speakers = pq.StringArray(req.Speakers)

	a.Schedules = make([]activity.Schedule, 0, len(req.Schedules))
	for _, sr := range req.Schedules {
		a.Schedules = append(a.Schedules, activity.Schedule{
			ActivityID:        a.ID,
			StartDate:         sr.StartDate,
			DurationInMinutes: sr.DurationInMinutes,
			RoomID:            sr.RoomID,
			URL:               sr.URL,
		})
	}
}

// CreateActivity adds an activity to an event after schedule and conflict checks
func (s *ActivityService) CreateActivity(ctx context.Context, actor auth.Identity, eventID uuid.UUID, req ActivityRequest) (*activity.Activity, error) {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !canManageEvent(actor, ev) {
		return nil, common.ErrForbidden
	}

	a := &activity.Activity{EventID: ev.ID}
	req.apply(a)
	if err := s.validate(ctx, a, req.ResponsibleIDs); err != nil {
		return nil, err
	}
	if err := s.checkConflicts(ctx, a, ev, req.ResponsibleIDs); err != nil {
		return nil, err
	}

	if err := s.activityRepo.Create(ctx, a, req.ResponsibleIDs); err != nil {
		return nil, err
	}

	s.log.Info("Activity created", "activity_id", a.ID, "event_id", ev.ID, "actor", actor.UserID)
	return s.activityRepo.GetByID(ctx, a.ID)
}

// UpdateActivity replaces the fields, schedules and responsibles of an activity.
// Activities with confirmed presences are frozen.
func (s *ActivityService) UpdateActivity(ctx context.Context, actor auth.Identity, id uuid.UUID, req ActivityRequest) (*activity.Activity, error) {
	a, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Event == nil || !canManageEvent(actor, a.Event) {
		return nil, common.ErrForbidden
	}

	presences, err := s.registryRepo.CountPresencesByActivityID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if presences > 0 {
		return nil, common.ErrActivityHasPresencesArchived
	}

	ev := a.Event
	req.apply(a)
	if err := s.validate(ctx, a, req.ResponsibleIDs); err != nil {
		return nil, err
	}
	if err := s.checkConflicts(ctx, a, ev, req.ResponsibleIDs); err != nil {
		return nil, err
	}

	if err := s.activityRepo.Update(ctx, a, req.ResponsibleIDs); err != nil {
		return nil, err
	}

	s.log.Info("Activity updated", "activity_id", a.ID, "actor", actor.UserID)
	return s.activityRepo.GetByID(ctx, a.ID)
}

func (s *ActivityService) validate(ctx context.Context, a *activity.Activity, responsibleIDs []uuid.UUID) error {
	if fields := a.Validate(); fields != nil {
		return common.NewValidationError(fields)
	}

	var roomIDs []uuid.UUID
	for _, sch := range a.Schedules {
		if sch.RoomID != nil {
			roomIDs = append(roomIDs, *sch.RoomID)
		}
	}
	missingRooms, err := s.roomRepo.MissingIDs(ctx, roomIDs)
	if err != nil {
		return err
	}
	if len(missingRooms) > 0 {
		fields := make(map[string]string)
		for i, sch := range a.Schedules {
			for _, id := range missingRooms {
				if sch.RoomID != nil && *sch.RoomID == id {
					fields[fmt.Sprintf("schedules[%d].room_id", i)] = "room does not exist"
				}
			}
		}
		return common.NewValidationError(fields)
	}

	return checkUsersExist(ctx, s.userRepo, responsibleIDs, "responsible_ids")
}

// checkConflicts loads the stored schedules that may clash and runs the detector
func (s *ActivityService) checkConflicts(ctx context.Context, a *activity.Activity, ev *event.Event, responsibleIDs []uuid.UUID) error {
	q := activity.ConflictQuery{
		ActivityID:     a.ID,
		ActivityName:   a.Title,
		EventID:        ev.ID,
		EventName:      ev.DisplayName(),
		ResponsibleIDs: responsibleIDs,
		Candidates:     a.Schedules,
	}

	if filter := q.Filter(); !filter.IsEmpty() {
		existing, err := s.activityRepo.FindConflictCandidates(ctx, filter)
		if err != nil {
			return err
		}
		q.Existing = existing
	}

	if err := activity.CheckConflicts(q); err != nil {
		s.log.Debug("Schedule conflicts detected", "activity", a.Title, "event_id", ev.ID)
		return err
	}
	return nil
}

// GetActivity returns one activity with its schedules and responsibles
func (s *ActivityService) GetActivity(ctx context.Context, id uuid.UUID) (*activity.Activity, error) {
	return s.activityRepo.GetByID(ctx, id)
}

// ListByEvent lists the activities of an existing event
func (s *ActivityService) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*activity.Activity, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.activityRepo.GetByEventID(ctx, eventID)
}

// DeleteActivity removes an activity once the deletion guard lets it through
func (s *ActivityService) DeleteActivity(ctx context.Context, actor auth.Identity, id uuid.UUID) error {
	a, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Event == nil || !canManageEvent(actor, a.Event) {
		return common.ErrForbidden
	}

	registries, err := s.registryRepo.CountByActivityID(ctx, a.ID)
	if err != nil {
		return err
	}
	presences, err := s.registryRepo.CountPresencesByActivityID(ctx, a.ID)
	if err != nil {
		return err
	}

	err = activity.CheckDeletion(activity.DeletionState{
		RegistryCount:         registries,
		ArchivedPresenceCount: presences,
		EventStartDate:        a.Event.StartDate,
		EventEndDate:          a.Event.EndDate,
		Now:                   s.now(),
	})
	if err != nil {
		return err
	}

	if err := s.activityRepo.Delete(ctx, a.ID); err != nil {
		return err
	}

	s.log.Info("Activity deleted", "activity_id", a.ID, "actor", actor.UserID)
	return nil
}
