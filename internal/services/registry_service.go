package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gravadigital/eventos-api/internal/auth"
	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/logger"
	"github.com/gravadigital/eventos-api/internal/storage/postgres"
)

// RegistryService handles sign-ups, attendance and ratings
type RegistryService struct {
	registryRepo postgres.RegistryRepository
	activityRepo postgres.ActivityRepository
	now          Clock
	log          *log.Logger
}

func NewRegistryService(registryRepo postgres.RegistryRepository, activityRepo postgres.ActivityRepository, clock Clock) *RegistryService {
	return &RegistryService{
		registryRepo: registryRepo,
		activityRepo: activityRepo,
		now:          orDefault(clock),
		log:          logger.Service("registry"),
	}
}

// RatingRequest is the body of PATCH /registries/:id/rating
type RatingRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// PresenceEntry sets the attendance of one registry
type PresenceEntry struct {
	RegistryID uuid.UUID `json:"registry_id" binding:"required"`
	IsPresent  bool      `json:"is_present"`
}

// PresenceRequest is the body of PUT /schedules/:id/presences
type PresenceRequest struct {
	Presences []PresenceEntry `json:"presences" binding:"required,min=1,dive"`
}

// Register signs the actor up on an activity. The event registration window
// must be open, the actor not registered yet and a vacancy left.
func (s *RegistryService) Register(ctx context.Context, actor auth.Identity, activityID uuid.UUID) (*activity.Registry, error) {
	a, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if a.Event == nil {
		return nil, common.NewNotFound("event")
	}

	now := s.now()
	if err := a.Event.CheckRegistryWindow(now); err != nil {
		return nil, err
	}

	if _, err := s.registryRepo.GetByActivityAndUser(ctx, a.ID, actor.UserID); err == nil {
		return nil, common.ErrAlreadyRegisteredOnActivity
	} else if !common.IsNotFound(err) {
		return nil, err
	}

	registered, err := s.registryRepo.CountByActivityID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if err := activity.CheckVacancy(a.Vacancies, registered); err != nil {
		return nil, err
	}

	registry := activity.NewRegistry(a.ID, actor.UserID, now)
	if err := s.registryRepo.Create(ctx, registry); err != nil {
		return nil, err
	}

	s.log.Info("User registered on activity", "activity_id", a.ID, "user_id", actor.UserID)
	return registry, nil
}

// Cancel removes the actor's registry while the window is open and no presence was confirmed
func (s *RegistryService) Cancel(ctx context.Context, actor auth.Identity, activityID uuid.UUID) error {
	a, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return err
	}
	if a.Event == nil {
		return common.NewNotFound("event")
	}
	if err := a.Event.CheckRegistryWindow(s.now()); err != nil {
		return err
	}

	registry, err := s.registryRepo.GetByActivityAndUser(ctx, a.ID, actor.UserID)
	if err != nil {
		return err
	}
	for _, p := range registry.Presences {
		if p.IsPresent {
			return common.ErrRegistryHasPresences
		}
	}

	if err := s.registryRepo.Delete(ctx, registry.ID); err != nil {
		return err
	}

	s.log.Info("Registry cancelled", "activity_id", a.ID, "user_id", actor.UserID)
	return nil
}

// ListByActivity lists the registries of an activity for the people managing it
func (s *RegistryService) ListByActivity(ctx context.Context, actor auth.Identity, activityID uuid.UUID) ([]*activity.Registry, error) {
	a, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if !canManageActivity(actor, a) {
		return nil, common.ErrForbidden
	}
	return s.registryRepo.GetByActivityID(ctx, a.ID)
}

// Rate stores the actor's rating of an activity they attended
func (s *RegistryService) Rate(ctx context.Context, actor auth.Identity, registryID uuid.UUID, rating int) (*activity.Registry, error) {
	registry, err := s.registryRepo.GetByID(ctx, registryID)
	if err != nil {
		return nil, err
	}
	if registry.UserID != actor.UserID {
		return nil, common.ErrForbidden
	}

	if err := registry.Rate(rating); err != nil {
		return nil, err
	}
	if err := s.registryRepo.Update(ctx, registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// MarkPresence records attendance on one schedule and recomputes certificate readiness
func (s *RegistryService) MarkPresence(ctx context.Context, actor auth.Identity, scheduleID uuid.UUID, req PresenceRequest) ([]*activity.Registry, error) {
	schedule, err := s.activityRepo.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	a, err := s.activityRepo.GetByID(ctx, schedule.ActivityID)
	if err != nil {
		return nil, err
	}
	if !canManageActivity(actor, a) {
		return nil, common.ErrForbidden
	}

	registries := make([]*activity.Registry, 0, len(req.Presences))
	for i, entry := range req.Presences {
		registry, err := s.registryRepo.GetByID(ctx, entry.RegistryID)
		if err != nil && !common.IsNotFound(err) {
			return nil, err
		}
		if err != nil || registry.ActivityID != a.ID {
			return nil, common.NewValidationError(map[string]string{
				fmt.Sprintf("presences[%d].registry_id", i): "registry does not belong to this activity",
			})
		}
		registries = append(registries, registry)
	}

	for i, registry := range registries {
		err := s.registryRepo.SavePresence(ctx, &activity.Presence{
			ActivityRegistryID: registry.ID,
			ScheduleID:         schedule.ID,
			IsPresent:          req.Presences[i].IsPresent,
		})
		if err != nil {
			return nil, err
		}

		if err := s.refreshReadiness(ctx, a, registry); err != nil {
			return nil, err
		}
	}

	s.log.Info("Presences recorded", "schedule_id", schedule.ID, "count", len(registries), "actor", actor.UserID)
	return registries, nil
}

func (s *RegistryService) refreshReadiness(ctx context.Context, a *activity.Activity, registry *activity.Registry) error {
	presences, err := s.registryRepo.GetPresences(ctx, registry.ID)
	if err != nil {
		return err
	}
	registry.Presences = presences

	ready := activity.IsReadyForCertificate(a.Schedules, presences)
	if ready == registry.ReadyForCertificate {
		return nil
	}
	registry.ReadyForCertificate = ready
	return s.registryRepo.Update(ctx, registry)
}
