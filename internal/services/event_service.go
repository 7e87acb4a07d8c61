package services

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/gravadigital/eventos-api/internal/auth"
	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/logger"
	"github.com/gravadigital/eventos-api/internal/storage/postgres"
)

// EventService maneja la lógica de negocio de eventos
type EventService struct {
	eventRepo    postgres.EventRepository
	categoryRepo postgres.CategoryRepository
	userRepo     postgres.UserRepository
	log          *log.Logger
}

// NewEventService crea una nueva instancia del servicio de eventos
func NewEventService(eventRepo postgres.EventRepository, categoryRepo postgres.CategoryRepository, userRepo postgres.UserRepository) *EventService {
	return &EventService{
		eventRepo:    eventRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		log:          logger.Service("event"),
	}
}

// EventRequest is the body of event create and update
type EventRequest struct {
	Edition           int                  `json:"edition" binding:"required,min=1"`
	EditionDisplay    event.EditionDisplay `json:"edition_display" binding:"required"`
	Display           event.Display        `json:"display" binding:"required"`
	CategoryID        uuid.UUID            `json:"category_id" binding:"required"`
	Description       string               `json:"description" binding:"max=5000"`
	StartDate         time.Time            `json:"start_date" binding:"required"`
	EndDate           time.Time            `json:"end_date" binding:"required"`
	RegistryStartDate time.Time            `json:"registry_start_date" binding:"required"`
	RegistryEndDate   time.Time            `json:"registry_end_date" binding:"required"`
	ResponsibleIDs    []uuid.UUID          `json:"responsible_ids"`
}

func (req EventRequest) apply(e *event.Event) {
	e.Edition = req.Edition
	e.EditionDisplay = req.EditionDisplay
	e.Display = req.Display
	e.CategoryID = req.CategoryID
	e.Description = strings.TrimSpace(req.Description)
	e.StartDate = req.StartDate
	e.EndDate = req.EndDate
	e.RegistryStartDate = req.RegistryStartDate
	e.RegistryEndDate = req.RegistryEndDate
}

// CreateEvent crea un nuevo evento. Only admins open events.
func (s *EventService) CreateEvent(ctx context.Context, actor auth.Identity, req EventRequest) (*event.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	e := &event.Event{ID: uuid.New()}
	req.apply(e)
	if err := s.prepare(ctx, e, req.ResponsibleIDs); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, e, req.ResponsibleIDs); err != nil {
		return nil, err
	}

	s.log.Info("Event created", "event_id", e.ID, "slug", e.Slug, "actor", actor.UserID)
	return s.eventRepo.GetByID(ctx, e.ID)
}

// UpdateEvent replaces the event fields and its responsibles
func (s *EventService) UpdateEvent(ctx context.Context, actor auth.Identity, id uuid.UUID, req EventRequest) (*event.Event, error) {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManageEvent(actor, e) {
		return nil, common.ErrForbidden
	}

	req.apply(e)
	if err := s.prepare(ctx, e, req.ResponsibleIDs); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, e, req.ResponsibleIDs); err != nil {
		return nil, err
	}

	s.log.Info("Event updated", "event_id", e.ID, "actor", actor.UserID)
	return s.eventRepo.GetByID(ctx, e.ID)
}

// prepare validates the event, resolves its category and derives the slug
func (s *EventService) prepare(ctx context.Context, e *event.Event, responsibleIDs []uuid.UUID) error {
	if fields := e.Validate(); fields != nil {
		return common.NewValidationError(fields)
	}

	category, err := s.categoryRepo.GetByID(ctx, e.CategoryID)
	if err != nil {
		if common.IsNotFound(err) {
			return common.NewValidationError(map[string]string{"category_id": "category does not exist"})
		}
		return err
	}
	e.Category = category

	if err := checkUsersExist(ctx, s.userRepo, responsibleIDs, "responsible_ids"); err != nil {
		return err
	}

	fullName, err := e.FullName()
	if err != nil {
		return err
	}
	e.Slug = slug.Make(fullName)
	return nil
}

// GetAllEvents obtiene todos los eventos
func (s *EventService) GetAllEvents(ctx context.Context) ([]*event.Event, error) {
	return s.eventRepo.GetAll(ctx)
}

// GetEventByID obtiene un evento por su ID
func (s *EventService) GetEventByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// DeleteEvent removes an event that has no registries on any activity
func (s *EventService) DeleteEvent(ctx context.Context, actor auth.Identity, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		return err
	}

	registries, err := s.eventRepo.CountRegistries(ctx, id)
	if err != nil {
		return err
	}
	if registries > 0 {
		return common.ErrEventDeleteHasRegistry
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Event deleted", "event_id", id, "actor", actor.UserID)
	return nil
}
