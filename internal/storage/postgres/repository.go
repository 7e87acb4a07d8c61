package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/certificate"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/domain/participant"
	"github.com/gravadigital/eventos-api/internal/domain/room"
)

// UserRepository define los métodos para interactuar con los usuarios en la DB.
type UserRepository interface {
	Create(ctx context.Context, user *participant.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*participant.User, error)
	GetByEmail(ctx context.Context, email string) (*participant.User, error)
	GetAll(ctx context.Context) ([]*participant.User, error)
	// MissingIDs returns the ids that do not belong to any user
	MissingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

// CategoryRepository stores event categories
type CategoryRepository interface {
	Create(ctx context.Context, category *event.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*event.Category, error)
	GetAll(ctx context.Context) ([]*event.Category, error)
}

// RoomRepository stores rooms
type RoomRepository interface {
	Create(ctx context.Context, room *room.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	GetAll(ctx context.Context) ([]*room.Room, error)
	// MissingIDs returns the ids that do not belong to any room
	MissingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

// EventRepository define los metodos para interactuar con los eventos en la DB.
// Reads preload the category and the responsibles.
type EventRepository interface {
	Create(ctx context.Context, event *event.Event, responsibleIDs []uuid.UUID) error
	Update(ctx context.Context, event *event.Event, responsibleIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error)
	GetAll(ctx context.Context) ([]*event.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountRegistries(ctx context.Context, eventID uuid.UUID) (int64, error)
}

// ActivityRepository stores activities with their schedules and responsibles.
// Reads preload the event (with category), schedules (with rooms) and responsibles.
type ActivityRepository interface {
	Create(ctx context.Context, activity *activity.Activity, responsibleIDs []uuid.UUID) error
	// Update saves the activity and replaces its schedules and responsibles
	Update(ctx context.Context, activity *activity.Activity, responsibleIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*activity.Activity, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) ([]*activity.Activity, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetScheduleByID(ctx context.Context, id uuid.UUID) (*activity.Schedule, error)
	FindConflictCandidates(ctx context.Context, filter activity.ConflictFilter) ([]activity.ExistingSchedule, error)
}

// RegistryRepository stores activity registries and their presences
type RegistryRepository interface {
	Create(ctx context.Context, registry *activity.Registry) error
	Update(ctx context.Context, registry *activity.Registry) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*activity.Registry, error)
	GetByActivityAndUser(ctx context.Context, activityID, userID uuid.UUID) (*activity.Registry, error)
	GetByActivityID(ctx context.Context, activityID uuid.UUID) ([]*activity.Registry, error)
	// GetReadyByEventID preloads the user and the activity of each ready registry
	GetReadyByEventID(ctx context.Context, eventID uuid.UUID) ([]*activity.Registry, error)
	CountByActivityID(ctx context.Context, activityID uuid.UUID) (int64, error)
	CountPresencesByActivityID(ctx context.Context, activityID uuid.UUID) (int64, error)
	GetPresences(ctx context.Context, registryID uuid.UUID) ([]activity.Presence, error)
	// SavePresence inserts or updates the presence of (registry, schedule)
	SavePresence(ctx context.Context, presence *activity.Presence) error
}

// CertificateRepository stores issued certificates
type CertificateRepository interface {
	Create(ctx context.Context, certificate *certificate.Certificate) error
	GetByCode(ctx context.Context, code string) (*certificate.Certificate, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*certificate.Certificate, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) ([]*certificate.Certificate, error)
	ExistsForRegistry(ctx context.Context, registryID uuid.UUID) (bool, error)
}

// RepositoryContainer groups every repository behind one handle
type RepositoryContainer interface {
	Users() UserRepository
	Categories() CategoryRepository
	Rooms() RoomRepository
	Events() EventRepository
	Activities() ActivityRepository
	Registries() RegistryRepository
	Certificates() CertificateRepository
	Health() error
	Close() error
}
