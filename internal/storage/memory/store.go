// Package memory keeps every repository in process memory. It backs the
// service and handler tests and the "memory" storage type for local runs.
package memory

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/certificate"
	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/domain/participant"
	"github.com/gravadigital/eventos-api/internal/domain/room"
	"github.com/gravadigital/eventos-api/internal/storage/postgres"
)

// Store holds the rows of every table behind one lock
type Store struct {
	mu sync.RWMutex

	users        map[uuid.UUID]participant.User
	categories   map[uuid.UUID]event.Category
	rooms        map[uuid.UUID]room.Room
	events       map[uuid.UUID]event.Event
	activities   map[uuid.UUID]activity.Activity
	registries   map[uuid.UUID]activity.Registry
	presences    map[uuid.UUID]activity.Presence
	certificates map[uuid.UUID]certificate.Certificate

	eventResponsibles    map[uuid.UUID][]uuid.UUID
	activityResponsibles map[uuid.UUID][]uuid.UUID
}

var _ postgres.RepositoryContainer = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:                make(map[uuid.UUID]participant.User),
		categories:           make(map[uuid.UUID]event.Category),
		rooms:                make(map[uuid.UUID]room.Room),
		events:               make(map[uuid.UUID]event.Event),
		activities:           make(map[uuid.UUID]activity.Activity),
		registries:           make(map[uuid.UUID]activity.Registry),
		presences:            make(map[uuid.UUID]activity.Presence),
		certificates:         make(map[uuid.UUID]certificate.Certificate),
		eventResponsibles:    make(map[uuid.UUID][]uuid.UUID),
		activityResponsibles: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *Store) Users() postgres.UserRepository               { return &UserRepository{s} }
func (s *Store) Categories() postgres.CategoryRepository      { return &CategoryRepository{s} }
func (s *Store) Rooms() postgres.RoomRepository               { return &RoomRepository{s} }
func (s *Store) Events() postgres.EventRepository             { return &EventRepository{s} }
func (s *Store) Activities() postgres.ActivityRepository      { return &ActivityRepository{s} }
func (s *Store) Registries() postgres.RegistryRepository      { return &RegistryRepository{s} }
func (s *Store) Certificates() postgres.CertificateRepository { return &CertificateRepository{s} }

func (s *Store) Health() error { return nil }
func (s *Store) Close() error  { return nil }

// summaries resolves user ids into summaries, skipping unknown ids. Caller holds the lock.
func (s *Store) summaries(ids []uuid.UUID) []common.UserSummary {
	out := make([]common.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u.Summary())
		}
	}
	return out
}

// loadEvent returns a detached event with category and responsibles. Caller holds the lock.
func (s *Store) loadEvent(id uuid.UUID) (*event.Event, bool) {
	e, ok := s.events[id]
	if !ok {
		return nil, false
	}
	if c, ok := s.categories[e.CategoryID]; ok {
		e.Category = &c
	}
	e.Responsibles = s.summaries(s.eventResponsibles[id])
	return &e, true
}

// loadActivity returns a detached activity with its relations. Caller holds the lock.
func (s *Store) loadActivity(id uuid.UUID) (*activity.Activity, bool) {
	a, ok := s.activities[id]
	if !ok {
		return nil, false
	}
	if e, ok := s.loadEvent(a.EventID); ok {
		a.Event = e
	}
	a.Speakers = slices.Clone(a.Speakers)
	a.Schedules = s.schedulesOf(a)
	a.Responsibles = s.summaries(s.activityResponsibles[id])
	return &a, true
}

func (s *Store) schedulesOf(a activity.Activity) []activity.Schedule {
	schedules := slices.Clone(a.Schedules)
	for i := range schedules {
		if schedules[i].RoomID == nil {
			continue
		}
		if r, ok := s.rooms[*schedules[i].RoomID]; ok {
			schedules[i].Room = &r
		}
	}
	slices.SortFunc(schedules, func(x, y activity.Schedule) int {
		return x.StartDate.Compare(y.StartDate)
	})
	return schedules
}

// loadRegistry returns a detached registry with user and presences. Caller holds the lock.
func (s *Store) loadRegistry(id uuid.UUID) (*activity.Registry, bool) {
	r, ok := s.registries[id]
	if !ok {
		return nil, false
	}
	if u, ok := s.users[r.UserID]; ok {
		summary := u.Summary()
		r.User = &summary
	}
	r.Presences = s.presencesOf(id)
	return &r, true
}

func (s *Store) presencesOf(registryID uuid.UUID) []activity.Presence {
	var out []activity.Presence
	for _, p := range s.presences {
		if p.ActivityRegistryID == registryID {
			out = append(out, p)
		}
	}
	return out
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
