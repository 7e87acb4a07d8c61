package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/gravadigital/eventos-api/internal/domain/certificate"
	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/domain/participant"
	"github.com/gravadigital/eventos-api/internal/domain/room"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *participant.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return common.ErrEmailAlreadyInUse
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*participant.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.NewNotFound("user")
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*participant.User, error) {
	email = participant.NormalizeEmail(email)

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.NewNotFound("user")
}

func (r *UserRepository) GetAll(_ context.Context) ([]*participant.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*participant.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, &u)
	}
	slices.SortFunc(users, func(a, b *participant.User) int { return strings.Compare(a.Name, b.Name) })
	return users, nil
}

func (r *UserRepository) MissingIDs(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []uuid.UUID
	for _, id := range ids {
		if _, ok := r.s.users[id]; !ok {
			out = append(out, id)
		}
	}
	return out, nil
}

type CategoryRepository struct{ s *Store }

func (r *CategoryRepository) Create(_ context.Context, category *event.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if c.Name == category.Name {
			return common.NewValidationError(map[string]string{"name": "a category with this name already exists"})
		}
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*event.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, common.NewNotFound("category")
	}
	return &c, nil
}

func (r *CategoryRepository) GetAll(_ context.Context) ([]*event.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*event.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *event.Category) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

type RoomRepository struct{ s *Store }

func (r *RoomRepository) Create(_ context.Context, rm *room.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.rooms {
		if existing.Code == rm.Code {
			return common.NewValidationError(map[string]string{"code": "a room with this code already exists"})
		}
	}
	if rm.ID == uuid.Nil {
		rm.ID = uuid.New()
	}
	r.s.rooms[rm.ID] = *rm
	return nil
}

func (r *RoomRepository) GetByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rm, ok := r.s.rooms[id]
	if !ok {
		return nil, common.NewNotFound("room")
	}
	return &rm, nil
}

func (r *RoomRepository) GetAll(_ context.Context) ([]*room.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*room.Room, 0, len(r.s.rooms))
	for _, rm := range r.s.rooms {
		out = append(out, &rm)
	}
	slices.SortFunc(out, func(a, b *room.Room) int { return strings.Compare(a.Code, b.Code) })
	return out, nil
}

func (r *RoomRepository) MissingIDs(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []uuid.UUID
	for _, id := range ids {
		if _, ok := r.s.rooms[id]; !ok {
			out = append(out, id)
		}
	}
	return out, nil
}

type EventRepository struct{ s *Store }

func (r *EventRepository) save(e *event.Event, responsibleIDs []uuid.UUID) error {
	for _, other := range r.s.events {
		if other.ID != e.ID && other.Slug == e.Slug {
			return common.NewValidationError(map[string]string{"slug": "an event with this name already exists"})
		}
	}

	stored := *e
	stored.Category = nil
	stored.Responsibles = nil
	r.s.events[e.ID] = stored
	r.s.eventResponsibles[e.ID] = dedupe(responsibleIDs)
	return nil
}

func (r *EventRepository) Create(_ context.Context, e *event.Event, responsibleIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return r.save(e, responsibleIDs)
}

func (r *EventRepository) Update(_ context.Context, e *event.Event, responsibleIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[e.ID]; !ok {
		return common.NewNotFound("event")
	}
	return r.save(e, responsibleIDs)
}

func (r *EventRepository) GetByID(_ context.Context, id uuid.UUID) (*event.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.loadEvent(id)
	if !ok {
		return nil, common.NewNotFound("event")
	}
	return e, nil
}

func (r *EventRepository) GetAll(_ context.Context) ([]*event.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*event.Event, 0, len(r.s.events))
	for id := range r.s.events {
		e, _ := r.s.loadEvent(id)
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *event.Event) int { return b.StartDate.Compare(a.StartDate) })
	return out, nil
}

func (r *EventRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return common.NewNotFound("event")
	}
	for activityID, a := range r.s.activities {
		if a.EventID == id {
			r.s.deleteActivity(activityID)
		}
	}
	delete(r.s.events, id)
	delete(r.s.eventResponsibles, id)
	return nil
}

func (r *EventRepository) CountRegistries(_ context.Context, eventID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, reg := range r.s.registries {
		if a, ok := r.s.activities[reg.ActivityID]; ok && a.EventID == eventID {
			count++
		}
	}
	return count, nil
}

type CertificateRepository struct{ s *Store }

func (r *CertificateRepository) Create(_ context.Context, c *certificate.Certificate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.certificates {
		if existing.RegistryID == c.RegistryID || existing.Code == c.Code {
			return common.NewValidationError(map[string]string{"registry_id": "certificate already issued"})
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.s.certificates[c.ID] = *c
	return nil
}

func (r *CertificateRepository) GetByCode(_ context.Context, code string) (*certificate.Certificate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.certificates {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, common.NewNotFound("certificate")
}

func (r *CertificateRepository) GetByUserID(_ context.Context, userID uuid.UUID) ([]*certificate.Certificate, error) {
	return r.filter(func(c certificate.Certificate) bool { return c.UserID == userID }), nil
}

func (r *CertificateRepository) GetByEventID(_ context.Context, eventID uuid.UUID) ([]*certificate.Certificate, error) {
	return r.filter(func(c certificate.Certificate) bool { return c.EventID == eventID }), nil
}

func (r *CertificateRepository) ExistsForRegistry(_ context.Context, registryID uuid.UUID) (bool, error) {
	found := r.filter(func(c certificate.Certificate) bool { return c.RegistryID == registryID })
	return len(found) > 0, nil
}

func (r *CertificateRepository) filter(match func(certificate.Certificate) bool) []*certificate.Certificate {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*certificate.Certificate
	for _, c := range r.s.certificates {
		if match(c) {
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *certificate.Certificate) int { return a.IssuedAt.Compare(b.IssuedAt) })
	return out
}
