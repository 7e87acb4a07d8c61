package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/common"
)

type RegistryRepository struct{ s *Store }

func (r *RegistryRepository) Create(_ context.Context, registry *activity.Registry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.activities[registry.ActivityID]; !ok {
		return common.NewNotFound("activity")
	}
	for _, existing := range r.s.registries {
		if existing.ActivityID == registry.ActivityID && existing.UserID == registry.UserID {
			return common.ErrAlreadyRegisteredOnActivity
		}
	}
	if registry.ID == uuid.Nil {
		registry.ID = uuid.New()
	}

	stored := *registry
	stored.Activity = nil
	stored.User = nil
	stored.Presences = nil
	r.s.registries[registry.ID] = stored
	return nil
}

func (r *RegistryRepository) Update(_ context.Context, registry *activity.Registry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.registries[registry.ID]
	if !ok {
		return common.NewNotFound("registry")
	}
	stored.ReadyForCertificate = registry.ReadyForCertificate
	stored.Rating = registry.Rating
	r.s.registries[registry.ID] = stored
	return nil
}

func (r *RegistryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.registries[id]; !ok {
		return common.NewNotFound("registry")
	}
	r.s.deleteRegistry(id)
	return nil
}

func (r *RegistryRepository) GetByID(_ context.Context, id uuid.UUID) (*activity.Registry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reg, ok := r.s.loadRegistry(id)
	if !ok {
		return nil, common.NewNotFound("registry")
	}
	return reg, nil
}

func (r *RegistryRepository) GetByActivityAndUser(_ context.Context, activityID, userID uuid.UUID) (*activity.Registry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for id, reg := range r.s.registries {
		if reg.ActivityID == activityID && reg.UserID == userID {
			loaded, _ := r.s.loadRegistry(id)
			return loaded, nil
		}
	}
	return nil, common.NewNotFound("registry")
}

func (r *RegistryRepository) GetByActivityID(_ context.Context, activityID uuid.UUID) ([]*activity.Registry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*activity.Registry
	for id, reg := range r.s.registries {
		if reg.ActivityID == activityID {
			loaded, _ := r.s.loadRegistry(id)
			out = append(out, loaded)
		}
	}
	slices.SortFunc(out, func(a, b *activity.Registry) int { return a.RegistryDate.Compare(b.RegistryDate) })
	return out, nil
}

func (r *RegistryRepository) GetReadyByEventID(_ context.Context, eventID uuid.UUID) ([]*activity.Registry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*activity.Registry
	for id, reg := range r.s.registries {
		if !reg.ReadyForCertificate {
			continue
		}
		a, ok := r.s.activities[reg.ActivityID]
		if !ok || a.EventID != eventID {
			continue
		}
		loaded, _ := r.s.loadRegistry(id)
		loaded.Activity, _ = r.s.loadActivity(reg.ActivityID)
		out = append(out, loaded)
	}
	slices.SortFunc(out, func(a, b *activity.Registry) int { return a.RegistryDate.Compare(b.RegistryDate) })
	return out, nil
}

func (r *RegistryRepository) CountByActivityID(_ context.Context, activityID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, reg := range r.s.registries {
		if reg.ActivityID == activityID {
			count++
		}
	}
	return count, nil
}

func (r *RegistryRepository) CountPresencesByActivityID(_ context.Context, activityID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, p := range r.s.presences {
		reg, ok := r.s.registries[p.ActivityRegistryID]
		if ok && reg.ActivityID == activityID && p.IsPresent {
			count++
		}
	}
	return count, nil
}

func (r *RegistryRepository) GetPresences(_ context.Context, registryID uuid.UUID) ([]activity.Presence, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.presencesOf(registryID), nil
}

func (r *RegistryRepository) SavePresence(_ context.Context, presence *activity.Presence) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.registries[presence.ActivityRegistryID]; !ok {
		return common.NewNotFound("registry")
	}
	for id, p := range r.s.presences {
		if p.ActivityRegistryID == presence.ActivityRegistryID && p.ScheduleID == presence.ScheduleID {
			p.IsPresent = presence.IsPresent
			r.s.presences[id] = p
			*presence = p
			return nil
		}
	}

	if presence.ID == uuid.Nil {
		presence.ID = uuid.New()
	}
	stored := *presence
	stored.Schedule = nil
	r.s.presences[presence.ID] = stored
	return nil
}
