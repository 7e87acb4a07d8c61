package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/common"
)

type ActivityRepository struct{ s *Store }

func (r *ActivityRepository) save(a *activity.Activity, responsibleIDs []uuid.UUID) {
	for i := range a.Schedules {
		if a.Schedules[i].ID == uuid.Nil {
			a.Schedules[i].ID = uuid.New()
		}
		a.Schedules[i].ActivityID = a.ID
	}

	stored := *a
	stored.Event = nil
	stored.Responsibles = nil
	stored.Speakers = slices.Clone(a.Speakers)
	stored.Schedules = slices.Clone(a.Schedules)
	for i := range stored.Schedules {
		stored.Schedules[i].Room = nil
	}
	r.s.activities[a.ID] = stored
	r.s.activityResponsibles[a.ID] = dedupe(responsibleIDs)
}

func (r *ActivityRepository) Create(_ context.Context, a *activity.Activity, responsibleIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[a.EventID]; !ok {
		return common.NewNotFound("event")
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.save(a, responsibleIDs)
	return nil
}

func (r *ActivityRepository) Update(_ context.Context, a *activity.Activity, responsibleIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.activities[a.ID]
	if !ok {
		return common.NewNotFound("activity")
	}
	// replaced schedules take their presences with them
	for _, sch := range old.Schedules {
		r.s.deletePresencesOfSchedule(sch.ID)
	}
	r.save(a, responsibleIDs)
	return nil
}

func (r *ActivityRepository) GetByID(_ context.Context, id uuid.UUID) (*activity.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.loadActivity(id)
	if !ok {
		return nil, common.NewNotFound("activity")
	}
	return a, nil
}

func (r *ActivityRepository) GetByEventID(_ context.Context, eventID uuid.UUID) ([]*activity.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*activity.Activity
	for id, a := range r.s.activities {
		if a.EventID != eventID {
			continue
		}
		loaded, _ := r.s.loadActivity(id)
		out = append(out, loaded)
	}
	slices.SortFunc(out, func(a, b *activity.Activity) int { return strings.Compare(a.Title, b.Title) })
	return out, nil
}

func (r *ActivityRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.activities[id]; !ok {
		return common.NewNotFound("activity")
	}
	r.s.deleteActivity(id)
	return nil
}

func (r *ActivityRepository) GetScheduleByID(_ context.Context, id uuid.UUID) (*activity.Schedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.activities {
		for _, sch := range r.s.schedulesOf(a) {
			if sch.ID == id {
				return &sch, nil
			}
		}
	}
	return nil, common.NewNotFound("schedule")
}

// FindConflictCandidates mirrors the SQL filter of the postgres repository
func (r *ActivityRepository) FindConflictCandidates(_ context.Context, f activity.ConflictFilter) ([]activity.ExistingSchedule, error) {
	if f.IsEmpty() {
		return nil, nil
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	window := activity.Interval{Start: f.From, End: f.Until}

	var out []activity.ExistingSchedule
	for id, a := range r.s.activities {
		if id == f.ExcludeActivityID {
			continue
		}

		responsibles := r.s.activityResponsibles[id]
		sharesPerson := slices.ContainsFunc(responsibles, func(u uuid.UUID) bool {
			return slices.Contains(f.ResponsibleIDs, u)
		})

		eventName := ""
		if e, ok := r.s.loadEvent(a.EventID); ok {
			eventName = e.DisplayName()
		}

		for _, sch := range r.s.schedulesOf(a) {
			if !sch.Interval().Overlaps(window) {
				continue
			}
			sameRoom := a.EventID == f.EventID && sch.RoomID != nil && slices.Contains(f.RoomIDs, *sch.RoomID)
			if !sameRoom && !sharesPerson {
				continue
			}

			var roomName *string
			if sch.Room != nil {
				name := sch.Room.Name
				roomName = &name
			}
			out = append(out, activity.ExistingSchedule{
				ScheduleID:        sch.ID,
				ActivityID:        id,
				ActivityName:      a.Title,
				EventID:           a.EventID,
				EventName:         eventName,
				StartDate:         sch.StartDate,
				DurationInMinutes: sch.DurationInMinutes,
				RoomID:            sch.RoomID,
				RoomName:          roomName,
				ResponsibleIDs:    slices.Clone(responsibles),
			})
		}
	}

	slices.SortFunc(out, func(a, b activity.ExistingSchedule) int { return a.StartDate.Compare(b.StartDate) })
	return out, nil
}

// deleteActivity cascades to registries and presences. Caller holds the lock.
func (s *Store) deleteActivity(id uuid.UUID) {
	for regID, reg := range s.registries {
		if reg.ActivityID == id {
			s.deleteRegistry(regID)
		}
	}
	delete(s.activities, id)
	delete(s.activityResponsibles, id)
}

// deleteRegistry cascades to presences. Caller holds the lock.
func (s *Store) deleteRegistry(id uuid.UUID) {
	for pid, p := range s.presences {
		if p.ActivityRegistryID == id {
			delete(s.presences, pid)
		}
	}
	delete(s.registries, id)
}

func (s *Store) deletePresencesOfSchedule(scheduleID uuid.UUID) {
	for pid, p := range s.presences {
		if p.ScheduleID == scheduleID {
			delete(s.presences, pid)
		}
	}
}
