package activity

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/gravadigital/eventos-api/internal/domain/common"
)

// ConflictKind tells which rule a conflict broke
type ConflictKind string

const (
	// ConflictSelf marks two candidate schedules of the same activity overlapping.
	ConflictSelf ConflictKind = "self"
	// ConflictRoom marks a room double-booked inside the same event.
	ConflictRoom ConflictKind = "room"
	// ConflictResponsible marks a responsible person booked in two activities at once.
	ConflictResponsible ConflictKind = "responsible"
)

// Conflict is one clash reported back to the client. ScheduleIndex points at the
// candidate schedule (form field) that triggered it.
type Conflict struct {
	Kind             ConflictKind `json:"kind"`
	ScheduleIndex    int          `json:"schedule_index"`
	ConflictingIndex *int         `json:"conflicting_index,omitempty"`
	ActivityName     string       `json:"activity_name"`
	EventName        string       `json:"event_name"`
	RoomName         *string      `json:"room_name,omitempty"`
	Message          string       `json:"message"`
}

// ExistingSchedule is a stored schedule of another activity, flattened with the
// names needed to describe a clash.
type ExistingSchedule struct {
	ScheduleID        uuid.UUID
	ActivityID        uuid.UUID
	ActivityName      string
	EventID           uuid.UUID
	EventName         string
	StartDate         time.Time
	DurationInMinutes int
	RoomID            *uuid.UUID
	RoomName          *string
	ResponsibleIDs    []uuid.UUID
}

// Interval returns the half-open interval of the stored schedule
func (e ExistingSchedule) Interval() Interval {
	return Interval{
		Start: e.StartDate,
		End:   e.StartDate.Add(time.Duration(e.DurationInMinutes) * time.Minute),
	}
}

// ConflictQuery describes an activity being created or edited.
// ActivityID is uuid.Nil when the activity does not exist yet.
type ConflictQuery struct {
	ActivityID     uuid.UUID
	ActivityName   string
	EventID        uuid.UUID
	EventName      string
	ResponsibleIDs []uuid.UUID
	Candidates     []Schedule
	Existing       []ExistingSchedule
}

// ConflictFilter narrows the stored schedules a repository must load for a query
type ConflictFilter struct {
	EventID           uuid.UUID
	ExcludeActivityID uuid.UUID
	RoomIDs           []uuid.UUID
	ResponsibleIDs    []uuid.UUID
	From              time.Time
	Until             time.Time
}

// IsEmpty reports whether no stored schedule can possibly conflict
func (f ConflictFilter) IsEmpty() bool {
	return len(f.RoomIDs) == 0 && len(f.ResponsibleIDs) == 0
}

// Filter derives the repository filter covering every candidate of the query
func (q ConflictQuery) Filter() ConflictFilter {
	f := ConflictFilter{
		EventID:           q.EventID,
		ExcludeActivityID: q.ActivityID,
		ResponsibleIDs:    slices.Clone(q.ResponsibleIDs),
	}

	for i, c := range q.Candidates {
		iv := c.Interval()
		if i == 0 || iv.Start.Before(f.From) {
			f.From = iv.Start
		}
		if i == 0 || iv.End.After(f.Until) {
			f.Until = iv.End
		}
		if c.RoomID != nil && !slices.Contains(f.RoomIDs, *c.RoomID) {
			f.RoomIDs = append(f.RoomIDs, *c.RoomID)
		}
	}

	return f
}

// DetectConflicts compares the candidates against each other and against the
// stored schedules. Self-conflicts take precedence: when any exists only those
// are returned.
func DetectConflicts(q ConflictQuery) []Conflict {
	if self := detectSelfConflicts(q); len(self) > 0 {
		return self
	}

	var conflicts []Conflict
	for i, candidate := range q.Candidates {
		iv := candidate.Interval()
		for _, existing := range q.Existing {
			if existing.ActivityID == q.ActivityID {
				continue
			}
			if !iv.Overlaps(existing.Interval()) {
				continue
			}

			switch {
			case sharesRoom(q, candidate, existing):
				conflicts = append(conflicts, roomConflict(i, existing))
			case sharesResponsible(q.ResponsibleIDs, existing.ResponsibleIDs):
				conflicts = append(conflicts, responsibleConflict(i, existing))
			}
		}
	}

	return conflicts
}

// CheckConflicts runs DetectConflicts and turns any finding into a DateConflictError
func CheckConflicts(q ConflictQuery) error {
	conflicts := DetectConflicts(q)
	if len(conflicts) == 0 {
		return nil
	}
	return common.ErrDateConflict.WithData(conflicts)
}

func detectSelfConflicts(q ConflictQuery) []Conflict {
	var conflicts []Conflict
	for j := 1; j < len(q.Candidates); j++ {
		for i := 0; i < j; i++ {
			if !q.Candidates[i].Interval().Overlaps(q.Candidates[j].Interval()) {
				continue
			}
			other := i
			conflicts = append(conflicts, Conflict{
				Kind:             ConflictSelf,
				ScheduleIndex:    j,
				ConflictingIndex: &other,
				ActivityName:     q.ActivityName,
				EventName:        q.EventName,
				Message:          fmt.Sprintf("schedule overlaps with schedule %d of the same activity", i+1),
			})
		}
	}
	return conflicts
}

// sharesRoom only applies inside the same event
func sharesRoom(q ConflictQuery, candidate Schedule, existing ExistingSchedule) bool {
	if existing.EventID != q.EventID {
		return false
	}
	if candidate.RoomID == nil || existing.RoomID == nil {
		return false
	}
	return *candidate.RoomID == *existing.RoomID
}

func sharesResponsible(current, other []uuid.UUID) bool {
	for _, id := range current {
		if slices.Contains(other, id) {
			return true
		}
	}
	return false
}

func roomConflict(index int, existing ExistingSchedule) Conflict {
	roomName := "the room"
	if existing.RoomName != nil {
		roomName = *existing.RoomName
	}
	return Conflict{
		Kind:          ConflictRoom,
		ScheduleIndex: index,
		ActivityName:  existing.ActivityName,
		EventName:     existing.EventName,
		RoomName:      existing.RoomName,
		Message: fmt.Sprintf("%s is already in use by activity %q of %s at this time",
			roomName, existing.ActivityName, existing.EventName),
	}
}

func responsibleConflict(index int, existing ExistingSchedule) Conflict {
	return Conflict{
		Kind:          ConflictResponsible,
		ScheduleIndex: index,
		ActivityName:  existing.ActivityName,
		EventName:     existing.EventName,
		RoomName:      existing.RoomName,
		Message: fmt.Sprintf("a responsible person is already allocated to activity %q of %s at this time",
			existing.ActivityName, existing.EventName),
	}
}
