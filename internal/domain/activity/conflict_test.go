package activity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/eventos-api/internal/domain/common"
)

var base = time.Date(2024, time.October, 21, 8, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func ptr[T any](v T) *T {
	return &v
}

func existingAt(eventID uuid.UUID, roomID *uuid.UUID, start, duration int, responsibles ...uuid.UUID) ExistingSchedule {
	return ExistingSchedule{
		ScheduleID:        uuid.New(),
		ActivityID:        uuid.New(),
		ActivityName:      "Minicurso de Go",
		EventID:           eventID,
		EventName:         "5 Semana da Computação 2024",
		StartDate:         at(start),
		DurationInMinutes: duration,
		RoomID:            roomID,
		RoomName:          ptr("Auditório"),
		ResponsibleIDs:    responsibles,
	}
}

func TestIntervalOverlaps(t *testing.T) {
	a := Interval{Start: at(0), End: at(60)}

	assert.True(t, a.Overlaps(Interval{Start: at(30), End: at(90)}))
	assert.True(t, a.Overlaps(Interval{Start: at(-30), End: at(10)}))
	assert.True(t, a.Overlaps(Interval{Start: at(10), End: at(20)}), "containment")
	assert.False(t, a.Overlaps(Interval{Start: at(60), End: at(120)}), "touching end")
	assert.False(t, a.Overlaps(Interval{Start: at(-60), End: at(0)}), "touching start")
	assert.False(t, a.Overlaps(Interval{Start: at(120), End: at(180)}))
}

func TestDetectConflictsRoom(t *testing.T) {
	eventID := uuid.New()
	roomID := uuid.New()

	q := ConflictQuery{
		EventID:    eventID,
		Candidates: []Schedule{{StartDate: at(0), DurationInMinutes: 90, RoomID: &roomID}},
		Existing:   []ExistingSchedule{existingAt(eventID, &roomID, 60, 60)},
	}

	conflicts := DetectConflicts(q)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictRoom, conflicts[0].Kind)
	assert.Equal(t, 0, conflicts[0].ScheduleIndex)
	assert.Equal(t, "Minicurso de Go", conflicts[0].ActivityName)
	assert.Equal(t, "5 Semana da Computação 2024", conflicts[0].EventName)
	require.NotNil(t, conflicts[0].RoomName)
	assert.Equal(t, "Auditório", *conflicts[0].RoomName)
}

func TestDetectConflictsBoundaryIsExclusive(t *testing.T) {
	eventID := uuid.New()
	roomID := uuid.New()

	q := ConflictQuery{
		EventID:    eventID,
		Candidates: []Schedule{{StartDate: at(60), DurationInMinutes: 60, RoomID: &roomID}},
		Existing: []ExistingSchedule{
			existingAt(eventID, &roomID, 0, 60),
			existingAt(eventID, &roomID, 120, 30),
		},
	}

	assert.Empty(t, DetectConflicts(q))
	assert.NoError(t, CheckConflicts(q))
}

func TestDetectConflictsNoOverlapIgnoresSharedRoomAndPeople(t *testing.T) {
	eventID := uuid.New()
	roomID := uuid.New()
	person := uuid.New()

	q := ConflictQuery{
		EventID:        eventID,
		ResponsibleIDs: []uuid.UUID{person},
		Candidates:     []Schedule{{StartDate: at(0), DurationInMinutes: 30, RoomID: &roomID}},
		Existing:       []ExistingSchedule{existingAt(eventID, &roomID, 45, 30, person)},
	}

	assert.Empty(t, DetectConflicts(q))
}

func TestDetectConflictsRoomScopedToEvent(t *testing.T) {
	roomID := uuid.New()

	q := ConflictQuery{
		EventID:    uuid.New(),
		Candidates: []Schedule{{StartDate: at(0), DurationInMinutes: 60, RoomID: &roomID}},
		Existing:   []ExistingSchedule{existingAt(uuid.New(), &roomID, 0, 60)},
	}

	assert.Empty(t, DetectConflicts(q))
}

func TestDetectConflictsResponsibleAcrossEvents(t *testing.T) {
	person := uuid.New()

	q := ConflictQuery{
		EventID:        uuid.New(),
		ResponsibleIDs: []uuid.UUID{uuid.New(), person},
		Candidates:     []Schedule{{StartDate: at(0), DurationInMinutes: 60, URL: ptr("https://meet.example.com/a")}},
		Existing:       []ExistingSchedule{existingAt(uuid.New(), nil, 30, 60, person)},
	}

	conflicts := DetectConflicts(q)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictResponsible, conflicts[0].Kind)
}

func TestDetectConflictsOneRecordPerPair(t *testing.T) {
	eventID := uuid.New()
	roomID := uuid.New()
	person := uuid.New()

	q := ConflictQuery{
		EventID:        eventID,
		ResponsibleIDs: []uuid.UUID{person},
		Candidates:     []Schedule{{StartDate: at(0), DurationInMinutes: 60, RoomID: &roomID}},
		Existing:       []ExistingSchedule{existingAt(eventID, &roomID, 0, 60, person)},
	}

	conflicts := DetectConflicts(q)
	require.Len(t, conflicts, 1, "room and person clash on the same pair is reported once")
	assert.Equal(t, ConflictRoom, conflicts[0].Kind)
}

func TestDetectConflictsSkipsOwnActivity(t *testing.T) {
	eventID := uuid.New()
	roomID := uuid.New()
	existing := existingAt(eventID, &roomID, 0, 60)

	q := ConflictQuery{
		ActivityID: existing.ActivityID,
		EventID:    eventID,
		Candidates: []Schedule{{StartDate: at(0), DurationInMinutes: 60, RoomID: &roomID}},
		Existing:   []ExistingSchedule{existing},
	}

	assert.Empty(t, DetectConflicts(q))
}

func TestDetectConflictsSelfShortCircuits(t *testing.T) {
	eventID := uuid.New()
	roomID := uuid.New()

	q := ConflictQuery{
		ActivityName: "Palestra de abertura",
		EventID:      eventID,
		Candidates: []Schedule{
			{StartDate: at(0), DurationInMinutes: 60, RoomID: &roomID},
			{StartDate: at(120), DurationInMinutes: 60, RoomID: &roomID},
			{StartDate: at(30), DurationInMinutes: 60, URL: ptr("https://meet.example.com/b")},
		},
		Existing: []ExistingSchedule{existingAt(eventID, &roomID, 0, 240)},
	}

	conflicts := DetectConflicts(q)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictSelf, conflicts[0].Kind)
	assert.Equal(t, 2, conflicts[0].ScheduleIndex)
	require.NotNil(t, conflicts[0].ConflictingIndex)
	assert.Equal(t, 0, *conflicts[0].ConflictingIndex)
	assert.Equal(t, "Palestra de abertura", conflicts[0].ActivityName)
}

func TestCheckConflictsReturnsDateConflictError(t *testing.T) {
	eventID := uuid.New()
	roomID := uuid.New()

	q := ConflictQuery{
		EventID: eventID,
		Candidates: []Schedule{
			{StartDate: at(0), DurationInMinutes: 60, RoomID: &roomID},
			{StartDate: at(300), DurationInMinutes: 60, RoomID: &roomID},
		},
		Existing: []ExistingSchedule{
			existingAt(eventID, &roomID, 30, 10),
			existingAt(eventID, &roomID, 320, 10),
		},
	}

	err := CheckConflicts(q)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDateConflict))

	be, ok := common.AsBusinessError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindConflict, be.Kind)
	conflicts, ok := be.Data.([]Conflict)
	require.True(t, ok)
	require.Len(t, conflicts, 2)
	assert.Equal(t, 0, conflicts[0].ScheduleIndex)
	assert.Equal(t, 1, conflicts[1].ScheduleIndex)

	assert.Nil(t, common.ErrDateConflict.Data, "sentinel must not be mutated")
}

func TestConflictQueryFilter(t *testing.T) {
	roomA := uuid.New()
	roomB := uuid.New()
	person := uuid.New()
	activityID := uuid.New()

	q := ConflictQuery{
		ActivityID:     activityID,
		EventID:        uuid.New(),
		ResponsibleIDs: []uuid.UUID{person},
		Candidates: []Schedule{
			{StartDate: at(120), DurationInMinutes: 60, RoomID: &roomA},
			{StartDate: at(0), DurationInMinutes: 30, RoomID: &roomB},
			{StartDate: at(200), DurationInMinutes: 100, RoomID: &roomA},
		},
	}

	f := q.Filter()
	assert.Equal(t, activityID, f.ExcludeActivityID)
	assert.Equal(t, at(0), f.From)
	assert.Equal(t, at(300), f.Until)
	assert.ElementsMatch(t, []uuid.UUID{roomA, roomB}, f.RoomIDs)
	assert.Equal(t, []uuid.UUID{person}, f.ResponsibleIDs)
	assert.False(t, f.IsEmpty())
}
