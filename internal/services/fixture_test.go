package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gravadigital/eventos-api/internal/auth"
	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/domain/participant"
	"github.com/gravadigital/eventos-api/internal/domain/room"
	"github.com/gravadigital/eventos-api/internal/storage/memory"
)

// base is the opening of the test event
var base = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

type env struct {
	t     *testing.T
	ctx   context.Context
	store *memory.Store
	now   time.Time

	users        *UserService
	categories   *CategoryService
	rooms        *RoomService
	events       *EventService
	activities   *ActivityService
	registries   *RegistryService
	certificates *CertificateService

	admin    auth.Identity
	category *event.Category
	room     *room.Room
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		t:     t,
		ctx:   context.Background(),
		store: memory.NewStore(),
		now:   base.Add(-2 * time.Hour),
	}
	clock := func() time.Time { return e.now }
	tokens := auth.NewTokenManager("test-secret", time.Hour).WithClock(clock)

	e.users = NewUserService(e.store.Users(), tokens).WithHashCost(bcrypt.MinCost)
	e.categories = NewCategoryService(e.store.Categories())
	e.rooms = NewRoomService(e.store.Rooms())
	e.events = NewEventService(e.store.Events(), e.store.Categories(), e.store.Users())
	e.activities = NewActivityService(e.store.Activities(), e.store.Events(), e.store.Rooms(), e.store.Users(), e.store.Registries(), clock)
	e.registries = NewRegistryService(e.store.Registries(), e.store.Activities(), clock)
	e.certificates = NewCertificateService(e.store.Certificates(), e.store.Registries(), e.store.Events(), nil, clock)

	admin, err := e.users.EnsureAdmin(e.ctx, "Admin", "admin@example.com", "admin-password")
	require.NoError(t, err)
	e.admin = identity(admin)

	e.category, err = e.categories.Create(e.ctx, e.admin, CategoryRequest{Name: "Semana da Computação"})
	require.NoError(t, err)

	e.room, err = e.rooms.Create(e.ctx, e.admin, RoomRequest{Name: "Auditório", Code: "aud-1"})
	require.NoError(t, err)

	return e
}

func identity(u *participant.User) auth.Identity {
	return auth.Identity{UserID: u.ID, Role: u.Role}
}

func (e *env) participant(name, email string) auth.Identity {
	e.t.Helper()
	u, err := e.users.CreateUser(e.ctx, CreateUserRequest{Name: name, Email: email, Password: "secret-password"})
	require.NoError(e.t, err)
	return identity(u)
}

func (e *env) eventRequest(edition int, responsibles ...uuid.UUID) EventRequest {
	return EventRequest{
		Edition:           edition,
		EditionDisplay:    event.EditionRoman,
		Display:           event.ShowAll,
		CategoryID:        e.category.ID,
		Description:       "Semana acadêmica",
		StartDate:         base,
		EndDate:           base.Add(72 * time.Hour),
		RegistryStartDate: base.Add(-30 * 24 * time.Hour),
		RegistryEndDate:   base.Add(-time.Hour),
		ResponsibleIDs:    responsibles,
	}
}

func (e *env) createEvent(edition int, responsibles ...uuid.UUID) *event.Event {
	e.t.Helper()
	ev, err := e.events.CreateEvent(e.ctx, e.admin, e.eventRequest(edition, responsibles...))
	require.NoError(e.t, err)
	return ev
}

func (e *env) roomSlot(start time.Time, minutes int) ScheduleRequest {
	roomID := e.room.ID
	return ScheduleRequest{StartDate: start, DurationInMinutes: minutes, RoomID: &roomID}
}

func onlineSlot(start time.Time, minutes int) ScheduleRequest {
	url := "https://meet.example.com/talk"
	return ScheduleRequest{StartDate: start, DurationInMinutes: minutes, URL: &url}
}

func (e *env) createActivity(eventID uuid.UUID, title string, vacancies *int, responsibles []uuid.UUID, slots ...ScheduleRequest) *activity.Activity {
	e.t.Helper()
	a, err := e.activities.CreateActivity(e.ctx, e.admin, eventID, ActivityRequest{
		Title:          title,
		Vacancies:      vacancies,
		Speakers:       []string{"Grace Hopper"},
		Schedules:      slots,
		ResponsibleIDs: responsibles,
	})
	require.NoError(e.t, err)
	return a
}

func ptr[T any](v T) *T { return &v }
