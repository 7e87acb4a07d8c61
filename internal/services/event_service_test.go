package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/event"
)

func TestEventService_CreateEvent(t *testing.T) {
	e := newEnv(t)
	ana := e.participant("Ana", "ana@example.com")

	ev := e.createEvent(3, ana.UserID)

	assert.Equal(t, "iii-semana-da-computacao-2026", ev.Slug)
	require.NotNil(t, ev.Category)
	assert.True(t, ev.IsResponsible(ana.UserID))

	name, err := ev.Name()
	require.NoError(t, err)
	assert.Equal(t, "III Semana da Computação 2026", name)
}

func TestEventService_EditionsWithoutEditionInNameGetDistinctSlugs(t *testing.T) {
	e := newEnv(t)
	year := 365 * 24 * time.Hour

	first := e.eventRequest(1)
	first.Display = event.ShowNone
	ev1, err := e.events.CreateEvent(e.ctx, e.admin, first)
	require.NoError(t, err)

	second := e.eventRequest(2)
	second.Display = event.ShowNone
	second.StartDate = second.StartDate.Add(year)
	second.EndDate = second.EndDate.Add(year)
	second.RegistryStartDate = second.RegistryStartDate.Add(year)
	second.RegistryEndDate = second.RegistryEndDate.Add(year)
	ev2, err := e.events.CreateEvent(e.ctx, e.admin, second)
	require.NoError(t, err)

	assert.Equal(t, "i-semana-da-computacao-2026", ev1.Slug)
	assert.Equal(t, "ii-semana-da-computacao-2027", ev2.Slug)
	assert.Equal(t, ev1.DisplayName(), ev2.DisplayName())

	// same year, year-only display
	third := e.eventRequest(3)
	third.Display = event.ShowYearOnly
	ev3, err := e.events.CreateEvent(e.ctx, e.admin, third)
	require.NoError(t, err)
	assert.Equal(t, "iii-semana-da-computacao-2026", ev3.Slug)
	assert.Equal(t, "Semana da Computação 2026", ev3.DisplayName())
}

func TestEventService_CreateEventRequiresAdmin(t *testing.T) {
	e := newEnv(t)
	ana := e.participant("Ana", "ana@example.com")

	_, err := e.events.CreateEvent(e.ctx, ana, e.eventRequest(1))
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestEventService_CreateEventValidation(t *testing.T) {
	e := newEnv(t)

	req := e.eventRequest(1)
	req.RegistryEndDate = req.StartDate.Add(time.Hour)
	_, err := e.events.CreateEvent(e.ctx, e.admin, req)

	be, ok := common.AsBusinessError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindValidation, be.Kind)
	assert.Contains(t, be.Fields, "start_date")

	req = e.eventRequest(1)
	req.CategoryID = uuid.New()
	_, err = e.events.CreateEvent(e.ctx, e.admin, req)
	be, ok = common.AsBusinessError(err)
	require.True(t, ok)
	assert.Contains(t, be.Fields, "category_id")

	req = e.eventRequest(1, uuid.New())
	_, err = e.events.CreateEvent(e.ctx, e.admin, req)
	be, ok = common.AsBusinessError(err)
	require.True(t, ok)
	assert.Contains(t, be.Fields, "responsible_ids")
}

func TestEventService_UpdateEventByResponsible(t *testing.T) {
	e := newEnv(t)
	ana := e.participant("Ana", "ana@example.com")
	bob := e.participant("Bob", "bob@example.com")
	ev := e.createEvent(3, ana.UserID)

	req := e.eventRequest(4, ana.UserID)
	req.EditionDisplay = event.EditionArabic
	updated, err := e.events.UpdateEvent(e.ctx, ana, ev.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "4-semana-da-computacao-2026", updated.Slug)

	_, err = e.events.UpdateEvent(e.ctx, bob, ev.ID, req)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestEventService_DeleteEvent(t *testing.T) {
	e := newEnv(t)
	ana := e.participant("Ana", "ana@example.com")

	ev := e.createEvent(1)
	a := e.createActivity(ev.ID, "Keynote", nil, nil, e.roomSlot(base, 60))
	_, err := e.registries.Register(e.ctx, ana, a.ID)
	require.NoError(t, err)

	err = e.events.DeleteEvent(e.ctx, e.admin, ev.ID)
	assert.ErrorIs(t, err, common.ErrEventDeleteHasRegistry)

	empty := e.createEvent(2)
	require.NoError(t, e.events.DeleteEvent(e.ctx, e.admin, empty.ID))

	_, err = e.events.GetEventByID(e.ctx, empty.ID)
	assert.True(t, common.IsNotFound(err))
}
