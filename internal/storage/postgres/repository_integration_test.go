//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/domain/participant"
	"github.com/gravadigital/eventos-api/internal/domain/room"
)

// Run with: go test -tags=integration ./internal/storage/postgres/

func newIntegrationContainer(t *testing.T) *Container {
	t.Helper()
	c, err := NewContainer(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRepositoriesRoundTrip(t *testing.T) {
	c := newIntegrationContainer(t)
	ctx := context.Background()
	suffix := uuid.NewString()[:8]
	start := time.Date(2030, 5, 10, 9, 0, 0, 0, time.UTC)

	user := participant.NewUser("Ana", "ana-"+suffix+"@example.com", "hash")
	require.NoError(t, c.Users().Create(ctx, user))

	dup := participant.NewUser("Ana", user.Email, "hash")
	assert.ErrorIs(t, c.Users().Create(ctx, dup), common.ErrEmailAlreadyInUse)

	category := &event.Category{Name: "Semana " + suffix}
	require.NoError(t, c.Categories().Create(ctx, category))

	rm := room.NewRoom("Auditório", "AUD-"+suffix, nil)
	require.NoError(t, c.Rooms().Create(ctx, rm))

	ev := &event.Event{
		Edition:           1,
		EditionDisplay:    event.EditionRoman,
		Display:           event.ShowAll,
		CategoryID:        category.ID,
		Slug:              "i-semana-" + suffix,
		StartDate:         start,
		EndDate:           start.Add(48 * time.Hour),
		RegistryStartDate: start.Add(-10 * 24 * time.Hour),
		RegistryEndDate:   start.Add(-time.Hour),
	}
	require.NoError(t, c.Events().Create(ctx, ev, []uuid.UUID{user.ID}))

	loaded, err := c.Events().GetByID(ctx, ev.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Category)
	assert.Equal(t, "I Semana "+suffix+" 2030", loaded.DisplayName())
	assert.True(t, loaded.IsResponsible(user.ID))

	vacancies := 10
	a := &activity.Activity{
		EventID:   ev.ID,
		Title:     "Abertura",
		Vacancies: &vacancies,
		Speakers:  []string{"Grace Hopper"},
		Schedules: []activity.Schedule{
			{StartDate: start.Add(time.Hour), DurationInMinutes: 60, RoomID: &rm.ID},
		},
	}
	require.NoError(t, c.Activities().Create(ctx, a, []uuid.UUID{user.ID}))

	t.Run("conflict candidates", func(t *testing.T) {
		found, err := c.Activities().FindConflictCandidates(ctx, activity.ConflictFilter{
			EventID: ev.ID,
			RoomIDs: []uuid.UUID{rm.ID},
			From:    start.Add(90 * time.Minute),
			Until:   start.Add(150 * time.Minute),
		})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, a.ID, found[0].ActivityID)
		assert.Equal(t, []uuid.UUID{user.ID}, found[0].ResponsibleIDs)
		require.NotNil(t, found[0].RoomName)
		assert.Equal(t, "Auditório", *found[0].RoomName)

		// back to back schedules do not overlap
		found, err = c.Activities().FindConflictCandidates(ctx, activity.ConflictFilter{
			EventID:        ev.ID,
			ResponsibleIDs: []uuid.UUID{user.ID},
			From:           start.Add(2 * time.Hour),
			Until:          start.Add(3 * time.Hour),
		})
		require.NoError(t, err)
		assert.Empty(t, found)

		found, err = c.Activities().FindConflictCandidates(ctx, activity.ConflictFilter{
			EventID:           ev.ID,
			ExcludeActivityID: a.ID,
			RoomIDs:           []uuid.UUID{rm.ID},
			From:              start,
			Until:             start.Add(3 * time.Hour),
		})
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	registry := activity.NewRegistry(a.ID, user.ID, start.Add(-2*time.Hour))
	require.NoError(t, c.Registries().Create(ctx, registry))
	assert.ErrorIs(t,
		c.Registries().Create(ctx, activity.NewRegistry(a.ID, user.ID, start.Add(-2*time.Hour))),
		common.ErrAlreadyRegisteredOnActivity)

	count, err := c.Events().CountRegistries(ctx, ev.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	t.Run("presence upsert", func(t *testing.T) {
		stored, err := c.Activities().GetByID(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, stored.Schedules, 1)
		scheduleID := stored.Schedules[0].ID

		require.NoError(t, c.Registries().SavePresence(ctx, &activity.Presence{
			ActivityRegistryID: registry.ID, ScheduleID: scheduleID, IsPresent: false,
		}))
		require.NoError(t, c.Registries().SavePresence(ctx, &activity.Presence{
			ActivityRegistryID: registry.ID, ScheduleID: scheduleID, IsPresent: true,
		}))

		presences, err := c.Registries().GetPresences(ctx, registry.ID)
		require.NoError(t, err)
		require.Len(t, presences, 1)
		assert.True(t, presences[0].IsPresent)

		confirmed, err := c.Registries().CountPresencesByActivityID(ctx, a.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, confirmed)
	})

	require.NoError(t, c.Registries().Delete(ctx, registry.ID))
	require.NoError(t, c.Activities().Delete(ctx, a.ID))
	require.NoError(t, c.Events().Delete(ctx, ev.ID))

	_, err = c.Events().GetByID(ctx, ev.ID)
	assert.True(t, common.IsNotFound(err))
}
