package activity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/eventos-api/internal/domain/common"
)

func TestCheckVacancy(t *testing.T) {
	assert.NoError(t, CheckVacancy(nil, 10_000))
	assert.NoError(t, CheckVacancy(ptr(3), 2))
	assert.ErrorIs(t, CheckVacancy(ptr(3), 3), common.ErrNoVacancyOnActivity)
	assert.ErrorIs(t, CheckVacancy(ptr(0), 0), common.ErrNoVacancyOnActivity)
}

func TestIsReadyForCertificate(t *testing.T) {
	s1 := Schedule{ID: uuid.New()}
	s2 := Schedule{ID: uuid.New()}
	schedules := []Schedule{s1, s2}

	assert.False(t, IsReadyForCertificate(nil, nil))
	assert.False(t, IsReadyForCertificate(schedules, []Presence{{ScheduleID: s1.ID, IsPresent: true}}))
	assert.False(t, IsReadyForCertificate(schedules, []Presence{
		{ScheduleID: s1.ID, IsPresent: true},
		{ScheduleID: s2.ID, IsPresent: false},
	}))
	assert.True(t, IsReadyForCertificate(schedules, []Presence{
		{ScheduleID: s1.ID, IsPresent: true},
		{ScheduleID: s2.ID, IsPresent: true},
	}))
}

func TestRegistryRate(t *testing.T) {
	r := NewRegistry(uuid.New(), uuid.New(), time.Now())

	assert.ErrorIs(t, r.Rate(4), common.ErrRatingNotAllowed)

	r.ReadyForCertificate = true
	err := r.Rate(6)
	be, ok := common.AsBusinessError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindValidation, be.Kind)
	assert.Contains(t, be.Fields, "rating")

	require.NoError(t, r.Rate(5))
	require.NotNil(t, r.Rating)
	assert.Equal(t, 5, *r.Rating)
}

func TestActivityValidate(t *testing.T) {
	roomID := uuid.New()
	a := &Activity{
		Title: "Oficina de Git",
		Schedules: []Schedule{
			{StartDate: base, DurationInMinutes: 60, RoomID: &roomID},
			{StartDate: base.Add(24 * time.Hour), DurationInMinutes: 0},
		},
	}

	fields := a.Validate()
	require.NotNil(t, fields)
	assert.Contains(t, fields, "schedules[1].duration_in_minutes")
	assert.Contains(t, fields, "schedules[1].room_id")
	assert.NotContains(t, fields, "schedules[0].room_id")

	a.Schedules[1].DurationInMinutes = 30
	a.Schedules[1].URL = ptr("https://meet.example.com/git")
	assert.Nil(t, a.Validate())
	assert.Equal(t, 90, a.WorkloadInMinutes())
	assert.True(t, a.Schedules[1].IsVirtual())
	assert.False(t, a.IsOnline())

	a.Schedules = a.Schedules[1:]
	assert.True(t, a.IsOnline())
}
