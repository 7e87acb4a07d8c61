package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/services"
)

func validate(t *testing.T, obj any) error {
	t.Helper()
	require.NoError(t, Register())
	return binding.Validator.ValidateStruct(obj)
}

func TestScheduleRequiresRoomOrURL(t *testing.T) {
	start := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	url := "https://meet.example.com/abc"
	room := uuid.New()

	req := services.ActivityRequest{
		Title: "Workshop",
		Schedules: []services.ScheduleRequest{
			{StartDate: start, DurationInMinutes: 60, URL: &url},
			{StartDate: start, DurationInMinutes: 60},
			{StartDate: start, DurationInMinutes: 60, RoomID: &room},
		},
	}

	err := validate(t, req)
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, map[string]string{
		"schedules[1].room_id": "either room_id or url must be set",
	}, fields)
}

func TestFieldErrorsUseJSONNames(t *testing.T) {
	err := validate(t, services.ActivityRequest{})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "title is required", fields["title"])
	assert.Equal(t, "schedules is required", fields["schedules"])
}

func TestFieldErrorsNumericBounds(t *testing.T) {
	err := validate(t, services.RatingRequest{Rating: 9})
	require.Error(t, err)
	assert.Equal(t, "rating must be at most 5", FieldErrors(err)["rating"])

	err = validate(t, services.CreateUserRequest{Name: "A", Email: "nope", Password: "short"})
	require.Error(t, err)
	fields := FieldErrors(err)
	assert.Equal(t, "name must be at least 2 characters long", fields["name"])
	assert.Equal(t, "email must have a valid format", fields["email"])
	assert.Equal(t, "password must be at least 8 characters long", fields["password"])
}

func TestBindingErrorIsValidationKind(t *testing.T) {
	be := BindingError(errors.New("EOF"))
	assert.Equal(t, common.KindValidation, be.Kind)
	assert.Equal(t, "EOF", be.Fields["body"])
}

func TestParseID(t *testing.T) {
	id := uuid.New()
	got, err := ParseID(id.String(), "event_id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("42", "event_id")
	be, ok := common.AsBusinessError(err)
	require.True(t, ok)
	assert.Equal(t, "event_id must be a valid UUID", be.Fields["event_id"])
}
