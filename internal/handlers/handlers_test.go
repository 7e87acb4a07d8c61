package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/event"
)

func sampleEvent() *event.Event {
	return &event.Event{
		ID:             uuid.New(),
		Edition:        12,
		EditionDisplay: event.EditionRoman,
		Display:        event.ShowEditionOnly,
		Category:       &event.Category{Name: "Encontro de Física"},
		Slug:           "xii-encontro-de-fisica",
		StartDate:      time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestEventViewJSON(t *testing.T) {
	raw, err := json.Marshal(newEventView(sampleEvent()))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "XII Encontro de Física", body["name"])
	assert.Equal(t, "ROMAN", body["edition_display"])
	assert.Equal(t, "SHOW_EDITION_ONLY", body["display"])
	assert.Equal(t, "xii-encontro-de-fisica", body["slug"])
}

func TestActivityViewJSON(t *testing.T) {
	a := &activity.Activity{
		ID:    uuid.New(),
		Title: "Oficina",
		Event: sampleEvent(),
		Schedules: []activity.Schedule{
			{DurationInMinutes: 90},
			{DurationInMinutes: 30},
		},
	}

	raw, err := json.Marshal(newActivityView(a))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "XII Encontro de Física", body["event_name"])
	assert.EqualValues(t, 120, body["workload_in_minutes"])
	assert.Equal(t, "Oficina", body["title"])
	assert.Equal(t, false, body["online"])

	url := "https://meet.example.com/oficina"
	a.Schedules = []activity.Schedule{{DurationInMinutes: 60, URL: &url}}
	raw, err = json.Marshal(newActivityView(a))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, true, body["online"])
}

func TestPathIDRejectsMalformedUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/things/:id", func(c *gin.Context) {
		if _, ok := pathID(c, "id"); ok {
			c.Status(http.StatusOK)
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "id must be a valid UUID")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestActorRequiresIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := actor(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
