package migrations

import (
	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/certificate"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/domain/participant"
	"github.com/gravadigital/eventos-api/internal/domain/room"
)

// AllModels returns the models in creation order (referenced tables first)
func AllModels() []any {
	return []any{
		&participant.User{},
		&event.Category{},
		&room.Room{},
		&event.Event{},
		&activity.Activity{},
		&activity.Schedule{},
		&activity.Registry{},
		&activity.Presence{},
		&certificate.Certificate{},
	}
}
