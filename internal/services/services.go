// Package services orquesta los repositorios y las reglas de negocio del dominio.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gravadigital/eventos-api/internal/auth"
	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/storage/postgres"
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

func defaultClock() time.Time {
	return time.Now().UTC()
}

func orDefault(clock Clock) Clock {
	if clock == nil {
		return defaultClock
	}
	return clock
}

// requireAdmin fails with a permission error for anyone but admins
func requireAdmin(actor auth.Identity) error {
	if !actor.IsAdmin() {
		return common.ErrForbidden
	}
	return nil
}

// canManageEvent: admins and event responsibles
func canManageEvent(actor auth.Identity, e *event.Event) bool {
	return actor.IsAdmin() || e.IsResponsible(actor.UserID)
}

// canManageActivity: admins, event responsibles and activity responsibles
func canManageActivity(actor auth.Identity, a *activity.Activity) bool {
	if actor.IsAdmin() || a.IsResponsible(actor.UserID) {
		return true
	}
	return a.Event != nil && a.Event.IsResponsible(actor.UserID)
}

// checkUsersExist reports unknown responsible ids as a field error
func checkUsersExist(ctx context.Context, users postgres.UserRepository, ids []uuid.UUID, field string) error {
	missing, err := users.MissingIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return common.NewValidationError(map[string]string{
			field: fmt.Sprintf("unknown users: %v", missing),
		})
	}
	return nil
}
