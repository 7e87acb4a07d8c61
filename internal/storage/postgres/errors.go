package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gravadigital/eventos-api/internal/domain/common"
)

// translateNotFound maps gorm.ErrRecordNotFound to a NotFound business error
func translateNotFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.NewNotFound(resource)
	}
	return err
}

// isUniqueViolation relies on gorm.Config.TranslateError
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
