package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// replaceResponsibles rewrites the join rows of one owner. The user rows are
// never touched, only the (owner, user) links.
func replaceResponsibles(tx *gorm.DB, table, ownerColumn string, ownerID uuid.UUID, userIDs []uuid.UUID) error {
	if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, ownerColumn), ownerID).Error; err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	if len(userIDs) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(userIDs))
	seen := make(map[uuid.UUID]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, map[string]any{ownerColumn: ownerID, "user_id": id})
	}

	if err := tx.Table(table).Create(rows).Error; err != nil {
		return fmt.Errorf("failed to write %s: %w", table, err)
	}
	return nil
}
