package activity

import (
	"time"

	"github.com/gravadigital/eventos-api/internal/domain/common"
)

// DeletionState is what the deletion guard needs to know about an activity
type DeletionState struct {
	RegistryCount         int64
	ArchivedPresenceCount int64
	EventStartDate        time.Time
	EventEndDate          time.Time
	Now                   time.Time
}

type deletionRule struct {
	violated func(DeletionState) bool
	err      error
}

// deletionRules are evaluated in order, the first violation wins
var deletionRules = []deletionRule{
	{
		violated: func(s DeletionState) bool { return s.RegistryCount > 0 },
		err:      common.ErrActivityDeleteHasRegistry,
	},
	{
		violated: func(s DeletionState) bool { return s.ArchivedPresenceCount > 0 },
		err:      common.ErrActivityHasPresencesArchived,
	},
	{
		violated: func(s DeletionState) bool { return s.EventEndDate.Before(s.Now) },
		err:      common.ErrActivityDeleteHasHappened,
	},
	{
		violated: func(s DeletionState) bool {
			return !s.Now.Before(s.EventStartDate) && !s.Now.After(s.EventEndDate)
		},
		err: common.ErrActivityDeleteIsHappening,
	},
}

// CheckDeletion returns the error of the first violated rule, or nil when the
// activity can be deleted.
func CheckDeletion(s DeletionState) error {
	for _, rule := range deletionRules {
		if rule.violated(s) {
			return rule.err
		}
	}
	return nil
}
