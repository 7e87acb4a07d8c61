package common

import "github.com/google/uuid"

// UserSummary is the read-only projection of a user shared across domains.
// It maps onto the users table so it can be used in many2many relations
// (event and activity responsibles) without exposing credentials.
type UserSummary struct {
	ID    uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// TableName overrides the table name used by GORM
func (UserSummary) TableName() string {
	return "users"
}

// ContainsID reports whether any of the summaries has the given ID
func ContainsID(users []UserSummary, id uuid.UUID) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}
