package activity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/eventos-api/internal/domain/common"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Registry is a person's sign-up on an activity
type Registry struct {
	ID                  uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ActivityID          uuid.UUID           `json:"activity_id" gorm:"type:uuid;not null;uniqueIndex:idx_activity_registries_activity_user"`
	Activity            *Activity           `json:"activity,omitempty" gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE"`
	UserID              uuid.UUID           `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_activity_registries_activity_user"`
	User                *common.UserSummary `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RegistryDate        time.Time           `json:"registry_date" gorm:"not null"`
	ReadyForCertificate bool                `json:"ready_for_certificate" gorm:"not null;default:false"`
	Rating              *int                `json:"rating,omitempty"`
	Presences           []Presence          `json:"presences,omitempty" gorm:"foreignKey:ActivityRegistryID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by GORM
func (Registry) TableName() string {
	return "activity_registries"
}

// BeforeCreate sets a UUID before creating the record
func (r *Registry) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func NewRegistry(activityID, userID uuid.UUID, now time.Time) *Registry {
	return &Registry{
		ID:           uuid.New(),
		ActivityID:   activityID,
		UserID:       userID,
		RegistryDate: now,
	}
}

// Rate stores the attendee rating, allowed only once attendance was confirmed
func (r *Registry) Rate(rating int) error {
	if !r.ReadyForCertificate {
		return common.ErrRatingNotAllowed
	}
	if rating < MinRating || rating > MaxRating {
		return common.NewValidationError(map[string]string{
			"rating": "rating must be between 1 and 5",
		})
	}
	r.Rating = &rating
	return nil
}

// Presence records attendance of a registry on one schedule
type Presence struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ActivityRegistryID uuid.UUID `json:"activity_registry_id" gorm:"type:uuid;not null;uniqueIndex:idx_presences_registry_schedule"`
	ScheduleID         uuid.UUID `json:"schedule_id" gorm:"type:uuid;not null;uniqueIndex:idx_presences_registry_schedule"`
	Schedule           *Schedule `json:"-" gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE"`
	IsPresent          bool      `json:"is_present" gorm:"not null;default:false"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Presence) TableName() string {
	return "presences"
}

// BeforeCreate sets a UUID before creating the record
func (p *Presence) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CheckVacancy fails when the activity is full. A nil limit means unlimited.
func CheckVacancy(vacancies *int, registered int64) error {
	if vacancies == nil {
		return nil
	}
	if registered >= int64(*vacancies) {
		return common.ErrNoVacancyOnActivity
	}
	return nil
}

// IsReadyForCertificate reports whether the attendee was present on every schedule
func IsReadyForCertificate(schedules []Schedule, presences []Presence) bool {
	if len(schedules) == 0 {
		return false
	}

	present := make(map[uuid.UUID]bool, len(presences))
	for _, p := range presences {
		if p.IsPresent {
			present[p.ScheduleID] = true
		}
	}

	for _, s := range schedules {
		if !present[s.ID] {
			return false
		}
	}
	return true
}
