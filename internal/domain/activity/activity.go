package activity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/domain/room"
)

// Activity is a talk, workshop or any scheduled sub-event of an Event
type Activity struct {
	ID           uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EventID      uuid.UUID            `json:"event_id" gorm:"type:uuid;not null;index"`
	Event        *event.Event         `json:"event,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Title        string               `json:"title" gorm:"not null"`
	Description  string               `json:"description" gorm:"type:text"`
	Vacancies    *int                 `json:"vacancies,omitempty"`
	Speakers     pq.StringArray       `json:"speakers" gorm:"type:text[]"`
	Schedules    []Schedule           `json:"schedules" gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE"`
	Responsibles []common.UserSummary `json:"responsibles,omitempty" gorm:"many2many:activity_responsibles;joinForeignKey:ActivityID;joinReferences:UserID"`
	CreatedAt    time.Time            `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time            `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Activity) TableName() string {
	return "activities"
}

// BeforeCreate sets a UUID before creating the record
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsResponsible checks if the given user is responsible for this activity
func (a *Activity) IsResponsible(userID uuid.UUID) bool {
	return common.ContainsID(a.Responsibles, userID)
}

// WorkloadInMinutes sums the duration of every schedule
func (a *Activity) WorkloadInMinutes() int {
	total := 0
	for _, s := range a.Schedules {
		total += s.DurationInMinutes
	}
	return total
}

// IsOnline reports whether every schedule happens online only
func (a *Activity) IsOnline() bool {
	if len(a.Schedules) == 0 {
		return false
	}
	for _, s := range a.Schedules {
		if !s.IsVirtual() {
			return false
		}
	}
	return true
}

// Validate checks the activity fields and each of its schedules
func (a *Activity) Validate() map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(a.Title) == "" {
		fields["title"] = "title is required"
	}
	if a.Vacancies != nil && *a.Vacancies < 0 {
		fields["vacancies"] = "vacancies must not be negative"
	}
	if len(a.Schedules) == 0 {
		fields["schedules"] = "at least one schedule is required"
	}
	for i := range a.Schedules {
		for field, msg := range a.Schedules[i].Validate() {
			fields[fmt.Sprintf("schedules[%d].%s", i, field)] = msg
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Schedule is a concrete time slot of an activity, either in a room or at a URL
type Schedule struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ActivityID        uuid.UUID  `json:"activity_id" gorm:"type:uuid;not null;index"`
	StartDate         time.Time  `json:"start_date" gorm:"not null"`
	DurationInMinutes int        `json:"duration_in_minutes" gorm:"not null"`
	RoomID            *uuid.UUID `json:"room_id,omitempty" gorm:"type:uuid;index"`
	Room              *room.Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	URL               *string    `json:"url,omitempty"`
}

// TableName overrides the table name used by GORM
func (Schedule) TableName() string {
	return "schedules"
}

// BeforeCreate sets a UUID before creating the record
func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// EndDate is the exclusive end of the slot
func (s Schedule) EndDate() time.Time {
	return s.StartDate.Add(time.Duration(s.DurationInMinutes) * time.Minute)
}

// Interval returns the half-open interval [start, end) of the slot
func (s Schedule) Interval() Interval {
	return Interval{Start: s.StartDate, End: s.EndDate()}
}

// IsVirtual reports whether the slot happens online only
func (s Schedule) IsVirtual() bool {
	return s.RoomID == nil && s.URL != nil
}

// Validate checks a single schedule
func (s *Schedule) Validate() map[string]string {
	fields := make(map[string]string)

	if s.StartDate.IsZero() {
		fields["start_date"] = "start_date is required"
	}
	if s.DurationInMinutes <= 0 {
		fields["duration_in_minutes"] = "duration_in_minutes must be greater than zero"
	}
	hasRoom := s.RoomID != nil && *s.RoomID != uuid.Nil
	hasURL := s.URL != nil && strings.TrimSpace(*s.URL) != ""
	if !hasRoom && !hasURL {
		fields["room_id"] = "either room_id or url must be set"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Interval is a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
// An interval ending exactly when the other starts does not overlap it.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}
