package event

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/eventos-api/internal/domain/common"
)

// Category groups editions of the same event, e.g. "Semana da Computação"
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (Category) TableName() string {
	return "event_categories"
}

// BeforeCreate sets a UUID before creating the record
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Event represents one edition of an institutional event
type Event struct {
	ID                uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Edition           int                  `json:"edition" gorm:"not null"`
	EditionDisplay    EditionDisplay       `json:"edition_display" gorm:"type:edition_display;not null"`
	Display           Display              `json:"display" gorm:"type:event_display;not null"`
	CategoryID        uuid.UUID            `json:"category_id" gorm:"type:uuid;not null"`
	Category          *Category            `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Slug              string               `json:"slug" gorm:"uniqueIndex;not null"`
	Description       string               `json:"description" gorm:"type:text"`
	StartDate         time.Time            `json:"start_date" gorm:"not null"`
	EndDate           time.Time            `json:"end_date" gorm:"not null"`
	RegistryStartDate time.Time            `json:"registry_start_date" gorm:"not null"`
	RegistryEndDate   time.Time            `json:"registry_end_date" gorm:"not null"`
	Responsibles      []common.UserSummary `json:"responsibles,omitempty" gorm:"many2many:event_responsibles;joinForeignKey:EventID;joinReferences:UserID"`
	CreatedAt         time.Time            `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time            `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Event) TableName() string {
	return "events"
}

// BeforeCreate sets a UUID before creating the record
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *Event) nameParts() NameParts {
	parts := NameParts{
		Edition:        e.Edition,
		EditionDisplay: e.EditionDisplay,
		Display:        e.Display,
		StartDate:      e.StartDate,
	}
	if e.Category != nil {
		parts.Category = e.Category.Name
	}
	return parts
}

// Name renders the display name. Category must be loaded.
func (e *Event) Name() (string, error) {
	return RenderName(e.nameParts())
}

// FullName renders edition, category and year whatever the display mode, so
// two editions of a category never share it. Slugs are built from it.
func (e *Event) FullName() (string, error) {
	parts := e.nameParts()
	parts.Display = ShowAll
	return RenderName(parts)
}

// DisplayName is Name without the error, falling back to the slug
func (e *Event) DisplayName() string {
	name, err := e.Name()
	if err != nil {
		return e.Slug
	}
	return name
}

// IsResponsible checks if the given user is responsible for this event
func (e *Event) IsResponsible(userID uuid.UUID) bool {
	return common.ContainsID(e.Responsibles, userID)
}

// HasHappened reports whether the event already ended at now
func (e *Event) HasHappened(now time.Time) bool {
	return e.EndDate.Before(now)
}

// IsHappening reports whether now falls inside [StartDate, EndDate]
func (e *Event) IsHappening(now time.Time) bool {
	return !now.Before(e.StartDate) && !now.After(e.EndDate)
}

// CheckRegistryWindow validates a sign-up or cancellation made at now
func (e *Event) CheckRegistryWindow(now time.Time) error {
	return CheckRegistryWindow(now, e.RegistryStartDate, e.RegistryEndDate)
}

// Validate checks the event fields and the expected date ordering
// registry start <= registry end <= start <= end.
func (e *Event) Validate() map[string]string {
	fields := make(map[string]string)

	if e.Edition <= 0 {
		fields["edition"] = "edition must be greater than zero"
	}
	if !e.EditionDisplay.IsValid() {
		fields["edition_display"] = "edition_display must be one of ARABIC, ORDINAL, ROMAN"
	}
	if e.EditionDisplay == EditionRoman && e.Edition > 3999 {
		fields["edition"] = "roman editions support values up to 3999"
	}
	if !e.Display.IsValid() {
		fields["display"] = "display must be one of SHOW_ALL, SHOW_EDITION_ONLY, SHOW_YEAR_ONLY, SHOW_NONE"
	}
	if e.CategoryID == uuid.Nil {
		fields["category_id"] = "category_id is required"
	}
	if e.RegistryEndDate.Before(e.RegistryStartDate) {
		fields["registry_end_date"] = "registry_end_date must not be before registry_start_date"
	}
	if e.StartDate.Before(e.RegistryEndDate) {
		fields["start_date"] = "start_date must not be before registry_end_date"
	}
	if e.EndDate.Before(e.StartDate) {
		fields["end_date"] = "end_date must not be before start_date"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// CheckRegistryWindow permits an action iff start <= now <= end
func CheckRegistryWindow(now, start, end time.Time) error {
	if now.Before(start) || now.After(end) {
		return common.ErrOutsideOfRegistryDate
	}
	return nil
}
