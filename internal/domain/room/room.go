package room

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room is a physical place where in-person schedules happen
type Room struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"`
	Capacity  *int      `json:"capacity,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Room) TableName() string {
	return "rooms"
}

// BeforeCreate sets a UUID before creating the record
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func NewRoom(name, code string, capacity *int) *Room {
	return &Room{
		ID:        uuid.New(),
		Name:      name,
		Code:      code,
		Capacity:  capacity,
		CreatedAt: time.Now(),
	}
}
