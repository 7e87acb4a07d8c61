package certificate

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	codeAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	codeLength   = 12
)

// Certificate proves attendance of a user on an activity
type Certificate struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Code       string         `json:"code" gorm:"uniqueIndex;size:32;not null"`
	RegistryID uuid.UUID      `json:"registry_id" gorm:"type:uuid;uniqueIndex;not null"`
	UserID     uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	ActivityID uuid.UUID      `json:"activity_id" gorm:"type:uuid;not null"`
	EventID    uuid.UUID      `json:"event_id" gorm:"type:uuid;not null;index"`
	IssuedAt   time.Time      `json:"issued_at" gorm:"not null"`
	Payload    datatypes.JSON `json:"payload" gorm:"type:jsonb;not null"`
}

// TableName overrides the table name used by GORM
func (Certificate) TableName() string {
	return "certificates"
}

// BeforeCreate sets a UUID before creating the record
func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Content is the human readable part of a certificate, stored as JSON
type Content struct {
	ParticipantName   string   `json:"participant_name"`
	EventName         string   `json:"event_name"`
	ActivityTitle     string   `json:"activity_title"`
	WorkloadInMinutes int      `json:"workload_in_minutes"`
	Speakers          []string `json:"speakers,omitempty"`
}

// Refs identifies the registry a certificate is issued for
type Refs struct {
	RegistryID uuid.UUID
	UserID     uuid.UUID
	ActivityID uuid.UUID
	EventID    uuid.UUID
}

// New builds a certificate with a fresh verification code
func New(refs Refs, content Content, issuedAt time.Time) (*Certificate, error) {
	code, err := GenerateCode()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode certificate content: %w", err)
	}

	return &Certificate{
		ID:         uuid.New(),
		Code:       code,
		RegistryID: refs.RegistryID,
		UserID:     refs.UserID,
		ActivityID: refs.ActivityID,
		EventID:    refs.EventID,
		IssuedAt:   issuedAt,
		Payload:    datatypes.JSON(payload),
	}, nil
}

// Content decodes the stored payload
func (c *Certificate) Content() (Content, error) {
	var content Content
	if err := json.Unmarshal(c.Payload, &content); err != nil {
		return Content{}, fmt.Errorf("failed to decode certificate content: %w", err)
	}
	return content, nil
}

// GenerateCode returns a short verification code without ambiguous characters
func GenerateCode() (string, error) {
	code, err := gonanoid.Generate(codeAlphabet, codeLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate certificate code: %w", err)
	}
	return code, nil
}
