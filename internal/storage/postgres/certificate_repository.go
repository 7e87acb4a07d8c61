package postgres

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/eventos-api/internal/domain/certificate"
	"github.com/gravadigital/eventos-api/internal/logger"
)

// PostgresCertificateRepository implements CertificateRepository using GORM
type PostgresCertificateRepository struct {
	db  *gorm.DB
	log *log.Logger
}

func NewPostgresCertificateRepository(db *gorm.DB) *PostgresCertificateRepository {
	return &PostgresCertificateRepository{db: db, log: logger.Repository("certificate")}
}

func (r *PostgresCertificateRepository) Create(ctx context.Context, c *certificate.Certificate) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		r.log.Error("Failed to create certificate", "error", err, "registry_id", c.RegistryID)
		return fmt.Errorf("failed to create certificate: %w", err)
	}
	return nil
}

func (r *PostgresCertificateRepository) GetByCode(ctx context.Context, code string) (*certificate.Certificate, error) {
	var c certificate.Certificate
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		return nil, translateNotFound(err, "certificate")
	}
	return &c, nil
}

func (r *PostgresCertificateRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*certificate.Certificate, error) {
	var certificates []*certificate.Certificate
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("issued_at DESC").
		Find(&certificates).Error; err != nil {
		return nil, fmt.Errorf("failed to get certificates: %w", err)
	}
	return certificates, nil
}

func (r *PostgresCertificateRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]*certificate.Certificate, error) {
	var certificates []*certificate.Certificate
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("issued_at ASC").
		Find(&certificates).Error; err != nil {
		return nil, fmt.Errorf("failed to get certificates: %w", err)
	}
	return certificates, nil
}

func (r *PostgresCertificateRepository) ExistsForRegistry(ctx context.Context, registryID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&certificate.Certificate{}).
		Where("registry_id = ?", registryID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check certificate: %w", err)
	}
	return count > 0, nil
}
