package services

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gravadigital/eventos-api/internal/auth"
	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/domain/certificate"
	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/logger"
	"github.com/gravadigital/eventos-api/internal/storage/objectstore"
	"github.com/gravadigital/eventos-api/internal/storage/postgres"
)

// CertificateService issues and verifies attendance certificates
type CertificateService struct {
	certificateRepo postgres.CertificateRepository
	registryRepo    postgres.RegistryRepository
	eventRepo       postgres.EventRepository
	archive         objectstore.CertificateArchive
	now             Clock
	log             *log.Logger
}

func NewCertificateService(
	certificateRepo postgres.CertificateRepository,
	registryRepo postgres.RegistryRepository,
	eventRepo postgres.EventRepository,
	archive objectstore.CertificateArchive,
	clock Clock,
) *CertificateService {
	if archive == nil {
		archive = objectstore.NopArchive{}
	}
	return &CertificateService{
		certificateRepo: certificateRepo,
		registryRepo:    registryRepo,
		eventRepo:       eventRepo,
		archive:         archive,
		now:             orDefault(clock),
		log:             logger.Service("certificate"),
	}
}

// IssueForEvent issues a certificate for every ready registry of an ended event.
// Registries that already have one are skipped, so calling it again only issues
// the missing ones. It returns the certificates issued by this call.
func (s *CertificateService) IssueForEvent(ctx context.Context, actor auth.Identity, eventID uuid.UUID) ([]*certificate.Certificate, error) {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !canManageEvent(actor, ev) {
		return nil, common.ErrForbidden
	}

	now := s.now()
	if !ev.HasHappened(now) {
		return nil, common.ErrCertificateBeforeEventEnd
	}

	registries, err := s.registryRepo.GetReadyByEventID(ctx, ev.ID)
	if err != nil {
		return nil, err
	}

	issued := make([]*certificate.Certificate, 0, len(registries))
	for _, registry := range registries {
		exists, err := s.certificateRepo.ExistsForRegistry(ctx, registry.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		cert, err := certificate.New(certificate.Refs{
			RegistryID: registry.ID,
			UserID:     registry.UserID,
			ActivityID: registry.ActivityID,
			EventID:    ev.ID,
		}, contentFor(ev, registry), now)
		if err != nil {
			return nil, err
		}
		if err := s.certificateRepo.Create(ctx, cert); err != nil {
			return nil, err
		}

		// the database row is the source of truth, a failed copy is only logged
		if err := s.archive.Store(ctx, cert); err != nil {
			s.log.Warn("Certificate not archived", "code", cert.Code, "error", err)
		}
		issued = append(issued, cert)
	}

	s.log.Info("Certificates issued", "event_id", ev.ID, "issued", len(issued), "ready", len(registries))
	return issued, nil
}

func contentFor(ev *event.Event, registry *activity.Registry) certificate.Content {
	content := certificate.Content{EventName: ev.DisplayName()}
	if registry.User != nil {
		content.ParticipantName = registry.User.Name
	}
	if a := registry.Activity; a != nil {
		content.ActivityTitle = a.Title
		content.WorkloadInMinutes = a.WorkloadInMinutes()
		content.Speakers = []string(a.Speakers)
	}
	return content
}

// Verify looks a certificate up by its public code
func (s *CertificateService) Verify(ctx context.Context, code string) (*certificate.Certificate, error) {
	return s.certificateRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

// ListForUser lists the certificates issued to the actor
func (s *CertificateService) ListForUser(ctx context.Context, actor auth.Identity) ([]*certificate.Certificate, error) {
	return s.certificateRepo.GetByUserID(ctx, actor.UserID)
}
