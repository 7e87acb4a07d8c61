// Package objectstore copies issued certificates to S3 compatible storage
package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"github.com/charmbracelet/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gravadigital/eventos-api/internal/config"
	"github.com/gravadigital/eventos-api/internal/domain/certificate"
	"github.com/gravadigital/eventos-api/internal/logger"
)

// CertificateArchive keeps a copy of every issued certificate
type CertificateArchive interface {
	Store(ctx context.Context, cert *certificate.Certificate) error
}

// objectPutter is the subset of *minio.Client the archive needs
type objectPutter interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioArchive writes certificates as JSON documents to a bucket
type MinioArchive struct {
	client objectPutter
	bucket string
	log    *log.Logger
}

// NewMinioArchive connects to the configured endpoint and makes sure the bucket exists
func NewMinioArchive(ctx context.Context, cfg *config.Config) (*MinioArchive, error) {
	client, err := minio.New(cfg.Storage.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.MinioAccessKey, cfg.Storage.MinioSecretKey, ""),
		Secure: cfg.Storage.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	bucket := cfg.Storage.CertificateBucket
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		logger.Storage().Info("Created certificate bucket", "bucket", bucket)
	}

	return newMinioArchive(client, bucket), nil
}

func newMinioArchive(client objectPutter, bucket string) *MinioArchive {
	return &MinioArchive{
		client: client,
		bucket: bucket,
		log:    logger.Storage(),
	}
}

// ObjectKey is where a certificate lives inside the bucket
func ObjectKey(cert *certificate.Certificate) string {
	return path.Join("certificates", cert.EventID.String(), cert.Code+".json")
}

func (a *MinioArchive) Store(ctx context.Context, cert *certificate.Certificate) error {
	body, err := json.Marshal(cert)
	if err != nil {
		return fmt.Errorf("failed to encode certificate: %w", err)
	}

	key := ObjectKey(cert)
	info, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
		UserMetadata: map[string]string{
			"certificate-code": cert.Code,
		},
	})
	if err != nil {
		a.log.Error("Failed to archive certificate", "code", cert.Code, "error", err)
		return fmt.Errorf("failed to archive certificate %s: %w", cert.Code, err)
	}

	a.log.Debug("Certificate archived", "key", key, "size", info.Size)
	return nil
}

// NopArchive drops every certificate, used when no object storage is configured
type NopArchive struct{}

func (NopArchive) Store(context.Context, *certificate.Certificate) error { return nil }

// New returns the minio archive when configured, NopArchive otherwise
func New(ctx context.Context, cfg *config.Config) (CertificateArchive, error) {
	if !cfg.CertificateArchiveEnabled() {
		logger.Storage().Info("Certificate archive disabled, MINIO_ENDPOINT not set")
		return NopArchive{}, nil
	}
	return NewMinioArchive(ctx, cfg)
}
