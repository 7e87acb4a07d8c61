package objectstore

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/eventos-api/internal/config"
	"github.com/gravadigital/eventos-api/internal/domain/certificate"
)

type fakePutter struct {
	bucket string
	key    string
	body   []byte
	opts   minio.PutObjectOptions
	err    error
}

func (f *fakePutter) PutObject(_ context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.bucket, f.key, f.body, f.opts = bucket, key, body, opts
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

func newCertificate(t *testing.T) *certificate.Certificate {
	t.Helper()
	cert, err := certificate.New(certificate.Refs{
		RegistryID: uuid.New(),
		UserID:     uuid.New(),
		ActivityID: uuid.New(),
		EventID:    uuid.New(),
	}, certificate.Content{
		ParticipantName:   "Ana",
		EventName:         "III Semana da Computação 2026",
		ActivityTitle:     "Go workshop",
		WorkloadInMinutes: 120,
	}, time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return cert
}

func TestMinioArchive_Store(t *testing.T) {
	putter := &fakePutter{}
	archive := newMinioArchive(putter, "certificates")
	cert := newCertificate(t)

	require.NoError(t, archive.Store(context.Background(), cert))

	assert.Equal(t, "certificates", putter.bucket)
	assert.Equal(t, "certificates/"+cert.EventID.String()+"/"+cert.Code+".json", putter.key)
	assert.Equal(t, "application/json", putter.opts.ContentType)
	assert.Contains(t, string(putter.body), cert.Code)
	assert.Contains(t, string(putter.body), "Go workshop")
}

func TestMinioArchive_StoreError(t *testing.T) {
	archive := newMinioArchive(&fakePutter{err: errors.New("bucket gone")}, "certificates")

	err := archive.Store(context.Background(), newCertificate(t))
	assert.ErrorContains(t, err, "bucket gone")
}

func TestNew_DisabledWithoutEndpoint(t *testing.T) {
	archive, err := New(context.Background(), &config.Config{})
	require.NoError(t, err)
	assert.IsType(t, NopArchive{}, archive)
}
