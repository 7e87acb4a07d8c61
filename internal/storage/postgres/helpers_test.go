package postgres

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/gravadigital/eventos-api/internal/config"
	"github.com/gravadigital/eventos-api/internal/domain/common"
)

// testConfig reads the environment, TEST_DB_NAME overrides the database name
func testConfig() *config.Config {
	cfg := config.Load()
	if name := os.Getenv("TEST_DB_NAME"); name != "" {
		cfg.DB.Name = name
	}
	return cfg
}

func TestMissing(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	assert.Empty(t, missing([]uuid.UUID{a, b}, []uuid.UUID{b, a}))
	assert.Equal(t, []uuid.UUID{c}, missing([]uuid.UUID{a, c}, []uuid.UUID{a, b}))
	assert.Empty(t, missing(nil, []uuid.UUID{a}))
}

func TestTranslateNotFound(t *testing.T) {
	err := translateNotFound(fmt.Errorf("query: %w", gorm.ErrRecordNotFound), "activity")
	assert.True(t, common.IsNotFound(err))
	assert.Equal(t, "activity not found", err.Error())

	other := errors.New("connection reset")
	assert.Same(t, other, translateNotFound(other, "activity"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
}

func TestValidateDatabaseConfig(t *testing.T) {
	cfg := testConfig()
	assert.NoError(t, validateDatabaseConfig(cfg))

	cfg.DB.Host = ""
	assert.Error(t, validateDatabaseConfig(cfg))
}

func TestGormLogLevel(t *testing.T) {
	cfg := &config.Config{Environment: "development"}
	cfg.Log.Level = "info"
	assert.Equal(t, gormLogger.Warn, gormLogLevel(cfg))

	cfg.Log.Level = "debug"
	assert.Equal(t, gormLogger.Info, gormLogLevel(cfg))

	cfg.Log.Level = "info"
	cfg.Environment = "production"
	assert.Equal(t, gormLogger.Silent, gormLogLevel(cfg))
}
