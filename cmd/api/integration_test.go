//go:build integration

package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/eventos-api/internal/config"
	"github.com/gravadigital/eventos-api/internal/storage/postgres"
)

// Integration tests that require a real PostgreSQL database
// Run with: go test -tags=integration ./...

func testConfig() *config.Config {
	cfg := config.Load()
	if testDB := os.Getenv("TEST_DB_NAME"); testDB != "" {
		cfg.DB.Name = testDB
	}
	return cfg
}

func TestDatabaseConnection(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	require.NoError(t, err, "Should be able to connect to test database")

	assert.NoError(t, postgres.HealthCheck(context.Background(), db), "Should be able to ping the database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.Close()
}

func TestDatabaseMigration(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	require.NoError(t, err, "Should be able to connect to test database")

	assert.NoError(t, postgres.AutoMigrate(db), "Should be able to run migrations")
	assert.NoError(t, postgres.AutoMigrate(db), "Running migrations twice should be a no-op")

	container := postgres.NewContainerWithDB(db)
	assert.NoError(t, container.Health())
	assert.NoError(t, container.Close())
}
