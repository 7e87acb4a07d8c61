package postgres

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/gravadigital/eventos-api/internal/config"
	"github.com/gravadigital/eventos-api/internal/logger"
)

// Container implements RepositoryContainer on top of one gorm connection
type Container struct {
	db              *gorm.DB
	log             *log.Logger
	userRepo        UserRepository
	categoryRepo    CategoryRepository
	roomRepo        RoomRepository
	eventRepo       EventRepository
	activityRepo    ActivityRepository
	registryRepo    RegistryRepository
	certificateRepo CertificateRepository
}

// NewContainer connects, migrates and wires every repository
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Repository("postgres_container")
	log.Info("Initializing PostgreSQL repository container...")

	db, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := NewContainerWithDB(db)
	if err := container.Health(); err != nil {
		return nil, fmt.Errorf("container health check failed: %w", err)
	}

	log.Info("PostgreSQL repository container initialized")
	return container, nil
}

// NewContainerWithDB creates a container with an existing database connection
func NewContainerWithDB(db *gorm.DB) *Container {
	return &Container{
		db:              db,
		log:             logger.Repository("postgres_container"),
		userRepo:        NewPostgresUserRepository(db),
		categoryRepo:    NewPostgresCategoryRepository(db),
		roomRepo:        NewPostgresRoomRepository(db),
		eventRepo:       NewPostgresEventRepository(db),
		activityRepo:    NewPostgresActivityRepository(db),
		registryRepo:    NewPostgresRegistryRepository(db),
		certificateRepo: NewPostgresCertificateRepository(db),
	}
}

func (c *Container) Users() UserRepository               { return c.userRepo }
func (c *Container) Categories() CategoryRepository      { return c.categoryRepo }
func (c *Container) Rooms() RoomRepository               { return c.roomRepo }
func (c *Container) Events() EventRepository             { return c.eventRepo }
func (c *Container) Activities() ActivityRepository      { return c.activityRepo }
func (c *Container) Registries() RegistryRepository      { return c.registryRepo }
func (c *Container) Certificates() CertificateRepository { return c.certificateRepo }

// Health pings the database and queries every table the repositories use
func (c *Container) Health() error {
	if err := HealthCheck(context.Background(), c.db); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	metrics := GetDatabaseMetrics(c.db)
	c.log.Debug("Database connection metrics",
		"open_connections", metrics.OpenConnections,
		"in_use_connections", metrics.InUseConnections,
		"idle_connections", metrics.IdleConnections)

	tables := []string{
		"users", "event_categories", "rooms", "events", "activities",
		"schedules", "activity_registries", "presences", "certificates",
	}
	for _, table := range tables {
		var count int64
		if err := c.db.Table(table).Limit(1).Count(&count).Error; err != nil {
			c.log.Error("Repository health check failed", "table", table, "error", err)
			return fmt.Errorf("table %s health check failed: %w", table, err)
		}
	}

	return nil
}

// Close shuts down the database pool
func (c *Container) Close() error {
	if c.db == nil {
		return nil
	}

	c.log.Info("Closing PostgreSQL repository container...")
	if err := closeDB(c.db); err != nil {
		c.log.Error("Failed to close database connection", "error", err)
		return err
	}
	c.db = nil
	return nil
}

// GetDB returns the underlying database connection
func (c *Container) GetDB() *gorm.DB {
	return c.db
}
