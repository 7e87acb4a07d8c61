package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Server struct {
		Port            string
		GinMode         string
		ShutdownTimeout time.Duration
	}

	CORS struct {
		AllowOrigins string
		AllowMethods string
		AllowHeaders string
	}

	Auth struct {
		JWTSecret     string
		TokenTTL      time.Duration
		AdminName     string
		AdminEmail    string
		AdminPassword string
	}

	Storage struct {
		Type              string
		MinioEndpoint     string
		MinioAccessKey    string
		MinioSecretKey    string
		MinioUseSSL       bool
		CertificateBucket string
	}

	Log struct {
		Level string
	}
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.Environment = getEnv("APP_ENV", "development")

	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "eventos")
	config.DB.Password = getEnv("DB_PASSWORD", "eventos_password")
	config.DB.Name = getEnv("DB_NAME", "eventos_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	config.Server.Port = getEnv("PORT", "8080")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")
	config.Server.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second)

	config.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	config.CORS.AllowMethods = getEnv("CORS_ALLOW_METHODS", "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS")
	config.CORS.AllowHeaders = getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type,Authorization")

	config.Auth.JWTSecret = getEnv("JWT_SECRET", "change-me-in-production")
	config.Auth.TokenTTL = getEnvAsDuration("JWT_TTL", 12*time.Hour)
	config.Auth.AdminName = getEnv("ADMIN_NAME", "Administrador")
	config.Auth.AdminEmail = getEnv("ADMIN_EMAIL", "")
	config.Auth.AdminPassword = getEnv("ADMIN_PASSWORD", "")

	config.Storage.Type = getEnv("STORAGE_TYPE", "postgres")
	config.Storage.MinioEndpoint = getEnv("MINIO_ENDPOINT", "")
	config.Storage.MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "")
	config.Storage.MinioSecretKey = getEnv("MINIO_SECRET_KEY", "")
	config.Storage.MinioUseSSL = getEnvAsBool("MINIO_USE_SSL", false)
	config.Storage.CertificateBucket = getEnv("MINIO_CERTIFICATE_BUCKET", "certificates")

	config.Log.Level = getEnv("LOG_LEVEL", "info")

	return config
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CertificateArchiveEnabled reports whether issued certificates are copied to object storage
func (c *Config) CertificateArchiveEnabled() bool {
	return c.Storage.MinioEndpoint != ""
}

// SplitList splits a comma separated setting, dropping empty entries
func SplitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as time.Duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
