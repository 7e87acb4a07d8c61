package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/eventos-api/internal/auth"
	"github.com/gravadigital/eventos-api/internal/config"
	"github.com/gravadigital/eventos-api/internal/handlers"
	"github.com/gravadigital/eventos-api/internal/logger"
	mwauth "github.com/gravadigital/eventos-api/internal/middleware/auth"
	"github.com/gravadigital/eventos-api/internal/middleware/events"
	"github.com/gravadigital/eventos-api/internal/services"
	"github.com/gravadigital/eventos-api/internal/storage/objectstore"
	"github.com/gravadigital/eventos-api/internal/storage/postgres"
	"github.com/gravadigital/eventos-api/internal/validation"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	repos      postgres.RepositoryContainer
	archive    objectstore.CertificateArchive
	clock      services.Clock
	hashCost   int

	tokens *auth.TokenManager
	users  *services.UserService
	router *gin.Engine
}

// Option customizes a Server
type Option func(*Server)

// WithArchive sets where issued certificates are archived
func WithArchive(archive objectstore.CertificateArchive) Option {
	return func(s *Server) { s.archive = archive }
}

// WithClock pins the time seen by services and tokens
func WithClock(clock services.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithHashCost sets the bcrypt cost for new passwords
func WithHashCost(cost int) Option {
	return func(s *Server) { s.hashCost = cost }
}

// New creates a new server instance with every route wired
func New(cfg *config.Config, repos postgres.RepositoryContainer, opts ...Option) (*Server, error) {
	s := &Server{
		config:  cfg,
		repos:   repos,
		archive: objectstore.NopArchive{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := validation.Register(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	s.tokens = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if s.clock != nil {
		s.tokens.WithClock(s.clock)
	}

	s.router = s.setupRouter()
	return s, nil
}

// Handler exposes the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// EnsureAdmin creates the configured administrator account when missing
func (s *Server) EnsureAdmin(ctx context.Context) error {
	email, password := s.config.Auth.AdminEmail, s.config.Auth.AdminPassword
	if email == "" || password == "" {
		logger.Get().Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	admin, err := s.users.EnsureAdmin(ctx, s.config.Auth.AdminName, email, password)
	if err != nil {
		return fmt.Errorf("failed to ensure admin user: %w", err)
	}
	logger.Get().Info("Admin user ready", "email", admin.Email)
	return nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: s.router,

		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *gin.Engine {
	switch {
	case s.config.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case s.config.Server.GinMode == gin.TestMode:
		gin.SetMode(gin.TestMode)
	}

	router := gin.New()
	router.Use(events.CreateEvent())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if origins := config.SplitList(s.config.CORS.AllowOrigins); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	if methods := config.SplitList(s.config.CORS.AllowMethods); len(methods) > 0 {
		corsConfig.AllowMethods = methods
	}
	if headers := config.SplitList(s.config.CORS.AllowHeaders); len(headers) > 0 {
		corsConfig.AllowHeaders = headers
	}
	corsConfig.ExposeHeaders = []string{events.RequestIDHeader}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Inicializar servicios
	clock := s.clock
	s.users = services.NewUserService(s.repos.Users(), s.tokens)
	if s.hashCost > 0 {
		s.users.WithHashCost(s.hashCost)
	}
	categoryService := services.NewCategoryService(s.repos.Categories())
	roomService := services.NewRoomService(s.repos.Rooms())
	eventService := services.NewEventService(s.repos.Events(), s.repos.Categories(), s.repos.Users())
	activityService := services.NewActivityService(
		s.repos.Activities(), s.repos.Events(), s.repos.Rooms(), s.repos.Users(), s.repos.Registries(), clock,
	)
	registryService := services.NewRegistryService(s.repos.Registries(), s.repos.Activities(), clock)
	certificateService := services.NewCertificateService(
		s.repos.Certificates(), s.repos.Registries(), s.repos.Events(), s.archive, clock,
	)

	// Inicializar handlers
	routes := apiHandlers{
		users:        handlers.NewUserHandler(s.users, certificateService),
		catalog:      handlers.NewCatalogHandler(categoryService, roomService),
		events:       handlers.NewEventHandler(eventService),
		activities:   handlers.NewActivityHandler(activityService),
		registries:   handlers.NewRegistryHandler(registryService),
		certificates: handlers.NewCertificateHandler(certificateService),
	}

	router.GET("/ping", s.ping)

	s.setupAPIRoutes(router, routes)

	return router
}

func (s *Server) ping(c *gin.Context) {
	if err := s.repos.Health(); err != nil {
		logger.HTTP().Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"message": "Eventos API storage is unavailable",
			"status":  "unhealthy",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Eventos API is running",
		"status":  "healthy",
	})
}

type apiHandlers struct {
	users        *handlers.UserHandler
	catalog      *handlers.CatalogHandler
	events       *handlers.EventHandler
	activities   *handlers.ActivityHandler
	registries   *handlers.RegistryHandler
	certificates *handlers.CertificateHandler
}

// setupAPIRoutes configures all API routes
func (s *Server) setupAPIRoutes(router *gin.Engine, h apiHandlers) {
	requireAuth := mwauth.RequireAuth(s.tokens)

	api := router.Group("/api")
	{
		api.POST("/users", h.users.Register)
		api.POST("/auth/login", h.users.Login)

		me := api.Group("/users/me", requireAuth)
		{
			me.GET("", h.users.Me)
			me.GET("/certificates", h.users.MyCertificates)
		}

		api.GET("/categories", h.catalog.ListCategories)
		api.POST("/categories", requireAuth, h.catalog.CreateCategory)
		api.GET("/rooms", h.catalog.ListRooms)
		api.POST("/rooms", requireAuth, h.catalog.CreateRoom)

		events := api.Group("/events")
		{
			events.GET("", h.events.GetAllEvents)
			events.POST("", requireAuth, h.events.CreateEvent)
			events.GET("/:id", h.events.GetEvent)
			events.PUT("/:id", requireAuth, h.events.UpdateEvent)
			events.DELETE("/:id", requireAuth, h.events.DeleteEvent)
			events.GET("/:id/activities", h.activities.ListByEvent)
			events.POST("/:id/activities", requireAuth, h.activities.CreateActivity)
			events.POST("/:id/certificates", requireAuth, h.certificates.IssueForEvent)
		}

		activities := api.Group("/activities")
		{
			activities.GET("/:id", h.activities.GetActivity)
			activities.PUT("/:id", requireAuth, h.activities.UpdateActivity)
			activities.DELETE("/:id", requireAuth, h.activities.DeleteActivity)
			activities.POST("/:id/registry", requireAuth, h.registries.Register)
			activities.DELETE("/:id/registry", requireAuth, h.registries.Cancel)
			activities.GET("/:id/registries", requireAuth, h.registries.ListByActivity)
		}

		api.PATCH("/registries/:id/rating", requireAuth, h.registries.Rate)
		api.PUT("/schedules/:id/presences", requireAuth, h.registries.MarkPresence)
		api.GET("/certificates/:code", h.certificates.Verify)
	}
}
