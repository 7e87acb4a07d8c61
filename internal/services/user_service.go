package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gravadigital/eventos-api/internal/auth"
	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/participant"
	"github.com/gravadigital/eventos-api/internal/logger"
	"github.com/gravadigital/eventos-api/internal/storage/postgres"
)

// UserService maneja el registro de usuarios y el login
type UserService struct {
	userRepo postgres.UserRepository
	tokens   *auth.TokenManager
	hashCost int
	log      *log.Logger
}

// NewUserService crea una nueva instancia del servicio de usuarios
func NewUserService(userRepo postgres.UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
		log:      logger.Service("user"),
	}
}

// WithHashCost overrides the bcrypt cost, tests use bcrypt.MinCost
func (s *UserService) WithHashCost(cost int) *UserService {
	s.hashCost = cost
	return s
}

// CreateUserRequest representa una solicitud para crear un usuario
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest holds the credentials of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is the issued token plus the user it identifies
type LoginResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      *participant.User `json:"user"`
}

// CreateUser registra un nuevo participante
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*participant.User, error) {
	return s.createWithRole(ctx, req, participant.RoleParticipant)
}

func (s *UserService) createWithRole(ctx context.Context, req CreateUserRequest, role participant.Role) (*participant.User, error) {
	email := participant.NormalizeEmail(req.Email)

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailAlreadyInUse
	} else if !common.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := participant.NewUser(req.Name, email, string(hash))
	user.Role = role
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login checks the credentials and issues a bearer token
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Debug("User logged in", "user_id", user.ID)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// GetUser obtiene un usuario por su ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*participant.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// EnsureAdmin creates the bootstrap admin account if its email is not taken yet
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (*participant.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if !existing.IsAdmin() {
			s.log.Warn("Bootstrap admin email belongs to a participant", "email", existing.Email)
		}
		return existing, nil
	}
	if !common.IsNotFound(err) {
		return nil, err
	}

	return s.createWithRole(ctx, CreateUserRequest{Name: name, Email: email, Password: password}, participant.RoleAdmin)
}
