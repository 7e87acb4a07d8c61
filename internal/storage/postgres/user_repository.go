package postgres

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/eventos-api/internal/domain/common"
	"github.com/gravadigital/eventos-api/internal/domain/participant"
	"github.com/gravadigital/eventos-api/internal/logger"
)

// PostgresUserRepository implements UserRepository using GORM
type PostgresUserRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db:  db,
		log: logger.Repository("user"),
	}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *participant.User) error {
	r.log.Debug("Creating user", "email", user.Email)

	if err := user.Validate(); err != nil {
		return fmt.Errorf("user validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return common.ErrEmailAlreadyInUse
		}
		r.log.Error("Failed to create user", "error", err, "email", user.Email)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("User created", "id", user.ID)
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*participant.User, error) {
	var user participant.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "user")
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*participant.User, error) {
	email = participant.NormalizeEmail(email)
	if email == "" {
		return nil, common.NewNotFound("user")
	}

	var user participant.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateNotFound(err, "user")
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetAll(ctx context.Context) ([]*participant.User, error) {
	var users []*participant.User
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&users).Error; err != nil {
		r.log.Error("Failed to get all users", "error", err)
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

func (r *PostgresUserRepository) MissingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&participant.User{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("failed to check users: %w", err)
	}
	return missing(ids, found), nil
}

// missing returns the ids of want that are absent from found
func missing(want, found []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		seen[id] = struct{}{}
	}

	var out []uuid.UUID
	for _, id := range want {
		if _, ok := seen[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
