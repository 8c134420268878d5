package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/kindaboxs/meetboxs/domain"
	"github.com/kindaboxs/meetboxs/domain/model"
	"github.com/kindaboxs/meetboxs/domain/repository"
	"github.com/kindaboxs/meetboxs/pkg/logger"

	"gorm.io/gorm"
)

// userRepository implements the User repository interface using PostgreSQL
type userRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB, logger logger.LoggerInterface) repository.User {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new user to the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	r.logger.InfoContext(ctx, "Creating user", "email", user.Email)

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to create user", "email", user.Email, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.InfoContext(ctx, "User created successfully", "id", user.ID, "email", user.Email)
	return nil
}

// GetByID retrieves a user by their unique identifier
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WarnContext(ctx, "User not found by ID", "id", id)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WarnContext(ctx, "User not found by email", "email", email)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get user by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
