package repository

import (
	"context"

	"github.com/kindaboxs/meetboxs/domain/model"
)

// User interface defines the contract for user-related database operations
type User interface {
	// Create adds a new user to the database
	Create(ctx context.Context, user *model.User) error
	// GetByID retrieves a user by their unique identifier
	// Returns domain.ErrNotFound when no row matches
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByEmail retrieves a user by their email address
	// Returns domain.ErrNotFound when no row matches
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
