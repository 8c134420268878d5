package repository

import (
	"context"

	"github.com/kindaboxs/meetboxs/domain"
	"github.com/kindaboxs/meetboxs/domain/model"
)

// Meeting interface defines the contract for meeting-related database operations
// All operations carry the mandatory owner predicate like the Agent interface
type Meeting interface {
	// Create adds a new meeting to the database
	Create(ctx context.Context, meeting *model.Meeting) error
	// GetByID retrieves the meeting matching both id and owner, with its
	// agent loaded; returns domain.ErrNotFound when no row matches
	GetByID(ctx context.Context, ownerID, id string) (*model.Meeting, error)
	// List retrieves one page of the owner's meetings matching the filter,
	// joined with their agents, ordered by created_at descending with id as
	// the tie-break, together with the total count under the identical
	// predicate
	List(ctx context.Context, ownerID string, filter domain.MeetingFilter, page domain.PageRequest) ([]*model.Meeting, int, error)
	// Update merges the meeting's fields into the row matching both id and
	// owner; returns domain.ErrNotFound when no row matched
	Update(ctx context.Context, meeting *model.Meeting) error
	// Delete removes the row matching both id and owner
	// Returns domain.ErrNotFound when no row matched
	Delete(ctx context.Context, ownerID, id string) error
}
