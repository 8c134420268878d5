// Package repository defines the interfaces for data access layer
package repository

import (
	"context"

	"github.com/kindaboxs/meetboxs/domain"
	"github.com/kindaboxs/meetboxs/domain/model"
)

// Agent interface defines the contract for agent-related database operations
// Every read and mutation is scoped by the owning user's id so a caller can
// only ever see or affect rows it owns
type Agent interface {
	// Create adds a new agent to the database
	// The agent's UserID must already be stamped with the caller identity
	Create(ctx context.Context, agent *model.Agent) error
	// GetByID retrieves the agent matching both id and owner
	// Returns domain.ErrNotFound when no row matches, whether the agent is
	// missing or owned by someone else
	GetByID(ctx context.Context, ownerID, id string) (*model.Agent, error)
	// List retrieves one page of the owner's agents matching the filter,
	// ordered by created_at descending with id as the tie-break, together
	// with the total count under the identical predicate
	List(ctx context.Context, ownerID string, filter domain.AgentFilter, page domain.PageRequest) ([]*model.Agent, int, error)
	// Update merges the agent's fields into the row matching both id and
	// owner; returns domain.ErrNotFound when no row matched
	Update(ctx context.Context, agent *model.Agent) error
	// Delete removes the row matching both id and owner
	// Returns domain.ErrNotFound when no row matched
	Delete(ctx context.Context, ownerID, id string) error
}
