// Package postgres provides PostgreSQL implementations of the repositories
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

// agentMeetingCountSelect adds the derived meeting count to agent reads
// The value is computed per row and never stored
const agentMeetingCountSelect = "agents.*, (SELECT COUNT(*) FROM meetings WHERE meetings.agent_id = agents.id) AS meeting_count"

// agentListScope builds the predicate shared by the page query and the count
// query. The owner equality check is unconditional; filter clauses are added
// only when the filter carries a value, so absent filters never reach the
// statement at all.
func agentListScope(ownerID string, filter domain.AgentFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("agents.user_id = ?", ownerID)
		if filter.Search != "" {
			db = db.Where("agents.name ILIKE ?", "%"+filter.Search+"%")
		}
		return db
	}
}

// agentRepository implements the Agent repository interface using PostgreSQL
type agentRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewAgentRepository creates a new instance of agentRepository
func NewAgentRepository(db *gorm.DB, logger logger.LoggerInterface) repository.Agent {
	return &agentRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new agent to the database
func (r *agentRepository) Create(ctx context.Context, agent *model.Agent) error {
	r.logger.InfoContext(ctx, "Creating agent", "owner", agent.UserID, "name", agent.Name)

	if err := r.db.WithContext(ctx).Create(agent).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to create agent", "owner", agent.UserID, "error", err)
		return fmt.Errorf("failed to create agent: %w", err)
	}

	r.logger.InfoContext(ctx, "Agent created successfully", "id", agent.ID, "owner", agent.UserID)
	return nil
}

// GetByID retrieves the agent matching both id and owner
// A missing row and a foreign-owned row both come back as domain.ErrNotFound
func (r *agentRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Agent, error) {
	var agent model.Agent
	err := r.db.WithContext(ctx).
		Select(agentMeetingCountSelect).
		Where("agents.id = ? AND agents.user_id = ?", id, ownerID).
		First(&agent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WarnContext(ctx, "Agent not found", "id", id, "owner", ownerID)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get agent by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}

	return &agent, nil
}

// List retrieves one page of the owner's agents plus the total row count
// Exactly two statements run: the page fetch and the count, both built from
// the same agentListScope so the predicates can never drift apart
func (r *agentRepository) List(ctx context.Context, ownerID string, filter domain.AgentFilter, page domain.PageRequest) ([]*model.Agent, int, error) {
	r.logger.InfoContext(ctx, "Listing agents", "owner", ownerID, "page", page.Page, "page_size", page.PageSize)

	var agents []*model.Agent
	err := r.db.WithContext(ctx).
		Model(&model.Agent{}).
		Scopes(agentListScope(ownerID, filter)).
		Select(agentMeetingCountSelect).
		Order("agents.created_at DESC, agents.id DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&agents).Error
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list agents", "owner", ownerID, "error", err)
		return nil, 0, fmt.Errorf("failed to list agents: %w", err)
	}

	var total int64
	err = r.db.WithContext(ctx).
		Model(&model.Agent{}).
		Scopes(agentListScope(ownerID, filter)).
		Count(&total).Error
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count agents", "owner", ownerID, "error", err)
		return nil, 0, fmt.Errorf("failed to count agents: %w", err)
	}

	r.logger.InfoContext(ctx, "Agents listed successfully", "owner", ownerID, "count", len(agents), "total", total)
	return agents, int(total), nil
}

// Update merges the agent's mutable fields into the row matching both id and
// owner. Zero rows affected means the row is missing or foreign-owned.
func (r *agentRepository) Update(ctx context.Context, agent *model.Agent) error {
	r.logger.InfoContext(ctx, "Updating agent", "id", agent.ID, "owner", agent.UserID)

	res := r.db.WithContext(ctx).
		Model(&model.Agent{}).
		Where("id = ? AND user_id = ?", agent.ID, agent.UserID).
		Updates(map[string]any{
			"name":         agent.Name,
			"instructions": agent.Instructions,
		})
	if res.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to update agent", "id", agent.ID, "error", res.Error)
		return fmt.Errorf("failed to update agent: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		r.logger.WarnContext(ctx, "Agent not found for update", "id", agent.ID, "owner", agent.UserID)
		return domain.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Agent updated successfully", "id", agent.ID)
	return nil
}

// Delete removes the row matching both id and owner
func (r *agentRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.logger.InfoContext(ctx, "Deleting agent", "id", id, "owner", ownerID)

	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Agent{})
	if res.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to delete agent", "id", id, "error", res.Error)
		return fmt.Errorf("failed to delete agent: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		r.logger.WarnContext(ctx, "Agent not found for deletion", "id", id, "owner", ownerID)
		return domain.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Agent deleted successfully", "id", id)
	return nil
}
