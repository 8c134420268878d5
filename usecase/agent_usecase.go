// Package usecase contains business logic for agent, meeting and auth operations
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/kindaboxs/meetboxs/contracts"
	"github.com/kindaboxs/meetboxs/domain"
	"github.com/kindaboxs/meetboxs/domain/model"
	"github.com/kindaboxs/meetboxs/domain/repository"
	"github.com/kindaboxs/meetboxs/pkg/logger"
)

// AgentUseCase defines business operations for agents
// Every operation takes the caller's user ID explicitly; ownership is never
// read from ambient context
type AgentUseCase interface {
	ListAgents(ctx context.Context, callerID string, req *contracts.ListAgentsRequest) (*contracts.AgentsListResponse, error)
	GetAgentByID(ctx context.Context, callerID, id string) (*model.Agent, error)
	CreateAgent(ctx context.Context, callerID string, req *contracts.CreateAgentRequest) (*model.Agent, error)
	UpdateAgent(ctx context.Context, callerID string, req *contracts.UpdateAgentRequest) (*model.Agent, error)
	DeleteAgent(ctx context.Context, callerID, id string) (*model.Agent, error)
}

// agentUseCase implements the AgentUseCase interface
type agentUseCase struct {
	// agentRepo is the repository interface for agent database operations
	agentRepo repository.Agent
	// bounds holds the deployment-configured pagination limits
	bounds domain.PageBounds
	// logger is used for logging operations within the usecase
	logger logger.LoggerInterface
}

// NewAgentUseCase creates a new instance of agentUseCase
func NewAgentUseCase(agentRepo repository.Agent, bounds domain.PageBounds, appLogger logger.LoggerInterface) AgentUseCase {
	return &agentUseCase{
		agentRepo: agentRepo,
		bounds:    bounds,
		logger:    appLogger,
	}
}

// ListAgents returns one page of the caller's agents matching the filter
func (uc *agentUseCase) ListAgents(ctx context.Context, callerID string, req *contracts.ListAgentsRequest) (*contracts.AgentsListResponse, error) {
	uc.logger.InfoContext(ctx, "Listing agents in usecase", "callerID", callerID, "page", req.Page, "pageSize", req.PageSize, "search", req.Search)

	page, err := uc.bounds.Resolve(req.Page, req.PageSize)
	if err != nil {
		uc.logger.WarnContext(ctx, "Rejected pagination parameters", "page", req.Page, "pageSize", req.PageSize, "error", err)
		return nil, err
	}

	filter := domain.AgentFilter{Search: req.Search}
	agents, total, err := uc.agentRepo.List(ctx, callerID, filter, page)
	if err != nil {
		uc.logger.ErrorContext(ctx, "Error listing agents", "callerID", callerID, "error", err)
		return nil, fmt.Errorf("error listing agents: %w", err)
	}

	uc.logger.InfoContext(ctx, "Agents listed successfully in usecase", "callerID", callerID, "count", len(agents), "total", total)
	return contracts.AgentModelsToListResponse(agents, total, page), nil
}

// GetAgentByID retrieves one of the caller's agents by ID
// A foreign or missing agent is reported the same way so existence never leaks
func (uc *agentUseCase) GetAgentByID(ctx context.Context, callerID, id string) (*model.Agent, error) {
	uc.logger.InfoContext(ctx, "Getting agent by ID in usecase", "callerID", callerID, "id", id)
	if id == "" {
		uc.logger.WarnContext(ctx, "Invalid agent ID provided", "id", id)
		return nil, domain.ErrInvalidID
	}

	agent, err := uc.agentRepo.GetByID(ctx, callerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "Agent not found by ID", "callerID", callerID, "id", id)
			return nil, domain.ErrAgentNotFound
		}
		uc.logger.ErrorContext(ctx, "Error getting agent by ID", "id", id, "error", err)
		return nil, fmt.Errorf("error getting agent: %w", err)
	}

	uc.logger.InfoContext(ctx, "Agent retrieved by ID in usecase", "id", agent.ID)
	return agent, nil
}

// CreateAgent creates a new agent owned by the caller
func (uc *agentUseCase) CreateAgent(ctx context.Context, callerID string, req *contracts.CreateAgentRequest) (*model.Agent, error) {
	uc.logger.InfoContext(ctx, "Creating agent in usecase", "callerID", callerID, "name", req.Name)

	if req.Name == "" {
		uc.logger.WarnContext(ctx, "Name is required for agent creation")
		return nil, domain.ErrNameRequired
	}
	if req.Instructions == "" {
		uc.logger.WarnContext(ctx, "Instructions are required for agent creation")
		return nil, domain.ErrInstructionsRequired
	}

	agent := contracts.CreateAgentRequestToModel(req, callerID)
	if err := uc.agentRepo.Create(ctx, agent); err != nil {
		uc.logger.ErrorContext(ctx, "Failed to create agent in repository", "callerID", callerID, "error", err)
		return nil, fmt.Errorf("error creating agent: %w", err)
	}

	uc.logger.InfoContext(ctx, "Agent created successfully in usecase", "id", agent.ID, "callerID", callerID)
	return agent, nil
}

// UpdateAgent merges the provided fields into one of the caller's agents and
// returns the stored record
func (uc *agentUseCase) UpdateAgent(ctx context.Context, callerID string, req *contracts.UpdateAgentRequest) (*model.Agent, error) {
	uc.logger.InfoContext(ctx, "Updating agent in usecase", "callerID", callerID, "id", req.ID)
	if req.ID == "" {
		uc.logger.WarnContext(ctx, "Invalid agent ID for update", "id", req.ID)
		return nil, domain.ErrInvalidID
	}

	agent, err := uc.agentRepo.GetByID(ctx, callerID, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "Agent not found for update", "callerID", callerID, "id", req.ID)
			return nil, domain.ErrAgentNotFound
		}
		uc.logger.ErrorContext(ctx, "Error fetching agent for update", "id", req.ID, "error", err)
		return nil, fmt.Errorf("error fetching agent: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			uc.logger.WarnContext(ctx, "Name is required for agent update", "id", req.ID)
			return nil, domain.ErrNameRequired
		}
		agent.Name = *req.Name
	}
	if req.Instructions != nil {
		if *req.Instructions == "" {
			uc.logger.WarnContext(ctx, "Instructions are required for agent update", "id", req.ID)
			return nil, domain.ErrInstructionsRequired
		}
		agent.Instructions = *req.Instructions
	}

	if err := uc.agentRepo.Update(ctx, agent); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "Agent disappeared during update", "callerID", callerID, "id", req.ID)
			return nil, domain.ErrAgentNotFound
		}
		uc.logger.ErrorContext(ctx, "Failed to update agent in repository", "id", req.ID, "error", err)
		return nil, fmt.Errorf("error updating agent: %w", err)
	}

	uc.logger.InfoContext(ctx, "Agent updated successfully in usecase", "id", agent.ID)
	return agent, nil
}

// DeleteAgent deletes one of the caller's agents and returns the row's prior
// state
func (uc *agentUseCase) DeleteAgent(ctx context.Context, callerID, id string) (*model.Agent, error) {
	uc.logger.InfoContext(ctx, "Deleting agent in usecase", "callerID", callerID, "id", id)
	if id == "" {
		uc.logger.WarnContext(ctx, "Invalid agent ID for deletion", "id", id)
		return nil, domain.ErrInvalidID
	}

	agent, err := uc.agentRepo.GetByID(ctx, callerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "Agent not found for deletion", "callerID", callerID, "id", id)
			return nil, domain.ErrAgentNotFound
		}
		uc.logger.ErrorContext(ctx, "Error fetching agent for deletion", "id", id, "error", err)
		return nil, fmt.Errorf("error fetching agent: %w", err)
	}

	if err := uc.agentRepo.Delete(ctx, callerID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "Agent not found for deletion", "callerID", callerID, "id", id)
			return nil, domain.ErrAgentNotFound
		}
		uc.logger.ErrorContext(ctx, "Error deleting agent", "id", id, "error", err)
		return nil, fmt.Errorf("error deleting agent: %w", err)
	}

	uc.logger.InfoContext(ctx, "Agent deleted successfully in usecase", "id", id)
	return agent, nil
}
