// Package contracts contains request and response payloads for the HTTP API
package contracts

import (
	"time"

	"github.com/kindaboxs/meetboxs/domain"
	"github.com/kindaboxs/meetboxs/domain/model"
)

// ListAgentsRequest represents the query parameters for listing agents
// Zero-valued Page and PageSize select the configured defaults
type ListAgentsRequest struct {
	Page     int    `json:"page" validate:"omitempty,gte=1"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search,omitempty" validate:"omitempty,max=255"`
}

// GetAgentRequest represents the request for fetching a single agent
type GetAgentRequest struct {
	ID string `validate:"required,ulid"`
}

// CreateAgentRequest represents the request payload for creating a new agent
type CreateAgentRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	Instructions string `json:"instructions" validate:"required,min=1"`
}

// UpdateAgentRequest represents the request payload for updating an existing agent
// Omitted fields keep their stored values
type UpdateAgentRequest struct {
	ID           string  `json:"id" validate:"required,ulid"`
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Instructions *string `json:"instructions,omitempty" validate:"omitempty,min=1"`
}

// DeleteAgentRequest represents the request for deleting an agent
type DeleteAgentRequest struct {
	ID string `validate:"required,ulid"`
}

// AgentResponse represents the agent payload returned by the API
type AgentResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Instructions string    `json:"instructions"`
	MeetingCount int64     `json:"meeting_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AgentsListResponse represents one page of agents together with the totals
// of the filtered set
// Page and PageSize echo the resolved pagination so callers see the applied
// defaults, not the raw request
type AgentsListResponse struct {
	Items      []AgentResponse `json:"items"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
}

// CreateAgentRequestToModel converts CreateAgentRequest to model.Agent
func CreateAgentRequestToModel(req *CreateAgentRequest, ownerID string) *model.Agent {
	return &model.Agent{
		UserID:       ownerID,
		Name:         req.Name,
		Instructions: req.Instructions,
	}
}

// AgentModelToResponse converts model.Agent to AgentResponse
func AgentModelToResponse(agent *model.Agent) *AgentResponse {
	return &AgentResponse{
		ID:           agent.ID,
		Name:         agent.Name,
		Instructions: agent.Instructions,
		MeetingCount: agent.MeetingCount,
		CreatedAt:    agent.CreatedAt,
		UpdatedAt:    agent.UpdatedAt,
	}
}

// AgentModelsToListResponse converts one repository page to the list payload
func AgentModelsToListResponse(agents []*model.Agent, total int, page domain.PageRequest) *AgentsListResponse {
	items := make([]AgentResponse, len(agents))
	for i, agent := range agents {
		items[i] = *AgentModelToResponse(agent)
	}
	return &AgentsListResponse{
		Items:      items,
		Total:      total,
		TotalPages: page.TotalPages(total),
		Page:       page.Page,
		PageSize:   page.PageSize,
	}
}
