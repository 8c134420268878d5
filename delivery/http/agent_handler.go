package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kindaboxs/meetboxs/contracts"
	"github.com/kindaboxs/meetboxs/pkg/api"
	"github.com/kindaboxs/meetboxs/pkg/logger"
	"github.com/kindaboxs/meetboxs/pkg/validator"
	"github.com/kindaboxs/meetboxs/usecase"
)

// AgentHandler handles HTTP requests for agent operations
type AgentHandler struct {
	// AgentUseCase contains business logic for agent operations
	AgentUseCase usecase.AgentUseCase
	// Logger is used for logging operations within the handler
	Logger logger.LoggerInterface
	// API provides standardized API response patterns
	API api.Api
}

// NewAgentHandler creates a new instance of AgentHandler
func NewAgentHandler(agentUseCase usecase.AgentUseCase, appLogger logger.LoggerInterface) *AgentHandler {
	return &AgentHandler{
		AgentUseCase: agentUseCase,
		Logger:       appLogger,
		API:          api.New(),
	}
}

// parsePageParams reads page and pageSize query parameters
// Absent parameters stay zero so the usecase applies the configured defaults
func parsePageParams(r *http.Request) (page, pageSize int, ok bool) {
	ok = true
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, ok = atoiParam(raw)
		if !ok {
			return 0, 0, false
		}
	}
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		pageSize, ok = atoiParam(raw)
		if !ok {
			return 0, 0, false
		}
	}
	return page, pageSize, true
}

func atoiParam(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ListHandler handles HTTP requests to list the caller's agents
// It expects optional 'page', 'pageSize' and 'search' query parameters
// Returns a 200 status code with one page of agents on success
// Returns a 400 status code for malformed query parameters
// Returns a 422 status code for out-of-range pagination values
func (h *AgentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "List agents handler called")

	page, pageSize, ok := parsePageParams(r)
	if !ok {
		h.API.BadRequest(ctx, w, "page and pageSize must be integers")
		return
	}

	req := contracts.ListAgentsRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   r.URL.Query().Get("search"),
	}

	resp, err := h.AgentUseCase.ListAgents(ctx, CallerID(ctx), &req)
	if err != nil {
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Agents listed successfully in handler", "count", len(resp.Items), "total", resp.Total)
	h.API.SuccessWithMeta(ctx, w, resp, listMeta(resp.Page, resp.PageSize, resp.Total, resp.TotalPages))
}

// listMeta builds the pagination meta block for a list response
// The page and pageSize values are the resolved ones echoed by the usecase,
// so configured defaults carry through unchanged
func listMeta(page, pageSize, total, totalPages int) *api.Meta {
	return &api.Meta{
		Pagination: &api.Pagination{
			Page:        page,
			PageSize:    pageSize,
			Total:       total,
			TotalPages:  totalPages,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1 && total > 0,
		},
	}
}

// GetByIDHandler handles HTTP requests to retrieve one of the caller's agents
// It expects the agent ID as a URL parameter
// Returns a 404 status code when the agent does not exist or belongs to
// another user
func (h *AgentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Get agent by ID handler called")

	req := contracts.GetAgentRequest{ID: chi.URLParam(r, "id")}
	if errs := validator.ValidateStruct(&req); errs != nil {
		h.Logger.WarnContext(ctx, "Validation failed for get agent by ID", "errors", errs)
		h.API.ValidationError(ctx, w, convertValidationErrors(errs))
		return
	}

	agent, err := h.AgentUseCase.GetAgentByID(ctx, CallerID(ctx), req.ID)
	if err != nil {
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Agent retrieved by ID in handler", "id", agent.ID)
	h.API.Success(ctx, w, contracts.AgentModelToResponse(agent))
}

// CreateHandler handles HTTP requests to create a new agent
// It expects a JSON payload with agent data in the request body
// Returns a 201 status code with the created agent on success
// Returns a 422 status code for validation errors
func (h *AgentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Create agent handler called")

	var req contracts.CreateAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for agent creation", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}

	if errs := validator.ValidateStruct(&req); errs != nil {
		h.Logger.WarnContext(ctx, "Validation failed for agent creation", "errors", errs)
		h.API.ValidationError(ctx, w, convertValidationErrors(errs))
		return
	}

	agent, err := h.AgentUseCase.CreateAgent(ctx, CallerID(ctx), &req)
	if err != nil {
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Agent created successfully in handler", "id", agent.ID)
	h.API.Created(ctx, w, contracts.AgentModelToResponse(agent))
}

// UpdateHandler handles HTTP requests to update one of the caller's agents
// It expects the agent ID as a URL parameter and the changed fields in the
// request body; omitted fields keep their stored values
// Returns a 404 status code when the agent does not exist or belongs to
// another user
func (h *AgentHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Update agent handler called")

	var req contracts.UpdateAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for agent update", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}
	req.ID = chi.URLParam(r, "id")

	if errs := validator.ValidateStruct(&req); errs != nil {
		h.Logger.WarnContext(ctx, "Validation failed for agent update", "id", req.ID, "errors", errs)
		h.API.ValidationError(ctx, w, convertValidationErrors(errs))
		return
	}

	agent, err := h.AgentUseCase.UpdateAgent(ctx, CallerID(ctx), &req)
	if err != nil {
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Agent updated successfully in handler", "id", agent.ID)
	h.API.Success(ctx, w, contracts.AgentModelToResponse(agent))
}

// DeleteHandler handles HTTP requests to delete one of the caller's agents
// It expects the agent ID as a URL parameter
// Returns a 200 status code with the deleted agent's prior state on success
// Returns a 404 status code when the agent does not exist or belongs to
// another user
func (h *AgentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Delete agent handler called")

	req := contracts.DeleteAgentRequest{ID: chi.URLParam(r, "id")}
	if errs := validator.ValidateStruct(&req); errs != nil {
		h.Logger.WarnContext(ctx, "Validation failed for delete agent", "errors", errs)
		h.API.ValidationError(ctx, w, convertValidationErrors(errs))
		return
	}

	agent, err := h.AgentUseCase.DeleteAgent(ctx, CallerID(ctx), req.ID)
	if err != nil {
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Agent deleted successfully in handler", "id", req.ID)
	h.API.Success(ctx, w, contracts.AgentModelToResponse(agent))
}
