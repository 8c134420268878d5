package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kindaboxs/meetboxs/contracts"
	"github.com/kindaboxs/meetboxs/pkg/api"
	"github.com/kindaboxs/meetboxs/pkg/logger"
	"github.com/kindaboxs/meetboxs/pkg/validator"
	"github.com/kindaboxs/meetboxs/usecase"
)

// MeetingHandler handles HTTP requests for meeting operations
type MeetingHandler struct {
	// MeetingUseCase contains business logic for meeting operations
	MeetingUseCase usecase.MeetingUseCase
	// Logger is used for logging operations within the handler
	Logger logger.LoggerInterface
	// API provides standardized API response patterns
	API api.Api
}

// NewMeetingHandler creates a new instance of MeetingHandler
func NewMeetingHandler(meetingUseCase usecase.MeetingUseCase, appLogger logger.LoggerInterface) *MeetingHandler {
	return &MeetingHandler{
		MeetingUseCase: meetingUseCase,
		Logger:         appLogger,
		API:            api.New(),
	}
}

// ListHandler handles HTTP requests to list the caller's meetings
// It expects optional 'page', 'pageSize', 'search', 'status' and 'agentId'
// query parameters
// Returns a 200 status code with one page of meetings on success
// Returns a 400 status code for malformed query parameters or an unknown status
// Returns a 422 status code for out-of-range pagination values
func (h *MeetingHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "List meetings handler called")

	page, pageSize, ok := parsePageParams(r)
	if !ok {
		h.API.BadRequest(ctx, w, "page and pageSize must be integers")
		return
	}

	req := contracts.ListMeetingsRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   r.URL.Query().Get("search"),
		Status:   r.URL.Query().Get("status"),
		AgentID:  r.URL.Query().Get("agentId"),
	}

	resp, err := h.MeetingUseCase.ListMeetings(ctx, CallerID(ctx), &req)
	if err != nil {
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Meetings listed successfully in handler", "count", len(resp.Items), "total", resp.Total)
	h.API.SuccessWithMeta(ctx, w, resp, listMeta(resp.Page, resp.PageSize, resp.Total, resp.TotalPages))
}

// GetByIDHandler handles HTTP requests to retrieve one of the caller's meetings
// It expects the meeting ID as a URL parameter
// Returns a 404 status code when the meeting does not exist or belongs to
// another user
func (h *MeetingHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Get meeting by ID handler called")

	req := contracts.GetMeetingRequest{ID: chi.URLParam(r, "id")}
	if errs := validator.ValidateStruct(&req); errs != nil {
		h.Logger.WarnContext(ctx, "Validation failed for get meeting by ID", "errors", errs)
		h.API.ValidationError(ctx, w, convertValidationErrors(errs))
		return
	}

	meeting, err := h.MeetingUseCase.GetMeetingByID(ctx, CallerID(ctx), req.ID)
	if err != nil {
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Meeting retrieved by ID in handler", "id", meeting.ID)
	h.API.Success(ctx, w, contracts.MeetingModelToResponse(meeting))
}

// CreateHandler handles HTTP requests to create a new meeting
// It expects a JSON payload with meeting data in the request body
// Returns a 201 status code with the created meeting on success
// Returns a 404 status code when the referenced agent does not exist or
// belongs to another user
// Returns a 422 status code for validation errors
func (h *MeetingHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Create meeting handler called")

	var req contracts.CreateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for meeting creation", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}

	if errs := validator.ValidateStruct(&req); errs != nil {
		h.Logger.WarnContext(ctx, "Validation failed for meeting creation", "errors", errs)
		h.API.ValidationError(ctx, w, convertValidationErrors(errs))
		return
	}

	meeting, err := h.MeetingUseCase.CreateMeeting(ctx, CallerID(ctx), &req)
	if err != nil {
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Meeting created successfully in handler", "id", meeting.ID)
	h.API.Created(ctx, w, contracts.MeetingModelToResponse(meeting))
}

// UpdateHandler handles HTTP requests to update one of the caller's meetings
// It expects the meeting ID as a URL parameter and the changed fields in the
// request body; omitted fields keep their stored values
// Returns a 404 status code when the meeting or a newly referenced agent does
// not exist or belongs to another user
func (h *MeetingHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Update meeting handler called")

	var req contracts.UpdateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for meeting update", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}
	req.ID = chi.URLParam(r, "id")

	if errs := validator.ValidateStruct(&req); errs != nil {
		h.Logger.WarnContext(ctx, "Validation failed for meeting update", "id", req.ID, "errors", errs)
		h.API.ValidationError(ctx, w, convertValidationErrors(errs))
		return
	}

	meeting, err := h.MeetingUseCase.UpdateMeeting(ctx, CallerID(ctx), &req)
	if err != nil {
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Meeting updated successfully in handler", "id", meeting.ID)
	h.API.Success(ctx, w, contracts.MeetingModelToResponse(meeting))
}

// DeleteHandler handles HTTP requests to delete one of the caller's meetings
// It expects the meeting ID as a URL parameter
// Returns a 200 status code with the deleted meeting's prior state on success
// Returns a 404 status code when the meeting does not exist or belongs to
// another user
func (h *MeetingHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Delete meeting handler called")

	req := contracts.DeleteMeetingRequest{ID: chi.URLParam(r, "id")}
	if errs := validator.ValidateStruct(&req); errs != nil {
		h.Logger.WarnContext(ctx, "Validation failed for delete meeting", "errors", errs)
		h.API.ValidationError(ctx, w, convertValidationErrors(errs))
		return
	}

	meeting, err := h.MeetingUseCase.DeleteMeeting(ctx, CallerID(ctx), req.ID)
	if err != nil {
		respondError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Meeting deleted successfully in handler", "id", req.ID)
	h.API.Success(ctx, w, contracts.MeetingModelToResponse(meeting))
}
