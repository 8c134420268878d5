package contracts

import (
	"time"

	"github.com/kindaboxs/meetboxs/domain"
	"github.com/kindaboxs/meetboxs/domain/model"
)

// ListMeetingsRequest represents the query parameters for listing meetings
// Zero-valued Page and PageSize select the configured defaults; Status and
// AgentID narrow the predicate only when present
type ListMeetingsRequest struct {
	Page     int    `json:"page" validate:"omitempty,gte=1"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search,omitempty" validate:"omitempty,max=255"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=upcoming active completed processing cancelled"`
	AgentID  string `json:"agent_id,omitempty" validate:"omitempty,ulid"`
}

// GetMeetingRequest represents the request for fetching a single meeting
type GetMeetingRequest struct {
	ID string `validate:"required,ulid"`
}

// CreateMeetingRequest represents the request payload for creating a new meeting
type CreateMeetingRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	AgentID string `json:"agent_id" validate:"required,ulid"`
}

// UpdateMeetingRequest represents the request payload for updating an existing
// meeting; omitted fields keep their stored values
// StartedAt and EndedAt record the lifecycle timestamps alongside a status
// transition so the elapsed duration can be derived
type UpdateMeetingRequest struct {
	ID        string     `json:"id" validate:"required,ulid"`
	Name      *string    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	AgentID   *string    `json:"agent_id,omitempty" validate:"omitempty,ulid"`
	Status    *string    `json:"status,omitempty" validate:"omitempty,oneof=upcoming active completed processing cancelled"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// DeleteMeetingRequest represents the request for deleting a meeting
type DeleteMeetingRequest struct {
	ID string `validate:"required,ulid"`
}

// MeetingResponse represents the meeting payload returned by the API, with
// its agent embedded and the elapsed duration derived from the timestamps
type MeetingResponse struct {
	ID              string         `json:"id"`
	AgentID         string         `json:"agent_id"`
	Agent           *AgentResponse `json:"agent,omitempty"`
	Name            string         `json:"name"`
	Status          string         `json:"status"`
	StartedAt       *time.Time     `json:"started_at"`
	EndedAt         *time.Time     `json:"ended_at"`
	DurationSeconds *float64       `json:"duration_seconds"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// MeetingsListResponse represents one page of meetings
// Page and PageSize echo the resolved pagination so callers see the applied
// defaults, not the raw request
type MeetingsListResponse struct {
	Items      []MeetingResponse `json:"items"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

// CreateMeetingRequestToModel converts CreateMeetingRequest to model.Meeting
func CreateMeetingRequestToModel(req *CreateMeetingRequest, ownerID string) *model.Meeting {
	return &model.Meeting{
		UserID:  ownerID,
		AgentID: req.AgentID,
		Name:    req.Name,
		Status:  model.MeetingStatusUpcoming,
	}
}

// MeetingModelToResponse converts model.Meeting to MeetingResponse
func MeetingModelToResponse(meeting *model.Meeting) *MeetingResponse {
	resp := &MeetingResponse{
		ID:              meeting.ID,
		AgentID:         meeting.AgentID,
		Name:            meeting.Name,
		Status:          string(meeting.Status),
		StartedAt:       meeting.StartedAt,
		EndedAt:         meeting.EndedAt,
		DurationSeconds: meeting.Duration(),
		CreatedAt:       meeting.CreatedAt,
		UpdatedAt:       meeting.UpdatedAt,
	}
	if meeting.Agent.ID != "" {
		resp.Agent = AgentModelToResponse(&meeting.Agent)
	}
	return resp
}

// MeetingModelsToListResponse converts one repository page to the list payload
func MeetingModelsToListResponse(meetings []*model.Meeting, total int, page domain.PageRequest) *MeetingsListResponse {
	items := make([]MeetingResponse, len(meetings))
	for i, meeting := range meetings {
		items[i] = *MeetingModelToResponse(meeting)
	}
	return &MeetingsListResponse{
		Items:      items,
		Total:      total,
		TotalPages: page.TotalPages(total),
		Page:       page.Page,
		PageSize:   page.PageSize,
	}
}
