package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kindaboxs/meetboxs/contracts"
	"github.com/kindaboxs/meetboxs/domain"
	"github.com/kindaboxs/meetboxs/domain/model"
	"github.com/kindaboxs/meetboxs/domain/repository"
	"github.com/kindaboxs/meetboxs/pkg/kafka"
	"github.com/kindaboxs/meetboxs/pkg/logger"
)

// MeetingUseCase defines business operations for meetings
type MeetingUseCase interface {
	ListMeetings(ctx context.Context, callerID string, req *contracts.ListMeetingsRequest) (*contracts.MeetingsListResponse, error)
	GetMeetingByID(ctx context.Context, callerID, id string) (*model.Meeting, error)
	CreateMeeting(ctx context.Context, callerID string, req *contracts.CreateMeetingRequest) (*model.Meeting, error)
	UpdateMeeting(ctx context.Context, callerID string, req *contracts.UpdateMeetingRequest) (*model.Meeting, error)
	DeleteMeeting(ctx context.Context, callerID, id string) (*model.Meeting, error)
}

// meetingEvent is the payload published on meeting lifecycle changes
type meetingEvent struct {
	Event     string    `json:"event"`
	MeetingID string    `json:"meeting_id"`
	UserID    string    `json:"user_id"`
	AgentID   string    `json:"agent_id"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}

// meetingUseCase implements the MeetingUseCase interface
type meetingUseCase struct {
	meetingRepo repository.Meeting
	// agentRepo verifies that referenced agents exist and belong to the caller
	agentRepo repository.Agent
	bounds    domain.PageBounds
	// producer publishes lifecycle events; nil disables publishing
	producer   kafka.KafkaClient
	eventTopic string
	logger     logger.LoggerInterface
}

// NewMeetingUseCase creates a new instance of meetingUseCase
// Pass a nil producer to run without event publishing
func NewMeetingUseCase(
	meetingRepo repository.Meeting,
	agentRepo repository.Agent,
	bounds domain.PageBounds,
	producer kafka.KafkaClient,
	eventTopic string,
	appLogger logger.LoggerInterface,
) MeetingUseCase {
	return &meetingUseCase{
		meetingRepo: meetingRepo,
		agentRepo:   agentRepo,
		bounds:      bounds,
		producer:    producer,
		eventTopic:  eventTopic,
		logger:      appLogger,
	}
}

// ListMeetings returns one page of the caller's meetings matching the filter,
// each joined with its agent
func (uc *meetingUseCase) ListMeetings(ctx context.Context, callerID string, req *contracts.ListMeetingsRequest) (*contracts.MeetingsListResponse, error) {
	uc.logger.InfoContext(ctx, "Listing meetings in usecase", "callerID", callerID, "page", req.Page, "pageSize", req.PageSize)

	page, err := uc.bounds.Resolve(req.Page, req.PageSize)
	if err != nil {
		uc.logger.WarnContext(ctx, "Rejected pagination parameters", "page", req.Page, "pageSize", req.PageSize, "error", err)
		return nil, err
	}

	filter := domain.MeetingFilter{
		Search:  req.Search,
		AgentID: req.AgentID,
	}
	if req.Status != "" {
		status := model.MeetingStatus(req.Status)
		if !status.IsValid() {
			uc.logger.WarnContext(ctx, "Invalid meeting status filter", "status", req.Status)
			return nil, domain.ErrInvalidMeetingStatus
		}
		filter.Status = status
	}

	meetings, total, err := uc.meetingRepo.List(ctx, callerID, filter, page)
	if err != nil {
		uc.logger.ErrorContext(ctx, "Error listing meetings", "callerID", callerID, "error", err)
		return nil, fmt.Errorf("error listing meetings: %w", err)
	}

	uc.logger.InfoContext(ctx, "Meetings listed successfully in usecase", "callerID", callerID, "count", len(meetings), "total", total)
	return contracts.MeetingModelsToListResponse(meetings, total, page), nil
}

// GetMeetingByID retrieves one of the caller's meetings with its agent loaded
func (uc *meetingUseCase) GetMeetingByID(ctx context.Context, callerID, id string) (*model.Meeting, error) {
	uc.logger.InfoContext(ctx, "Getting meeting by ID in usecase", "callerID", callerID, "id", id)
	if id == "" {
		uc.logger.WarnContext(ctx, "Invalid meeting ID provided", "id", id)
		return nil, domain.ErrInvalidID
	}

	meeting, err := uc.meetingRepo.GetByID(ctx, callerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "Meeting not found by ID", "callerID", callerID, "id", id)
			return nil, domain.ErrMeetingNotFound
		}
		uc.logger.ErrorContext(ctx, "Error getting meeting by ID", "id", id, "error", err)
		return nil, fmt.Errorf("error getting meeting: %w", err)
	}

	uc.logger.InfoContext(ctx, "Meeting retrieved by ID in usecase", "id", meeting.ID)
	return meeting, nil
}

// CreateMeeting creates a new meeting owned by the caller
// The referenced agent must exist and belong to the caller; a foreign agent is
// reported as not found
func (uc *meetingUseCase) CreateMeeting(ctx context.Context, callerID string, req *contracts.CreateMeetingRequest) (*model.Meeting, error) {
	uc.logger.InfoContext(ctx, "Creating meeting in usecase", "callerID", callerID, "name", req.Name, "agentID", req.AgentID)

	if req.Name == "" {
		uc.logger.WarnContext(ctx, "Name is required for meeting creation")
		return nil, domain.ErrNameRequired
	}
	if req.AgentID == "" {
		uc.logger.WarnContext(ctx, "Agent ID is required for meeting creation")
		return nil, domain.ErrAgentIDRequired
	}

	agent, err := uc.agentRepo.GetByID(ctx, callerID, req.AgentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "Referenced agent not found", "callerID", callerID, "agentID", req.AgentID)
			return nil, domain.ErrAgentNotFound
		}
		uc.logger.ErrorContext(ctx, "Error checking referenced agent", "agentID", req.AgentID, "error", err)
		return nil, fmt.Errorf("error checking agent: %w", err)
	}

	meeting := contracts.CreateMeetingRequestToModel(req, callerID)
	if err := uc.meetingRepo.Create(ctx, meeting); err != nil {
		uc.logger.ErrorContext(ctx, "Failed to create meeting in repository", "callerID", callerID, "error", err)
		return nil, fmt.Errorf("error creating meeting: %w", err)
	}
	meeting.Agent = *agent

	uc.publishEvent(ctx, "meeting.created", meeting)
	uc.logger.InfoContext(ctx, "Meeting created successfully in usecase", "id", meeting.ID, "callerID", callerID)
	return meeting, nil
}

// UpdateMeeting merges the provided fields into one of the caller's meetings
// and returns the stored record with its agent loaded
func (uc *meetingUseCase) UpdateMeeting(ctx context.Context, callerID string, req *contracts.UpdateMeetingRequest) (*model.Meeting, error) {
	uc.logger.InfoContext(ctx, "Updating meeting in usecase", "callerID", callerID, "id", req.ID)
	if req.ID == "" {
		uc.logger.WarnContext(ctx, "Invalid meeting ID for update", "id", req.ID)
		return nil, domain.ErrInvalidID
	}

	meeting, err := uc.meetingRepo.GetByID(ctx, callerID, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "Meeting not found for update", "callerID", callerID, "id", req.ID)
			return nil, domain.ErrMeetingNotFound
		}
		uc.logger.ErrorContext(ctx, "Error fetching meeting for update", "id", req.ID, "error", err)
		return nil, fmt.Errorf("error fetching meeting: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			uc.logger.WarnContext(ctx, "Name is required for meeting update", "id", req.ID)
			return nil, domain.ErrNameRequired
		}
		meeting.Name = *req.Name
	}
	if req.AgentID != nil && *req.AgentID != meeting.AgentID {
		agent, err := uc.agentRepo.GetByID(ctx, callerID, *req.AgentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.WarnContext(ctx, "Referenced agent not found for update", "callerID", callerID, "agentID", *req.AgentID)
				return nil, domain.ErrAgentNotFound
			}
			uc.logger.ErrorContext(ctx, "Error checking referenced agent", "agentID", *req.AgentID, "error", err)
			return nil, fmt.Errorf("error checking agent: %w", err)
		}
		meeting.AgentID = agent.ID
		meeting.Agent = *agent
	}
	if req.Status != nil {
		status := model.MeetingStatus(*req.Status)
		if !status.IsValid() {
			uc.logger.WarnContext(ctx, "Invalid meeting status", "status", *req.Status)
			return nil, domain.ErrInvalidMeetingStatus
		}
		meeting.Status = status
	}
	if req.StartedAt != nil {
		meeting.StartedAt = req.StartedAt
	}
	if req.EndedAt != nil {
		meeting.EndedAt = req.EndedAt
	}

	if err := uc.meetingRepo.Update(ctx, meeting); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "Meeting disappeared during update", "callerID", callerID, "id", req.ID)
			return nil, domain.ErrMeetingNotFound
		}
		uc.logger.ErrorContext(ctx, "Failed to update meeting in repository", "id", req.ID, "error", err)
		return nil, fmt.Errorf("error updating meeting: %w", err)
	}

	uc.publishEvent(ctx, "meeting.updated", meeting)
	uc.logger.InfoContext(ctx, "Meeting updated successfully in usecase", "id", meeting.ID)
	return meeting, nil
}

// DeleteMeeting deletes one of the caller's meetings and returns the row's
// prior state with its agent loaded
func (uc *meetingUseCase) DeleteMeeting(ctx context.Context, callerID, id string) (*model.Meeting, error) {
	uc.logger.InfoContext(ctx, "Deleting meeting in usecase", "callerID", callerID, "id", id)
	if id == "" {
		uc.logger.WarnContext(ctx, "Invalid meeting ID for deletion", "id", id)
		return nil, domain.ErrInvalidID
	}

	meeting, err := uc.meetingRepo.GetByID(ctx, callerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "Meeting not found for deletion", "callerID", callerID, "id", id)
			return nil, domain.ErrMeetingNotFound
		}
		uc.logger.ErrorContext(ctx, "Error fetching meeting for deletion", "id", id, "error", err)
		return nil, fmt.Errorf("error fetching meeting: %w", err)
	}

	if err := uc.meetingRepo.Delete(ctx, callerID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "Meeting not found for deletion", "callerID", callerID, "id", id)
			return nil, domain.ErrMeetingNotFound
		}
		uc.logger.ErrorContext(ctx, "Error deleting meeting", "id", id, "error", err)
		return nil, fmt.Errorf("error deleting meeting: %w", err)
	}

	uc.publishEvent(ctx, "meeting.deleted", meeting)
	uc.logger.InfoContext(ctx, "Meeting deleted successfully in usecase", "id", id)
	return meeting, nil
}

// publishEvent emits a lifecycle event without blocking the request flow
// Publish failures are logged and never surfaced to the caller
func (uc *meetingUseCase) publishEvent(ctx context.Context, event string, meeting *model.Meeting) {
	if uc.producer == nil {
		return
	}

	payload, err := json.Marshal(meetingEvent{
		Event:     event,
		MeetingID: meeting.ID,
		UserID:    meeting.UserID,
		AgentID:   meeting.AgentID,
		Status:    string(meeting.Status),
		At:        time.Now().UTC(),
	})
	if err != nil {
		uc.logger.ErrorContext(ctx, "Failed to marshal meeting event", "event", event, "meetingID", meeting.ID, "error", err)
		return
	}

	uc.producer.ProduceAsync(ctx, uc.eventTopic, payload, func(err error) {
		uc.logger.Error("Failed to publish meeting event", "event", event, "meetingID", meeting.ID, "error", err)
	})
}
