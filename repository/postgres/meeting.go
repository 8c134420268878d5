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

// meetingListScope builds the predicate shared by the page query and the
// count query: the mandatory owner equality plus any filter clause that
// carries a value. Both queries also share the inner join against agents,
// matching the read shape that exposes the agent on every listed meeting.
func meetingListScope(ownerID string, filter domain.MeetingFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.InnerJoins("Agent").Where("meetings.user_id = ?", ownerID)
		if filter.Search != "" {
			db = db.Where("meetings.name ILIKE ?", "%"+filter.Search+"%")
		}
		if filter.Status != "" {
			db = db.Where("meetings.status = ?", filter.Status)
		}
		if filter.AgentID != "" {
			db = db.Where("meetings.agent_id = ?", filter.AgentID)
		}
		return db
	}
}

// meetingRepository implements the Meeting repository interface using PostgreSQL
type meetingRepository struct {
	db     *gorm.DB
	logger logger.LoggerInterface
}

// NewMeetingRepository creates a new instance of meetingRepository
func NewMeetingRepository(db *gorm.DB, logger logger.LoggerInterface) repository.Meeting {
	return &meetingRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new meeting to the database
func (r *meetingRepository) Create(ctx context.Context, meeting *model.Meeting) error {
	r.logger.InfoContext(ctx, "Creating meeting", "owner", meeting.UserID, "agent_id", meeting.AgentID, "name", meeting.Name)

	if err := r.db.WithContext(ctx).Omit("Agent").Create(meeting).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to create meeting", "owner", meeting.UserID, "error", err)
		return fmt.Errorf("failed to create meeting: %w", err)
	}

	r.logger.InfoContext(ctx, "Meeting created successfully", "id", meeting.ID, "owner", meeting.UserID)
	return nil
}

// GetByID retrieves the meeting matching both id and owner with its agent
// A missing row and a foreign-owned row both come back as domain.ErrNotFound
func (r *meetingRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Meeting, error) {
	var meeting model.Meeting
	err := r.db.WithContext(ctx).
		InnerJoins("Agent").
		Where("meetings.id = ? AND meetings.user_id = ?", id, ownerID).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.WarnContext(ctx, "Meeting not found", "id", id, "owner", ownerID)
			return nil, domain.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get meeting by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	return &meeting, nil
}

// List retrieves one page of the owner's meetings plus the total row count
// Exactly two statements run, both built from the same meetingListScope
func (r *meetingRepository) List(ctx context.Context, ownerID string, filter domain.MeetingFilter, page domain.PageRequest) ([]*model.Meeting, int, error) {
	r.logger.InfoContext(ctx, "Listing meetings", "owner", ownerID, "page", page.Page, "page_size", page.PageSize)

	var meetings []*model.Meeting
	err := r.db.WithContext(ctx).
		Model(&model.Meeting{}).
		Scopes(meetingListScope(ownerID, filter)).
		Order("meetings.created_at DESC, meetings.id DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&meetings).Error
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list meetings", "owner", ownerID, "error", err)
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}

	var total int64
	err = r.db.WithContext(ctx).
		Model(&model.Meeting{}).
		Scopes(meetingListScope(ownerID, filter)).
		Count(&total).Error
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count meetings", "owner", ownerID, "error", err)
		return nil, 0, fmt.Errorf("failed to count meetings: %w", err)
	}

	r.logger.InfoContext(ctx, "Meetings listed successfully", "owner", ownerID, "count", len(meetings), "total", total)
	return meetings, int(total), nil
}

// Update merges the meeting's mutable fields into the row matching both id
// and owner. Zero rows affected means the row is missing or foreign-owned.
func (r *meetingRepository) Update(ctx context.Context, meeting *model.Meeting) error {
	r.logger.InfoContext(ctx, "Updating meeting", "id", meeting.ID, "owner", meeting.UserID)

	res := r.db.WithContext(ctx).
		Model(&model.Meeting{}).
		Where("id = ? AND user_id = ?", meeting.ID, meeting.UserID).
		Updates(map[string]any{
			"name":       meeting.Name,
			"agent_id":   meeting.AgentID,
			"status":     meeting.Status,
			"started_at": meeting.StartedAt,
			"ended_at":   meeting.EndedAt,
		})
	if res.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to update meeting", "id", meeting.ID, "error", res.Error)
		return fmt.Errorf("failed to update meeting: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		r.logger.WarnContext(ctx, "Meeting not found for update", "id", meeting.ID, "owner", meeting.UserID)
		return domain.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Meeting updated successfully", "id", meeting.ID)
	return nil
}

// Delete removes the row matching both id and owner
func (r *meetingRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.logger.InfoContext(ctx, "Deleting meeting", "id", id, "owner", ownerID)

	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Meeting{})
	if res.Error != nil {
		r.logger.ErrorContext(ctx, "Failed to delete meeting", "id", id, "error", res.Error)
		return fmt.Errorf("failed to delete meeting: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		r.logger.WarnContext(ctx, "Meeting not found for deletion", "id", id, "owner", ownerID)
		return domain.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Meeting deleted successfully", "id", id)
	return nil
}
