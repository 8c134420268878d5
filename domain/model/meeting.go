package model

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// MeetingStatus is the lifecycle state of a meeting
// Transitions happen out-of-band by the call-processing collaborator;
// this layer only stores and filters the value
type MeetingStatus string

const (
	MeetingStatusUpcoming   MeetingStatus = "upcoming"
	MeetingStatusActive     MeetingStatus = "active"
	MeetingStatusCompleted  MeetingStatus = "completed"
	MeetingStatusProcessing MeetingStatus = "processing"
	MeetingStatusCancelled  MeetingStatus = "cancelled"
)

// MeetingStatuses lists every valid status value
func MeetingStatuses() []MeetingStatus {
	return []MeetingStatus{
		MeetingStatusUpcoming,
		MeetingStatusActive,
		MeetingStatusCompleted,
		MeetingStatusProcessing,
		MeetingStatusCancelled,
	}
}

// IsValid reports whether s is one of the known statuses
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusUpcoming, MeetingStatusActive, MeetingStatusCompleted,
		MeetingStatusProcessing, MeetingStatusCancelled:
		return true
	}
	return false
}

// Meeting is an owned, scheduled record referencing exactly one agent
type Meeting struct {
	ID string `gorm:"type:char(26);primaryKey"`
	// UserID references the owning user and is immutable after creation
	UserID string `gorm:"type:char(26);not null;index"`
	// AgentID references the agent running this meeting
	AgentID   string        `gorm:"type:char(26);not null;index"`
	Agent     Agent         `gorm:"foreignKey:AgentID;references:ID"`
	Name      string        `gorm:"type:varchar(255);not null"`
	Status    MeetingStatus `gorm:"type:varchar(20);not null;default:upcoming;check:status IN ('upcoming','active','completed','processing','cancelled')"`
	StartedAt *time.Time
	EndedAt   *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	m.ID = ulid.Make().String()
	return nil
}

// Duration returns the elapsed seconds between StartedAt and EndedAt,
// or nil when either timestamp is missing
func (m *Meeting) Duration() *float64 {
	if m.StartedAt == nil || m.EndedAt == nil {
		return nil
	}
	seconds := m.EndedAt.Sub(*m.StartedAt).Seconds()
	return &seconds
}
