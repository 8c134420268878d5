package model

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Agent is an owned, named instruction profile usable by meetings
type Agent struct {
	ID string `gorm:"type:char(26);primaryKey"`
	// UserID references the owning user and is immutable after creation
	UserID       string    `gorm:"type:char(26);not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Instructions string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
	// MeetingCount is the number of meetings referencing this agent,
	// computed by a correlated subquery on reads and never stored
	MeetingCount int64 `gorm:"->;-:migration"`
}

func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	a.ID = ulid.Make().String()
	return nil
}
