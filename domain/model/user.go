// Package model contains data models for the application
package model

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// User represents an authenticated account in the system
// Every agent and meeting row is owned by exactly one user
type User struct {
	// ID is the unique identifier for the user
	ID string `gorm:"type:char(26);primaryKey"`
	// Name is the user's display name
	Name string `gorm:"not null"`
	// Email is the user's email address which must be unique
	Email string `gorm:"uniqueIndex;not null"`
	// Password is the bcrypt hash of the user's password
	Password string `gorm:"not null"`
	// CreatedAt is the timestamp when the user was created
	CreatedAt time.Time `gorm:"autoCreateTime"`
	// UpdatedAt is the timestamp when the user was last updated
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.ID = ulid.Make().String()
	return nil
}
