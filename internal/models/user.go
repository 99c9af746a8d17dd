package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is created on the first successful Google sign-in and refreshed on
// every subsequent login. The Google OAuth token pair lives here so the sync
// engine can refresh access on demand.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GoogleID     string         `gorm:"size:255;not null;uniqueIndex" json:"-"`
	DisplayName  string         `gorm:"size:255;not null" json:"display_name"`
	Email        string         `gorm:"size:255;not null;index" json:"email"`
	PhotoURL     string         `gorm:"size:512" json:"photo_url"`
	AccessToken  string         `gorm:"type:text" json:"-"`
	RefreshToken string         `gorm:"type:text" json:"-"`
	TokenExpiry  time.Time      `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
