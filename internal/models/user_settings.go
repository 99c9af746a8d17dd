package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserSettings holds per-user display preferences. A record is created
// lazily with defaults the first time it is read and missing.
type UserSettings struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	DefaultView   string         `gorm:"size:50;default:'grid'" json:"default_view"`
	VideosPerPage int            `gorm:"default:50" json:"videos_per_page"`
	Theme         string         `gorm:"size:50;default:'light'" json:"theme"`
	Preferences   datatypes.JSON `gorm:"type:jsonb" json:"preferences"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (s *UserSettings) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
