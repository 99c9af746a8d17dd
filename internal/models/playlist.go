package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Playlist is a user-defined grouping of cached liked videos.
type Playlist struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Playlist) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PlaylistVideo orders one liked video inside one playlist. Position is
// caller-assigned; adding the same video again moves it instead of
// duplicating the row.
type PlaylistVideo struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PlaylistID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_playlist_videos_entry" json:"playlist_id"`
	LikedVideoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_playlist_videos_entry" json:"liked_video_id"`
	Position     int       `gorm:"not null" json:"position"`
	CreatedAt    time.Time `json:"created_at"`
}

func (pv *PlaylistVideo) BeforeCreate(_ *gorm.DB) error {
	if pv.ID == uuid.Nil {
		pv.ID = uuid.New()
	}
	return nil
}
