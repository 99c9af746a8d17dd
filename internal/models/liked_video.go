package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LikedVideo is one liked video cached for one user. (UserID, VideoID) is
// unique: re-syncing the same video updates the row in place.
//
// CreatedAt anchors the moment the like was first recorded locally and is
// never overwritten on re-sync. Every other field is last-writer-wins from
// the YouTube API.
//
// ViewCount and LikeCount keep the origin's stringified-integer convention;
// DurationSeconds, ViewCountNum and LikeCountNum are parsed once at merge
// time so filtering and sorting never re-parse origin formats.
type LikedVideo struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_liked_videos_user_video" json:"user_id"`
	VideoID         string         `gorm:"size:255;not null;uniqueIndex:idx_liked_videos_user_video" json:"video_id"`
	Title           string         `gorm:"size:512;not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	ChannelID       string         `gorm:"size:255;not null;index" json:"channel_id"`
	ChannelTitle    string         `gorm:"size:255;not null" json:"channel_title"`
	PublishedAt     time.Time      `gorm:"index" json:"published_at"`
	ThumbnailURL    string         `gorm:"size:512" json:"thumbnail_url"`
	Duration        string         `gorm:"size:50" json:"duration"`
	DurationSeconds int64          `gorm:"index" json:"duration_seconds"`
	ViewCount       string         `gorm:"size:50" json:"view_count"`
	LikeCount       string         `gorm:"size:50" json:"like_count"`
	ViewCountNum    int64          `gorm:"index" json:"-"`
	LikeCountNum    int64          `json:"-"`
	Metadata        datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (v *LikedVideo) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
