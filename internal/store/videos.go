package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"likedvault/internal/models"
	"likedvault/internal/youtube"
)

// Sort orders accepted by the query layer. Numeric sorts compare the parsed
// integer columns, so missing or garbage counts order as zero.
const (
	SortPublishedAt       = "publishedAt"
	SortPublishedAtOldest = "publishedAtOldest"
	SortViewCount         = "viewCount"
	SortLikeCount         = "likeCount"
)

// Filter narrows a user's cached videos. Zero values mean no constraint.
type Filter struct {
	ChannelID string
	Search    string // case-insensitive substring on title only
	Date      string // day, week, month, year (trailing window from now)
	Duration  string // short, medium, long
	Sort      string
}

// ChannelCount is one row of the channel metadata listing.
type ChannelCount struct {
	ChannelID    string `json:"channel_id"`
	ChannelTitle string `json:"channel_title"`
	VideoCount   int64  `json:"video_count"`
}

// VideoStore persists cached liked videos keyed by (user, video).
type VideoStore struct {
	db *gorm.DB
}

func NewVideoStore(db *gorm.DB) *VideoStore {
	return &VideoStore{db: db}
}

// Upsert merges one origin record into the cache. A new row gets
// CreatedAt=now; an existing row keeps its CreatedAt and has every other
// field overwritten. Applying the same record twice is a no-op the second
// time.
func (s *VideoStore) Upsert(userID uuid.UUID, rec youtube.Record) (*models.LikedVideo, error) {
	metadata, err := json.Marshal(rec.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal video metadata: %w", err)
	}

	var existing models.LikedVideo
	err = s.db.Where("user_id = ? AND video_id = ?", userID, rec.VideoID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row := models.LikedVideo{
			ID:              uuid.New(),
			UserID:          userID,
			VideoID:         rec.VideoID,
			Title:           rec.Title,
			Description:     rec.Description,
			ChannelID:       rec.ChannelID,
			ChannelTitle:    rec.ChannelTitle,
			PublishedAt:     rec.PublishedAt,
			ThumbnailURL:    rec.ThumbnailURL,
			Duration:        rec.Duration,
			DurationSeconds: youtube.ParseDuration(rec.Duration),
			ViewCount:       rec.ViewCount,
			LikeCount:       rec.LikeCount,
			ViewCountNum:    parseCount(rec.ViewCount),
			LikeCountNum:    parseCount(rec.LikeCount),
			Metadata:        datatypes.JSON(metadata),
		}
		if err := s.db.Create(&row).Error; err != nil {
			return nil, fmt.Errorf("insert liked video: %w", err)
		}
		return &row, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup liked video: %w", err)
	}

	updates := map[string]interface{}{
		"title":            rec.Title,
		"description":      rec.Description,
		"channel_id":       rec.ChannelID,
		"channel_title":    rec.ChannelTitle,
		"published_at":     rec.PublishedAt,
		"thumbnail_url":    rec.ThumbnailURL,
		"duration":         rec.Duration,
		"duration_seconds": youtube.ParseDuration(rec.Duration),
		"view_count":       rec.ViewCount,
		"like_count":       rec.LikeCount,
		"view_count_num":   parseCount(rec.ViewCount),
		"like_count_num":   parseCount(rec.LikeCount),
		"metadata":         datatypes.JSON(metadata),
	}
	if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update liked video: %w", err)
	}
	return &existing, nil
}

// UpsertPage merges a whole origin page. Fails on the first store error;
// rows already merged stay merged.
func (s *VideoStore) UpsertPage(userID uuid.UUID, records []youtube.Record) error {
	for _, rec := range records {
		if _, err := s.Upsert(userID, rec); err != nil {
			return err
		}
	}
	return nil
}

// Query returns one offset page of the user's cached videos under the
// filter, deterministically ordered.
func (s *VideoStore) Query(userID uuid.UUID, f Filter, limit, offset int) ([]models.LikedVideo, error) {
	var videos []models.LikedVideo
	err := s.scope(userID, f).
		Order(orderClause(f.Sort)).
		Limit(limit).
		Offset(offset).
		Find(&videos).Error
	if err != nil {
		return nil, fmt.Errorf("query liked videos: %w", err)
	}
	return videos, nil
}

// Count returns the total number of rows the filter matches.
func (s *VideoStore) Count(userID uuid.UUID, f Filter) (int64, error) {
	var total int64
	if err := s.scope(userID, f).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count liked videos: %w", err)
	}
	return total, nil
}

// GetByID looks up one cached video by primary key.
func (s *VideoStore) GetByID(id uuid.UUID) (*models.LikedVideo, error) {
	var video models.LikedVideo
	err := s.db.First(&video, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get liked video: %w", err)
	}
	return &video, nil
}

// Channels lists the user's distinct channels with per-channel video counts,
// most videos first.
func (s *VideoStore) Channels(userID uuid.UUID) ([]ChannelCount, error) {
	var rows []ChannelCount
	err := s.db.Model(&models.LikedVideo{}).
		Select("channel_id, channel_title, COUNT(*) as video_count").
		Where("user_id = ?", userID).
		Group("channel_id, channel_title").
		Order("video_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	return rows, nil
}

func (s *VideoStore) scope(userID uuid.UUID, f Filter) *gorm.DB {
	q := s.db.Model(&models.LikedVideo{}).Where("user_id = ?", userID)

	if f.ChannelID != "" {
		q = q.Where("channel_id = ?", f.ChannelID)
	}
	if f.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if cutoff, ok := dateCutoff(f.Date, time.Now()); ok {
		q = q.Where("published_at >= ?", cutoff)
	}
	switch f.Duration {
	case "short":
		q = q.Where("duration_seconds < ?", youtube.ShortMaxSeconds)
	case "medium":
		q = q.Where("duration_seconds >= ? AND duration_seconds < ?", youtube.ShortMaxSeconds, youtube.MediumMaxSeconds)
	case "long":
		q = q.Where("duration_seconds >= ?", youtube.MediumMaxSeconds)
	}
	return q
}

// orderClause always appends video_id as tie-break so pages are reproducible
// between reads.
func orderClause(sort string) string {
	switch sort {
	case SortPublishedAtOldest:
		return "published_at ASC, video_id ASC"
	case SortViewCount:
		return "view_count_num DESC, video_id ASC"
	case SortLikeCount:
		return "like_count_num DESC, video_id ASC"
	default:
		return "published_at DESC, video_id ASC"
	}
}

// dateCutoff maps a trailing-window name to its inclusive lower bound,
// evaluated at query time.
func dateCutoff(window string, now time.Time) (time.Time, bool) {
	switch window {
	case "day":
		return now.AddDate(0, 0, -1), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	case "year":
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
