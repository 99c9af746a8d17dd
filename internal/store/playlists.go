package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"likedvault/internal/models"
)

// PlaylistEntry is one video row inside a playlist listing, joined with its
// cached video. Entries whose video has been deleted are never returned.
type PlaylistEntry struct {
	EntryID      uuid.UUID `json:"entry_id"`
	Position     int       `json:"position"`
	LikedVideoID uuid.UUID `json:"liked_video_id"`
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ChannelID    string    `json:"channel_id"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_at"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Duration     string    `json:"duration"`
	ViewCount    string    `json:"view_count"`
	LikeCount    string    `json:"like_count"`
}

// PlaylistStore persists user playlists and their ordered video entries.
type PlaylistStore struct {
	db *gorm.DB
}

func NewPlaylistStore(db *gorm.DB) *PlaylistStore {
	return &PlaylistStore{db: db}
}

func (s *PlaylistStore) ListByUser(userID uuid.UUID) ([]models.Playlist, error) {
	var playlists []models.Playlist
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&playlists).Error
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	return playlists, nil
}

func (s *PlaylistStore) GetByID(id uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.First(&playlist, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return &playlist, nil
}

func (s *PlaylistStore) Create(userID uuid.UUID, name, description string) (*models.Playlist, error) {
	playlist := models.Playlist{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
	}
	if err := s.db.Create(&playlist).Error; err != nil {
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	return &playlist, nil
}

func (s *PlaylistStore) Update(playlist *models.Playlist, name, description string) error {
	updates := map[string]interface{}{
		"name":        name,
		"description": description,
	}
	if err := s.db.Model(playlist).Updates(updates).Error; err != nil {
		return fmt.Errorf("update playlist: %w", err)
	}
	return nil
}

// Delete removes a playlist and its entries. The cached videos themselves
// are untouched.
func (s *PlaylistStore) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return fmt.Errorf("delete playlist entries: %w", err)
		}
		if err := tx.Delete(&models.Playlist{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete playlist: %w", err)
		}
		return nil
	})
}

// Videos lists a playlist's entries in position order. The inner join drops
// entries whose video no longer exists.
func (s *PlaylistStore) Videos(playlistID uuid.UUID) ([]PlaylistEntry, error) {
	var entries []PlaylistEntry
	err := s.db.Model(&models.PlaylistVideo{}).
		Select(`playlist_videos.id as entry_id, playlist_videos.position, playlist_videos.liked_video_id,
			liked_videos.video_id, liked_videos.title, liked_videos.description,
			liked_videos.channel_id, liked_videos.channel_title, liked_videos.published_at,
			liked_videos.thumbnail_url, liked_videos.duration, liked_videos.view_count, liked_videos.like_count`).
		Joins("JOIN liked_videos ON liked_videos.id = playlist_videos.liked_video_id").
		Where("playlist_videos.playlist_id = ?", playlistID).
		Order("playlist_videos.position ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list playlist videos: %w", err)
	}
	return entries, nil
}

// CountVideos returns how many entries a playlist has, dangling ones
// included; the caller uses it only for default positioning.
func (s *PlaylistStore) CountVideos(playlistID uuid.UUID) (int64, error) {
	var total int64
	err := s.db.Model(&models.PlaylistVideo{}).Where("playlist_id = ?", playlistID).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("count playlist videos: %w", err)
	}
	return total, nil
}

// AddVideo places a video at the given position. If the video is already in
// the playlist the existing entry is repositioned instead of duplicated.
func (s *PlaylistStore) AddVideo(playlistID, likedVideoID uuid.UUID, position int) (*models.PlaylistVideo, error) {
	var existing models.PlaylistVideo
	err := s.db.Where("playlist_id = ? AND liked_video_id = ?", playlistID, likedVideoID).First(&existing).Error
	if err == nil {
		if err := s.db.Model(&existing).Update("position", position).Error; err != nil {
			return nil, fmt.Errorf("reposition playlist video: %w", err)
		}
		existing.Position = position
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup playlist video: %w", err)
	}

	entry := models.PlaylistVideo{
		ID:           uuid.New(),
		PlaylistID:   playlistID,
		LikedVideoID: likedVideoID,
		Position:     position,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("add playlist video: %w", err)
	}
	return &entry, nil
}

// RemoveVideo deletes the entry linking a liked video to a playlist.
func (s *PlaylistStore) RemoveVideo(playlistID, likedVideoID uuid.UUID) error {
	result := s.db.Delete(&models.PlaylistVideo{}, "playlist_id = ? AND liked_video_id = ?", playlistID, likedVideoID)
	if result.Error != nil {
		return fmt.Errorf("remove playlist video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
