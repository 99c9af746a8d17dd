package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"likedvault/internal/models"
	"likedvault/internal/store"
)

var (
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrNotPlaylistOwner = errors.New("playlist belongs to another user")
	ErrVideoNotFound    = errors.New("video not found")
)

// PlaylistService wraps the playlist store with ownership checks.
type PlaylistService struct {
	playlists *store.PlaylistStore
	videos    *store.VideoStore
}

func NewPlaylistService(playlists *store.PlaylistStore, videos *store.VideoStore) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos}
}

func (s *PlaylistService) List(userID uuid.UUID) ([]models.Playlist, error) {
	return s.playlists.ListByUser(userID)
}

// Get returns a playlist and its ordered videos, enforcing ownership.
func (s *PlaylistService) Get(userID, playlistID uuid.UUID) (*models.Playlist, []store.PlaylistEntry, error) {
	playlist, err := s.owned(userID, playlistID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.playlists.Videos(playlistID)
	if err != nil {
		return nil, nil, err
	}
	return playlist, entries, nil
}

func (s *PlaylistService) Create(userID uuid.UUID, name, description string) (*models.Playlist, error) {
	return s.playlists.Create(userID, name, description)
}

// Update changes name/description; nil fields keep their stored value.
func (s *PlaylistService) Update(userID, playlistID uuid.UUID, name, description *string) (*models.Playlist, error) {
	playlist, err := s.owned(userID, playlistID)
	if err != nil {
		return nil, err
	}

	newName := playlist.Name
	if name != nil && *name != "" {
		newName = *name
	}
	newDescription := playlist.Description
	if description != nil {
		newDescription = *description
	}

	if err := s.playlists.Update(playlist, newName, newDescription); err != nil {
		return nil, err
	}
	playlist.Name = newName
	playlist.Description = newDescription
	return playlist, nil
}

func (s *PlaylistService) Delete(userID, playlistID uuid.UUID) error {
	if _, err := s.owned(userID, playlistID); err != nil {
		return err
	}
	return s.playlists.Delete(playlistID)
}

// AddVideo appends (or repositions) one cached video. A nil position means
// the end of the list.
func (s *PlaylistService) AddVideo(userID, playlistID, likedVideoID uuid.UUID, position *int) (*models.PlaylistVideo, error) {
	if _, err := s.owned(userID, playlistID); err != nil {
		return nil, err
	}

	video, err := s.videos.GetByID(likedVideoID)
	if err != nil {
		return nil, err
	}
	if video == nil || video.UserID != userID {
		return nil, ErrVideoNotFound
	}

	pos := 0
	if position != nil {
		pos = *position
	} else {
		count, err := s.playlists.CountVideos(playlistID)
		if err != nil {
			return nil, err
		}
		pos = int(count)
	}

	return s.playlists.AddVideo(playlistID, likedVideoID, pos)
}

func (s *PlaylistService) RemoveVideo(userID, playlistID, likedVideoID uuid.UUID) error {
	if _, err := s.owned(userID, playlistID); err != nil {
		return err
	}
	if err := s.playlists.RemoveVideo(playlistID, likedVideoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	return nil
}

func (s *PlaylistService) owned(userID, playlistID uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.playlists.GetByID(playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, ErrPlaylistNotFound
	}
	if playlist.UserID != userID {
		return nil, ErrNotPlaylistOwner
	}
	return playlist, nil
}
