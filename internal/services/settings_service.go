package services

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"likedvault/internal/dto"
	"likedvault/internal/models"
	"likedvault/internal/store"
)

// SettingsService reads and updates per-user display preferences.
type SettingsService struct {
	settings *store.SettingsStore
}

func NewSettingsService(settings *store.SettingsStore) *SettingsService {
	return &SettingsService{settings: settings}
}

func (s *SettingsService) Get(userID uuid.UUID) (*models.UserSettings, error) {
	return s.settings.GetOrCreate(userID)
}

func (s *SettingsService) Update(userID uuid.UUID, req *dto.UpdateSettingsRequest) (*models.UserSettings, error) {
	upd := store.SettingsUpdate{
		DefaultView:   req.DefaultView,
		VideosPerPage: req.VideosPerPage,
		Theme:         req.Theme,
	}
	if len(req.Preferences) > 0 {
		upd.Preferences = datatypes.JSON(req.Preferences)
	}
	return s.settings.Update(userID, upd)
}
