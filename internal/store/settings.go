package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"likedvault/internal/models"
)

// SettingsUpdate carries the fields a settings PUT may change. Nil fields
// keep their stored value.
type SettingsUpdate struct {
	DefaultView   *string
	VideosPerPage *int
	Theme         *string
	Preferences   datatypes.JSON
}

// SettingsStore persists per-user display preferences.
type SettingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// GetOrCreate returns the user's settings, creating the default record on
// first read.
func (s *SettingsStore) GetOrCreate(userID uuid.UUID) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.createDefaults(userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get user settings: %w", err)
	}
	return &settings, nil
}

func (s *SettingsStore) createDefaults(userID uuid.UUID) (*models.UserSettings, error) {
	settings := models.UserSettings{
		ID:            uuid.New(),
		UserID:        userID,
		DefaultView:   "grid",
		VideosPerPage: 50,
		Theme:         "light",
		Preferences:   datatypes.JSON([]byte(`{}`)),
	}
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, fmt.Errorf("create user settings: %w", err)
	}
	return &settings, nil
}

// Update applies the provided fields, creating the record first if the user
// never had one.
func (s *SettingsStore) Update(userID uuid.UUID, upd SettingsUpdate) (*models.UserSettings, error) {
	settings, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if upd.DefaultView != nil {
		updates["default_view"] = *upd.DefaultView
	}
	if upd.VideosPerPage != nil {
		updates["videos_per_page"] = *upd.VideosPerPage
	}
	if upd.Theme != nil {
		updates["theme"] = *upd.Theme
	}
	if upd.Preferences != nil {
		updates["preferences"] = upd.Preferences
	}
	if len(updates) == 0 {
		return settings, nil
	}

	if err := s.db.Model(settings).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update user settings: %w", err)
	}
	return settings, nil
}
