package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"likedvault/internal/models"
)

// GoogleProfile is what the OAuth callback learns about a user.
type GoogleProfile struct {
	GoogleID    string
	DisplayName string
	Email       string
	PhotoURL    string
}

// UserStore persists users and their Google OAuth token pairs.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// UpsertFromGoogle creates the user on first sign-in and refreshes profile
// and tokens on every later one. Google omits the refresh token on repeat
// consent, so an empty incoming refresh token keeps the stored one.
func (s *UserStore) UpsertFromGoogle(profile GoogleProfile, accessToken, refreshToken string, expiry time.Time) (*models.User, bool, error) {
	var user models.User
	err := s.db.Where("google_id = ?", profile.GoogleID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:           uuid.New(),
			GoogleID:     profile.GoogleID,
			DisplayName:  profile.DisplayName,
			Email:        profile.Email,
			PhotoURL:     profile.PhotoURL,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenExpiry:  expiry,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, false, fmt.Errorf("create user: %w", err)
		}
		return &user, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup user: %w", err)
	}

	updates := map[string]interface{}{
		"display_name": profile.DisplayName,
		"email":        profile.Email,
		"photo_url":    profile.PhotoURL,
		"access_token": accessToken,
		"token_expiry": expiry,
	}
	if refreshToken != "" {
		updates["refresh_token"] = refreshToken
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, false, fmt.Errorf("update user: %w", err)
	}
	return &user, false, nil
}

// SaveOAuthToken persists a rotated Google token pair after an on-demand
// refresh.
func (s *UserStore) SaveOAuthToken(user *models.User, accessToken, refreshToken string, expiry time.Time) error {
	updates := map[string]interface{}{
		"access_token": accessToken,
		"token_expiry": expiry,
	}
	if refreshToken != "" {
		updates["refresh_token"] = refreshToken
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return fmt.Errorf("save oauth token: %w", err)
	}
	user.AccessToken = accessToken
	if refreshToken != "" {
		user.RefreshToken = refreshToken
	}
	user.TokenExpiry = expiry
	return nil
}
