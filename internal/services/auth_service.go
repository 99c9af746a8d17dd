package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"likedvault/internal/auth"
	"likedvault/internal/config"
	"likedvault/internal/models"
	"likedvault/internal/store"
)

var (
	ErrInvalidToken = errors.New("invalid or expired refresh token")
	ErrUserNotFound = errors.New("user not found")
)

// AuthService completes the Google sign-in and manages dashboard/extension
// sessions (JWT access tokens plus rotating opaque refresh tokens).
type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	oauth    *oauth2.Config
	users    *store.UserStore
	settings *store.SettingsStore
}

func NewAuthService(db *gorm.DB, cfg *config.Config, oauthConf *oauth2.Config, users *store.UserStore, settings *store.SettingsStore) *AuthService {
	return &AuthService{
		db:       db,
		cfg:      cfg,
		oauth:    oauthConf,
		users:    users,
		settings: settings,
	}
}

// CompleteGoogleLogin exchanges the authorization code, upserts the user and
// returns a fresh session token pair. First-time users get their default
// settings record here.
func (s *AuthService) CompleteGoogleLogin(ctx context.Context, code string) (*models.User, *TokenPair, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	profile, err := auth.FetchProfile(ctx, s.oauth, token)
	if err != nil {
		return nil, nil, err
	}

	user, created, err := s.users.UpsertFromGoogle(*profile, token.AccessToken, token.RefreshToken, token.Expiry)
	if err != nil {
		return nil, nil, err
	}
	if created {
		if _, err := s.settings.GetOrCreate(user.ID); err != nil {
			return nil, nil, err
		}
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// GetUser loads the session user by id.
func (s *AuthService) GetUser(userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Refresh rotates a session refresh token: the presented token is revoked
// and a new pair is issued.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	tokenHash := hashToken(refreshToken)

	var stored models.SessionToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	user, err := s.GetUser(stored.UserID)
	if err != nil {
		return nil, err
	}
	return s.generateTokenPair(user)
}

// Logout revokes the presented refresh token.
func (s *AuthService) Logout(refreshToken string) error {
	tokenHash := hashToken(refreshToken)
	return s.db.Model(&models.SessionToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) generateTokenPair(user *models.User) (*TokenPair, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.SessionToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
