package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"likedvault/internal/models"
	"likedvault/internal/store"
)

// ErrAuthExpired means the Google refresh token no longer works; the user
// has to go through the consent flow again.
var ErrAuthExpired = errors.New("auth: re-authentication required")

// TokenProvider supplies a usable YouTube bearer token for a user,
// refreshing it transparently when expired.
type TokenProvider interface {
	ValidToken(ctx context.Context, user *models.User) (string, error)
	Refresh(ctx context.Context, user *models.User) (string, error)
}

// Tokens are treated as expired slightly early so a request started now
// does not race the real expiry.
const expirySlack = 30 * time.Second

// GoogleTokenProvider refreshes access tokens through the stored Google
// refresh token and persists rotated pairs.
type GoogleTokenProvider struct {
	conf  *oauth2.Config
	users *store.UserStore
}

func NewGoogleTokenProvider(conf *oauth2.Config, users *store.UserStore) *GoogleTokenProvider {
	return &GoogleTokenProvider{conf: conf, users: users}
}

func (p *GoogleTokenProvider) ValidToken(ctx context.Context, user *models.User) (string, error) {
	if user.AccessToken != "" && time.Now().Add(expirySlack).Before(user.TokenExpiry) {
		return user.AccessToken, nil
	}
	return p.Refresh(ctx, user)
}

func (p *GoogleTokenProvider) Refresh(ctx context.Context, user *models.User) (string, error) {
	if user.RefreshToken == "" {
		return "", ErrAuthExpired
	}

	src := p.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: user.RefreshToken})
	token, err := src.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthExpired, err)
	}

	if err := p.users.SaveOAuthToken(user, token.AccessToken, token.RefreshToken, token.Expiry); err != nil {
		return "", err
	}
	return token.AccessToken, nil
}
