package dto

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type SessionUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Photo       string `json:"photo"`
}

type SessionResponse struct {
	IsLoggedIn bool         `json:"isLoggedIn"`
	User       *SessionUser `json:"user,omitempty"`
}
