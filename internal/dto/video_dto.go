package dto

import "likedvault/internal/models"

// Sync failure annotations returned alongside still-valid cached payloads.
const (
	SyncErrorAuthExpired       = "auth_expired"
	SyncErrorOriginUnavailable = "origin_unavailable"
)

type PageInfo struct {
	TotalResults   int64 `json:"totalResults"`
	ResultsPerPage int   `json:"resultsPerPage"`
	CurrentOffset  int   `json:"currentOffset"`
}

// ListVideosResponse pages through the local cache. The page tokens are
// stringified offsets into the cache, not YouTube cursors.
type ListVideosResponse struct {
	Items         []models.LikedVideo `json:"items"`
	PageInfo      PageInfo            `json:"pageInfo"`
	FromCache     bool                `json:"fromCache"`
	HasNext       bool                `json:"hasNext"`
	HasPrev       bool                `json:"hasPrev"`
	NextPageToken *string             `json:"nextPageToken"`
	PrevPageToken *string             `json:"prevPageToken"`
	SyncError     string              `json:"syncError,omitempty"`
}
