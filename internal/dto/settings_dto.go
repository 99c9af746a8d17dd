package dto

import "encoding/json"

type UpdateSettingsRequest struct {
	DefaultView   *string         `json:"default_view"`
	VideosPerPage *int            `json:"videos_per_page"`
	Theme         *string         `json:"theme"`
	Preferences   json.RawMessage `json:"preferences"`
}
