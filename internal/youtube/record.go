package youtube

import (
	"strconv"
	"time"

	"google.golang.org/api/youtube/v3"
)

// Record is the single normalized shape for a video coming off the wire.
// Everything downstream (store, query layer, export) consumes this; nothing
// else ever looks at raw API items.
type Record struct {
	VideoID      string
	Title        string
	Description  string
	ChannelID    string
	ChannelTitle string
	PublishedAt  time.Time
	ThumbnailURL string
	Duration     string
	ViewCount    string
	LikeCount    string
	Metadata     RecordMetadata
}

// RecordMetadata carries the freeform origin attributes kept as JSONB.
type RecordMetadata struct {
	Tags            []string `json:"tags"`
	CategoryID      string   `json:"categoryId,omitempty"`
	DefaultLanguage string   `json:"defaultLanguage,omitempty"`
	PrivacyStatus   string   `json:"privacyStatus"`
}

func newRecord(v *youtube.Video) Record {
	rec := Record{
		VideoID:   v.Id,
		ViewCount: "0",
		LikeCount: "0",
	}
	rec.Metadata.Tags = []string{}
	rec.Metadata.PrivacyStatus = "public"

	if sn := v.Snippet; sn != nil {
		rec.Title = sn.Title
		rec.Description = sn.Description
		rec.ChannelID = sn.ChannelId
		rec.ChannelTitle = sn.ChannelTitle
		rec.ThumbnailURL = thumbnailURL(sn.Thumbnails)
		if t, err := time.Parse(time.RFC3339, sn.PublishedAt); err == nil {
			rec.PublishedAt = t
		}
		if len(sn.Tags) > 0 {
			rec.Metadata.Tags = sn.Tags
		}
		rec.Metadata.CategoryID = sn.CategoryId
		rec.Metadata.DefaultLanguage = sn.DefaultLanguage
	}
	if cd := v.ContentDetails; cd != nil {
		rec.Duration = cd.Duration
	}
	if st := v.Statistics; st != nil {
		rec.ViewCount = strconv.FormatUint(st.ViewCount, 10)
		rec.LikeCount = strconv.FormatUint(st.LikeCount, 10)
	}
	if v.Status != nil && v.Status.PrivacyStatus != "" {
		rec.Metadata.PrivacyStatus = v.Status.PrivacyStatus
	}
	return rec
}

// Medium thumbnail first, default as fallback, matching what the dashboard
// renders.
func thumbnailURL(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.Medium != nil && t.Medium.Url != "" {
		return t.Medium.Url
	}
	if t.Default != nil {
		return t.Default.Url
	}
	return ""
}
