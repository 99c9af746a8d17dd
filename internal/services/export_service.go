package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"likedvault/internal/models"
	"likedvault/internal/store"
	"likedvault/internal/youtube"
)

var ErrUnknownFormat = errors.New("unknown export format")

const exportBatchSize = 500

// ExportService renders a user's filtered cache as a downloadable CSV or
// JSON document.
type ExportService struct {
	videos *store.VideoStore
}

func NewExportService(videos *store.VideoStore) *ExportService {
	return &ExportService{videos: videos}
}

// Export returns the document bytes, its content type and a dated filename.
func (s *ExportService) Export(userID uuid.UUID, f store.Filter, format string) ([]byte, string, string, error) {
	videos, err := s.collect(userID, f)
	if err != nil {
		return nil, "", "", err
	}

	stamp := time.Now().Format("2006-01-02")
	switch format {
	case "csv":
		data, err := renderCSV(videos)
		if err != nil {
			return nil, "", "", err
		}
		return data, "text/csv; charset=utf-8", "youtube-liked-videos-" + stamp + ".csv", nil
	case "json":
		data, err := renderJSON(videos)
		if err != nil {
			return nil, "", "", err
		}
		return data, "application/json", "youtube-liked-videos-" + stamp + ".json", nil
	default:
		return nil, "", "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (s *ExportService) collect(userID uuid.UUID, f store.Filter) ([]models.LikedVideo, error) {
	var all []models.LikedVideo
	for offset := 0; ; offset += exportBatchSize {
		batch, err := s.videos.Query(userID, f, exportBatchSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < exportBatchSize {
			return all, nil
		}
	}
}

func renderCSV(videos []models.LikedVideo) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Title", "Channel", "PublishedAt", "ViewCount", "URL"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, v := range videos {
		row := []string{
			v.Title,
			v.ChannelTitle,
			v.PublishedAt.Format("2006-01-02"),
			v.ViewCount,
			youtube.WatchURL(v.VideoID),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

type exportedVideo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PublishedAt  time.Time `json:"publishedAt"`
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Duration     string    `json:"duration"`
	ViewCount    string    `json:"viewCount"`
	LikeCount    string    `json:"likeCount"`
	URL          string    `json:"url"`
	ChannelURL   string    `json:"channelUrl"`
}

func renderJSON(videos []models.LikedVideo) ([]byte, error) {
	out := make([]exportedVideo, 0, len(videos))
	for _, v := range videos {
		out = append(out, exportedVideo{
			ID:           v.VideoID,
			Title:        v.Title,
			Description:  v.Description,
			PublishedAt:  v.PublishedAt,
			ChannelID:    v.ChannelID,
			ChannelTitle: v.ChannelTitle,
			ThumbnailURL: v.ThumbnailURL,
			Duration:     v.Duration,
			ViewCount:    v.ViewCount,
			LikeCount:    v.LikeCount,
			URL:          youtube.WatchURL(v.VideoID),
			ChannelURL:   youtube.ChannelURL(v.ChannelID),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}
