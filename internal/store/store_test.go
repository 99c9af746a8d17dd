package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"likedvault/internal/models"
	"likedvault/internal/youtube"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SessionToken{},
		&models.LikedVideo{},
		&models.Playlist{},
		&models.PlaylistVideo{},
		&models.UserSettings{},
	))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:          uuid.New(),
		GoogleID:    "google-" + uuid.NewString(),
		DisplayName: "Test User",
		Email:       "test@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// testRecord builds an origin record with sensible defaults; tests override
// what they care about.
func testRecord(videoID string, mutate ...func(*youtube.Record)) youtube.Record {
	rec := youtube.Record{
		VideoID:      videoID,
		Title:        "Video " + videoID,
		Description:  "description",
		ChannelID:    "UC-default",
		ChannelTitle: "Default Channel",
		PublishedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ThumbnailURL: "https://i.ytimg.com/vi/" + videoID + "/mqdefault.jpg",
		Duration:     "PT5M",
		ViewCount:    "1000",
		LikeCount:    "100",
	}
	rec.Metadata.Tags = []string{}
	rec.Metadata.PrivacyStatus = "public"
	for _, m := range mutate {
		m(&rec)
	}
	return rec
}
