package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"likedvault/internal/models"
	"likedvault/internal/youtube"
)

func TestUpsertInsertsThenUpdates(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	store := NewVideoStore(db)

	rec := testRecord("vid-1")
	first, err := store.Upsert(user.ID, rec)
	require.NoError(t, err)
	assert.Equal(t, "Video vid-1", first.Title)
	assert.Equal(t, int64(300), first.DurationSeconds)
	assert.Equal(t, int64(1000), first.ViewCountNum)

	// Re-sync with changed stats: same row, counts move, CreatedAt stays.
	rec.Title = "Renamed"
	rec.ViewCount = "2500"
	second, err := store.Upsert(user.ID, rec)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err := store.GetByID(first.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, "2500", stored.ViewCount)
	assert.Equal(t, int64(2500), stored.ViewCountNum)
	assert.WithinDuration(t, first.CreatedAt, stored.CreatedAt, time.Second)

	total, err := store.Count(user.ID, Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestUpsertIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	store := NewVideoStore(db)

	rec := testRecord("vid-1")
	_, err := store.Upsert(user.ID, rec)
	require.NoError(t, err)
	_, err = store.Upsert(user.ID, rec)
	require.NoError(t, err)

	total, err := store.Count(user.ID, Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestUpsertScopedPerUser(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db)
	bob := newTestUser(t, db)
	store := NewVideoStore(db)

	rec := testRecord("shared-vid")
	_, err := store.Upsert(alice.ID, rec)
	require.NoError(t, err)
	_, err = store.Upsert(bob.ID, rec)
	require.NoError(t, err)

	aliceTotal, err := store.Count(alice.ID, Filter{})
	require.NoError(t, err)
	bobTotal, err := store.Count(bob.ID, Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), aliceTotal)
	assert.Equal(t, int64(1), bobTotal)
}

func TestQueryPaginationIsExact(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	store := NewVideoStore(db)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		rec := testRecord(fmt.Sprintf("vid-%02d", i), func(r *youtube.Record) {
			r.PublishedAt = base.Add(time.Duration(i) * time.Hour)
		})
		_, err := store.Upsert(user.ID, rec)
		require.NoError(t, err)
	}

	// Walk the collection in pages of 10 and make sure the union is exact:
	// every row once, no duplicates, no gaps.
	seen := map[string]bool{}
	for offset := 0; offset < 25; offset += 10 {
		page, err := store.Query(user.ID, Filter{}, 10, offset)
		require.NoError(t, err)
		for _, v := range page {
			assert.False(t, seen[v.VideoID], "duplicate %s across pages", v.VideoID)
			seen[v.VideoID] = true
		}
	}
	assert.Len(t, seen, 25)
}

func TestQueryDefaultSortNewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	store := NewVideoStore(db)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := testRecord(fmt.Sprintf("vid-%d", i), func(r *youtube.Record) {
			r.PublishedAt = base.Add(time.Duration(i) * time.Hour)
		})
		_, err := store.Upsert(user.ID, rec)
		require.NoError(t, err)
	}

	page, err := store.Query(user.ID, Filter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, page, 5)
	for i := 1; i < len(page); i++ {
		assert.False(t, page[i].PublishedAt.After(page[i-1].PublishedAt))
	}

	oldest, err := store.Query(user.ID, Filter{Sort: SortPublishedAtOldest}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "vid-0", oldest[0].VideoID)
}

func TestQueryViewCountSortTreatsMissingAsZero(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	store := NewVideoStore(db)

	_, err := store.Upsert(user.ID, testRecord("popular", func(r *youtube.Record) { r.ViewCount = "9000" }))
	require.NoError(t, err)
	_, err = store.Upsert(user.ID, testRecord("hidden-counts", func(r *youtube.Record) { r.ViewCount = "" }))
	require.NoError(t, err)
	_, err = store.Upsert(user.ID, testRecord("modest", func(r *youtube.Record) { r.ViewCount = "42" }))
	require.NoError(t, err)

	page, err := store.Query(user.ID, Filter{Sort: SortViewCount}, 10, 0)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "popular", page[0].VideoID)
	assert.Equal(t, "modest", page[1].VideoID)
	assert.Equal(t, "hidden-counts", page[2].VideoID)
}

func TestQueryDurationBuckets(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	store := NewVideoStore(db)

	durations := map[string]string{
		"clip":       "PT3M59S", // 239s, short
		"boundary4":  "PT4M",    // 240s, medium
		"episode":    "PT19M59S",
		"boundary20": "PT20M", // 1200s, long
		"movie":      "PT2H",
	}
	for id, iso := range durations {
		_, err := store.Upsert(user.ID, testRecord(id, func(r *youtube.Record) { r.Duration = iso }))
		require.NoError(t, err)
	}

	short, err := store.Query(user.ID, Filter{Duration: "short"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, short, 1)
	assert.Equal(t, "clip", short[0].VideoID)

	medium, err := store.Query(user.ID, Filter{Duration: "medium"}, 10, 0)
	require.NoError(t, err)
	mediumIDs := videoIDs(medium)
	assert.ElementsMatch(t, []string{"boundary4", "episode"}, mediumIDs)

	long, err := store.Query(user.ID, Filter{Duration: "long"}, 10, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"boundary20", "movie"}, videoIDs(long))
}

func TestQueryDateWindow(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	store := NewVideoStore(db)

	now := time.Now().UTC()
	_, err := store.Upsert(user.ID, testRecord("fresh", func(r *youtube.Record) { r.PublishedAt = now.Add(-2 * time.Hour) }))
	require.NoError(t, err)
	_, err = store.Upsert(user.ID, testRecord("last-month", func(r *youtube.Record) { r.PublishedAt = now.AddDate(0, 0, -20) }))
	require.NoError(t, err)
	_, err = store.Upsert(user.ID, testRecord("ancient", func(r *youtube.Record) { r.PublishedAt = now.AddDate(-2, 0, 0) }))
	require.NoError(t, err)

	day, err := store.Query(user.ID, Filter{Date: "day"}, 10, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fresh"}, videoIDs(day))

	month, err := store.Query(user.ID, Filter{Date: "month"}, 10, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fresh", "last-month"}, videoIDs(month))

	year, err := store.Query(user.ID, Filter{Date: "year"}, 10, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fresh", "last-month"}, videoIDs(year))
}

func TestQueryCombinedFilters(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	store := NewVideoStore(db)

	_, err := store.Upsert(user.ID, testRecord("match", func(r *youtube.Record) {
		r.ChannelID = "UC-go"
		r.Title = "Advanced Go Concurrency"
		r.Duration = "PT30M"
	}))
	require.NoError(t, err)
	_, err = store.Upsert(user.ID, testRecord("wrong-channel", func(r *youtube.Record) {
		r.ChannelID = "UC-other"
		r.Title = "Advanced Go Concurrency"
		r.Duration = "PT30M"
	}))
	require.NoError(t, err)
	_, err = store.Upsert(user.ID, testRecord("wrong-duration", func(r *youtube.Record) {
		r.ChannelID = "UC-go"
		r.Title = "Go in 100 seconds"
		r.Duration = "PT100S"
	}))
	require.NoError(t, err)

	page, err := store.Query(user.ID, Filter{ChannelID: "UC-go", Search: "go", Duration: "long"}, 10, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"match"}, videoIDs(page))
}

func TestQuerySearchIsCaseInsensitiveTitleOnly(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	store := NewVideoStore(db)

	_, err := store.Upsert(user.ID, testRecord("title-hit", func(r *youtube.Record) {
		r.Title = "Understanding RUST lifetimes"
		r.Description = "nothing relevant"
	}))
	require.NoError(t, err)
	_, err = store.Upsert(user.ID, testRecord("desc-only", func(r *youtube.Record) {
		r.Title = "Cooking pasta"
		r.Description = "rust removal tips"
	}))
	require.NoError(t, err)

	page, err := store.Query(user.ID, Filter{Search: "rust"}, 10, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"title-hit"}, videoIDs(page))
}

func TestChannelsOrderedByCount(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	store := NewVideoStore(db)

	for i := 0; i < 3; i++ {
		_, err := store.Upsert(user.ID, testRecord(fmt.Sprintf("big-%d", i), func(r *youtube.Record) {
			r.ChannelID = "UC-big"
			r.ChannelTitle = "Big Channel"
		}))
		require.NoError(t, err)
	}
	_, err := store.Upsert(user.ID, testRecord("small-0", func(r *youtube.Record) {
		r.ChannelID = "UC-small"
		r.ChannelTitle = "Small Channel"
	}))
	require.NoError(t, err)

	channels, err := store.Channels(user.ID)
	require.NoError(t, err)
	require.Len(t, channels, 2)
	assert.Equal(t, "UC-big", channels[0].ChannelID)
	assert.Equal(t, int64(3), channels[0].VideoCount)
	assert.Equal(t, "UC-small", channels[1].ChannelID)
	assert.Equal(t, int64(1), channels[1].VideoCount)
}

func videoIDs(videos []models.LikedVideo) []string {
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.VideoID)
	}
	return ids
}
