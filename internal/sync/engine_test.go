package sync

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"likedvault/internal/auth"
	"likedvault/internal/models"
	"likedvault/internal/youtube"
)

// fakeOrigin serves pre-built pages keyed by cursor and can be told to
// reject specific tokens.
type fakeOrigin struct {
	mu         gosync.Mutex
	pages      map[string]*youtube.Page
	rejected   map[string]bool
	failCursor string
	calls      int
}

func (f *fakeOrigin) ListLiked(_ context.Context, accessToken, cursor string) (*youtube.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.rejected[accessToken] {
		return nil, youtube.ErrUnauthorized
	}
	if f.failCursor != "" && cursor == f.failCursor {
		return nil, errors.New("origin down")
	}
	page, ok := f.pages[cursor]
	if !ok {
		return &youtube.Page{}, nil
	}
	return page, nil
}

type fakeTokens struct {
	mu          gosync.Mutex
	token       string
	refreshed   string
	refreshErr  error
	refreshHits int
}

func (f *fakeTokens) ValidToken(_ context.Context, _ *models.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeTokens) Refresh(_ context.Context, _ *models.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshHits++
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	f.token = f.refreshed
	return f.refreshed, nil
}

type fakeSink struct {
	mu      gosync.Mutex
	merged  []youtube.Record
	failOn  string
	upserts int
}

func (f *fakeSink) UpsertPage(_ uuid.UUID, records []youtube.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	for _, rec := range records {
		if f.failOn != "" && rec.VideoID == f.failOn {
			return errors.New("store failure")
		}
		f.merged = append(f.merged, rec)
	}
	return nil
}

func (f *fakeSink) mergedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.merged))
	for _, r := range f.merged {
		ids = append(ids, r.VideoID)
	}
	return ids
}

func record(id string) youtube.Record {
	return youtube.Record{VideoID: id, Title: "Video " + id}
}

func pageOf(next string, ids ...string) *youtube.Page {
	page := &youtube.Page{NextCursor: next}
	for _, id := range ids {
		page.Records = append(page.Records, record(id))
	}
	return page
}

func testUser() *models.User {
	return &models.User{ID: uuid.New(), AccessToken: "tok", RefreshToken: "rtok"}
}

func TestSyncFirstPageMergesAndReportsCursor(t *testing.T) {
	origin := &fakeOrigin{pages: map[string]*youtube.Page{
		"": pageOf("cursor-2", "a", "b"),
	}}
	tokens := &fakeTokens{token: "tok"}
	sink := &fakeSink{}
	engine := NewEngine(origin, tokens, sink)

	result, err := engine.SyncFirstPage(context.Background(), testUser())
	require.NoError(t, err)
	assert.Equal(t, "cursor-2", result.NextCursor)
	assert.True(t, result.HadMore)
	assert.Equal(t, []string{"a", "b"}, sink.mergedIDs())
}

func TestSyncFirstPageSinglePageCollection(t *testing.T) {
	origin := &fakeOrigin{pages: map[string]*youtube.Page{
		"": pageOf("", "only"),
	}}
	engine := NewEngine(origin, &fakeTokens{token: "tok"}, &fakeSink{})

	result, err := engine.SyncFirstPage(context.Background(), testUser())
	require.NoError(t, err)
	assert.False(t, result.HadMore)
	assert.Empty(t, result.NextCursor)
}

func TestSyncFirstPageRefreshesOnceAndRetries(t *testing.T) {
	origin := &fakeOrigin{
		pages:    map[string]*youtube.Page{"": pageOf("", "a")},
		rejected: map[string]bool{"stale": true},
	}
	tokens := &fakeTokens{token: "stale", refreshed: "fresh"}
	sink := &fakeSink{}
	engine := NewEngine(origin, tokens, sink)

	_, err := engine.SyncFirstPage(context.Background(), testUser())
	require.NoError(t, err)
	assert.Equal(t, 1, tokens.refreshHits)
	assert.Equal(t, []string{"a"}, sink.mergedIDs())
}

func TestSyncFirstPageAuthExpiredAfterFailedRetry(t *testing.T) {
	origin := &fakeOrigin{
		pages:    map[string]*youtube.Page{"": pageOf("", "a")},
		rejected: map[string]bool{"stale": true, "still-stale": true},
	}
	tokens := &fakeTokens{token: "stale", refreshed: "still-stale"}
	sink := &fakeSink{}
	engine := NewEngine(origin, tokens, sink)

	_, err := engine.SyncFirstPage(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrAuthExpired)
	assert.Equal(t, 1, tokens.refreshHits)
	assert.Empty(t, sink.mergedIDs())
}

func TestSyncFirstPageAuthExpiredWhenRefreshFails(t *testing.T) {
	origin := &fakeOrigin{
		pages:    map[string]*youtube.Page{"": pageOf("", "a")},
		rejected: map[string]bool{"stale": true},
	}
	tokens := &fakeTokens{token: "stale", refreshErr: auth.ErrAuthExpired}
	engine := NewEngine(origin, tokens, &fakeSink{})

	_, err := engine.SyncFirstPage(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrAuthExpired)
}

func TestSyncFirstPageOriginUnavailable(t *testing.T) {
	engine := NewEngine(&failingOrigin{}, &fakeTokens{token: "tok"}, &fakeSink{})

	_, err := engine.SyncFirstPage(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrOriginUnavailable)
}

type failingOrigin struct{}

func (failingOrigin) ListLiked(context.Context, string, string) (*youtube.Page, error) {
	return nil, errors.New("503 backend error")
}

func TestSyncRemainingWalksToExhaustion(t *testing.T) {
	origin := &fakeOrigin{pages: map[string]*youtube.Page{
		"c1": pageOf("c2", "p1a", "p1b"),
		"c2": pageOf("c3", "p2a"),
		"c3": pageOf("", "p3a"),
	}}
	sink := &fakeSink{}
	engine := NewEngine(origin, &fakeTokens{token: "tok"}, sink)

	engine.SyncRemaining(testUser(), "c1")

	assert.Equal(t, []string{"p1a", "p1b", "p2a", "p3a"}, sink.mergedIDs())
}

func TestSyncRemainingEmptyCursorIsNoop(t *testing.T) {
	origin := &fakeOrigin{}
	sink := &fakeSink{}
	engine := NewEngine(origin, &fakeTokens{token: "tok"}, sink)

	engine.SyncRemaining(testUser(), "")
	assert.Zero(t, origin.calls)
	assert.Zero(t, sink.upserts)
}

func TestSyncRemainingStopsSilentlyOnOriginError(t *testing.T) {
	origin := &fakeOrigin{
		pages: map[string]*youtube.Page{
			"c1": pageOf("c2", "p1a"),
		},
		failCursor: "c2",
	}
	sink := &fakeSink{}
	engine := NewEngine(origin, &fakeTokens{token: "tok"}, sink)

	engine.SyncRemaining(testUser(), "c1")

	// The page merged before the failure stays merged.
	assert.Equal(t, []string{"p1a"}, sink.mergedIDs())
}

func TestSyncRemainingStopsAtPageCeiling(t *testing.T) {
	// A cursor chain longer than the ceiling: page i points at page i+1.
	pages := make(map[string]*youtube.Page, maxPages+10)
	for i := 0; i < maxPages+10; i++ {
		pages[fmt.Sprintf("c%d", i)] = pageOf(fmt.Sprintf("c%d", i+1), fmt.Sprintf("v%d", i))
	}
	sink := &fakeSink{}
	engine := NewEngine(&fakeOrigin{pages: pages}, &fakeTokens{token: "tok"}, sink)
	// Pacing would make 200 pages take 20s; collapse it for the test.
	engine.limiter.SetLimit(100000)

	engine.SyncRemaining(testUser(), "c0")

	assert.Len(t, sink.mergedIDs(), maxPages)
}

func TestSyncRemainingOneWalkPerUser(t *testing.T) {
	user := testUser()
	origin := &fakeOrigin{pages: map[string]*youtube.Page{
		"c1": pageOf("c2", "p1"),
		"c2": pageOf("", "p2"),
	}}
	sink := &fakeSink{}
	engine := NewEngine(origin, &fakeTokens{token: "tok"}, sink)

	// Hold the user's slot as a running walk would, then trigger: the
	// overlapping trigger must be ignored outright.
	require.True(t, engine.begin(user.ID))
	engine.SyncRemaining(user, "c1")
	assert.Zero(t, sink.upserts)
	engine.end(user.ID)

	// Slot released: the next trigger runs normally.
	engine.SyncRemaining(user, "c1")
	assert.Equal(t, []string{"p1", "p2"}, sink.mergedIDs())
}

func TestSyncRemainingRunsDetached(t *testing.T) {
	origin := &fakeOrigin{pages: map[string]*youtube.Page{
		"c1": pageOf("", "p1"),
	}}
	sink := &fakeSink{}
	engine := NewEngine(origin, &fakeTokens{token: "tok"}, sink)

	done := make(chan struct{})
	go func() {
		engine.SyncRemaining(testUser(), "c1")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("background walk did not finish")
	}
	assert.Equal(t, []string{"p1"}, sink.mergedIDs())
}
