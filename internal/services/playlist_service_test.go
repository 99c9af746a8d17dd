package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"likedvault/internal/store"
	"likedvault/internal/youtube"
)

func newPlaylistService(db *gorm.DB) *PlaylistService {
	return NewPlaylistService(store.NewPlaylistStore(db), store.NewVideoStore(db))
}

func TestPlaylistOwnership(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db)
	bob := newTestUser(t, db)
	svc := newPlaylistService(db)

	playlist, err := svc.Create(alice.ID, "Alice mix", "her videos")
	require.NoError(t, err)

	_, _, err = svc.Get(bob.ID, playlist.ID)
	assert.ErrorIs(t, err, ErrNotPlaylistOwner)

	err = svc.Delete(bob.ID, playlist.ID)
	assert.ErrorIs(t, err, ErrNotPlaylistOwner)

	_, _, err = svc.Get(alice.ID, playlist.ID)
	require.NoError(t, err)
}

func TestPlaylistNotFound(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := newPlaylistService(db)

	_, _, err := svc.Get(user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrPlaylistNotFound)
}

func TestPlaylistUpdateKeepsUnsetFields(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := newPlaylistService(db)

	playlist, err := svc.Create(user.ID, "Original", "keep this")
	require.NoError(t, err)

	name := "Renamed"
	updated, err := svc.Update(user.ID, playlist.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "keep this", updated.Description)
}

func TestAddVideoRequiresOwnVideo(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db)
	bob := newTestUser(t, db)
	videos := store.NewVideoStore(db)
	svc := newPlaylistService(db)

	bobsVideo, err := videos.Upsert(bob.ID, youtube.Record{VideoID: "bobs", Title: "Bob's video"})
	require.NoError(t, err)

	playlist, err := svc.Create(alice.ID, "Alice mix", "")
	require.NoError(t, err)

	// A video cached for another user cannot be added.
	_, err = svc.AddVideo(alice.ID, playlist.ID, bobsVideo.ID, nil)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	// Her own video lands at the end by default.
	mine, err := videos.Upsert(alice.ID, youtube.Record{VideoID: "mine", Title: "Mine"})
	require.NoError(t, err)
	entry, err := svc.AddVideo(alice.ID, playlist.ID, mine.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Position)
}

func TestRemoveVideoMissing(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := newPlaylistService(db)

	playlist, err := svc.Create(user.ID, "Mix", "")
	require.NoError(t, err)

	err = svc.RemoveVideo(user.ID, playlist.ID, uuid.New())
	assert.ErrorIs(t, err, ErrVideoNotFound)
}
