package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"likedvault/internal/dto"
	"likedvault/internal/models"
	"likedvault/internal/store"
	"likedvault/internal/sync"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// VideoService answers liked-video queries from the cache, pulling fresh
// data through the sync engine when asked to or when the cache is empty.
type VideoService struct {
	videos *store.VideoStore
	engine *sync.Engine
}

func NewVideoService(videos *store.VideoStore, engine *sync.Engine) *VideoService {
	return &VideoService{videos: videos, engine: engine}
}

// List returns one offset page of the user's cached liked videos.
//
// With refresh, or when the cache is empty, it first runs a foreground
// first-page sync and dispatches the background continuation walk. A failed
// refresh never hides cached data: the response carries a syncError
// annotation instead. The only true failure is an empty cache that could not
// be refreshed, which surfaces the engine error for the handler to map.
func (s *VideoService) List(ctx context.Context, user *models.User, f store.Filter, page, pageSize int, refresh bool) (*dto.ListVideosResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	offset := (page - 1) * pageSize

	total, err := s.videos.Count(user.ID, f)
	if err != nil {
		return nil, err
	}

	cached, err := s.videos.Count(user.ID, store.Filter{})
	if err != nil {
		return nil, err
	}

	fromCache := true
	syncError := ""

	if refresh || cached == 0 {
		result, syncErr := s.engine.SyncFirstPage(ctx, user)
		switch {
		case syncErr == nil:
			fromCache = false
			if result.HadMore {
				go s.engine.SyncRemaining(user, result.NextCursor)
			}
		case errors.Is(syncErr, sync.ErrAuthExpired):
			syncError = dto.SyncErrorAuthExpired
		case errors.Is(syncErr, sync.ErrOriginUnavailable):
			syncError = dto.SyncErrorOriginUnavailable
		default:
			return nil, syncErr
		}

		if syncError != "" && cached == 0 {
			return nil, syncErr
		}

		total, err = s.videos.Count(user.ID, f)
		if err != nil {
			return nil, err
		}
	}

	items, err := s.videos.Query(user.ID, f, pageSize, offset)
	if err != nil {
		return nil, err
	}

	hasNext := int64(offset+pageSize) < total
	hasPrev := offset-pageSize >= 0

	resp := &dto.ListVideosResponse{
		Items: items,
		PageInfo: dto.PageInfo{
			TotalResults:   total,
			ResultsPerPage: pageSize,
			CurrentOffset:  offset,
		},
		FromCache: fromCache,
		HasNext:   hasNext,
		HasPrev:   hasPrev,
		SyncError: syncError,
	}
	if hasNext {
		tok := strconv.Itoa(offset + pageSize)
		resp.NextPageToken = &tok
	}
	if hasPrev {
		tok := strconv.Itoa(offset - pageSize)
		resp.PrevPageToken = &tok
	}
	return resp, nil
}

// Channels lists the user's distinct channels with per-channel counts for
// the filter dropdown.
func (s *VideoService) Channels(userID uuid.UUID) ([]store.ChannelCount, error) {
	return s.videos.Channels(userID)
}
