// Package sync keeps the local liked-videos cache in step with YouTube.
//
// The engine owns the page walk, the refresh-and-retry policy on rejected
// tokens, and the one-walk-per-user rule. It never rolls back: whatever
// pages merged before a failure stay merged.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"likedvault/internal/auth"
	"likedvault/internal/models"
	"likedvault/internal/youtube"
)

var (
	// ErrAuthExpired surfaces when a page request was rejected even after
	// one token refresh. The caller prompts re-login; the engine never
	// retries past that.
	ErrAuthExpired = errors.New("sync: authorization expired")

	// ErrOriginUnavailable covers every non-auth origin failure. Callers
	// fall back to whatever is already cached.
	ErrOriginUnavailable = errors.New("sync: origin unavailable")
)

// Fixed engine policy, not tunable per call: the background walk stops after
// maxPages pages and paces requests to one per pageInterval.
const (
	maxPages     = 200
	pageInterval = 100 * time.Millisecond
)

// VideoSink is the slice of the video store the engine writes through.
type VideoSink interface {
	UpsertPage(userID uuid.UUID, records []youtube.Record) error
}

// PageResult is what a foreground first-page sync hands back to the caller.
type PageResult struct {
	Records    []youtube.Record
	NextCursor string
	HadMore    bool
}

// Engine orchestrates pulling liked-video pages from the origin and merging
// them into the store.
type Engine struct {
	origin  youtube.Lister
	tokens  auth.TokenProvider
	sink    VideoSink
	limiter *rate.Limiter

	mu     sync.Mutex
	active map[uuid.UUID]struct{}
}

func NewEngine(origin youtube.Lister, tokens auth.TokenProvider, sink VideoSink) *Engine {
	return &Engine{
		origin:  origin,
		tokens:  tokens,
		sink:    sink,
		limiter: rate.NewLimiter(rate.Every(pageInterval), 1),
		active:  make(map[uuid.UUID]struct{}),
	}
}

// SyncFirstPage fetches and merges exactly one page of the user's liked
// videos. On an authorization failure it refreshes the token once and
// retries once; a second rejection is ErrAuthExpired. Any other origin
// failure is ErrOriginUnavailable and nothing is merged.
func (e *Engine) SyncFirstPage(ctx context.Context, user *models.User) (*PageResult, error) {
	page, err := e.fetchPage(ctx, user, "")
	if err != nil {
		return nil, err
	}

	if err := e.sink.UpsertPage(user.ID, page.Records); err != nil {
		return nil, fmt.Errorf("merge first page: %w", err)
	}

	return &PageResult{
		Records:    page.Records,
		NextCursor: page.NextCursor,
		HadMore:    page.NextCursor != "",
	}, nil
}

// SyncRemaining walks the continuation pages starting at cursor, merging
// each one as it lands. It is meant to run detached from the request that
// triggered it (callers dispatch it with go) and reports nothing back:
// progress is observable only through the store. The walk ends when the
// origin runs out of pages, the page ceiling is hit, or any error occurs.
// Only one walk per user runs at a time; an overlapping trigger is ignored.
func (e *Engine) SyncRemaining(user *models.User, cursor string) {
	if cursor == "" {
		return
	}
	if !e.begin(user.ID) {
		slog.Info("background sync already running, ignoring trigger", "user_id", user.ID.String())
		return
	}
	defer e.end(user.ID)

	ctx := context.Background()
	merged := 0

	for pages := 0; pages < maxPages && cursor != ""; pages++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return
		}

		page, err := e.fetchPage(ctx, user, cursor)
		if err != nil {
			slog.Error("background sync stopped", "user_id", user.ID.String(), "pages", pages, "error", err)
			return
		}
		if err := e.sink.UpsertPage(user.ID, page.Records); err != nil {
			slog.Error("background sync merge failed", "user_id", user.ID.String(), "pages", pages, "error", err)
			return
		}

		merged += len(page.Records)
		cursor = page.NextCursor
	}

	slog.Info("background sync finished", "user_id", user.ID.String(), "videos", merged, "exhausted", cursor == "")
}

// fetchPage performs one origin page request under the refresh-once,
// retry-once policy shared by both sync operations.
func (e *Engine) fetchPage(ctx context.Context, user *models.User, cursor string) (*youtube.Page, error) {
	token, err := e.tokens.ValidToken(ctx, user)
	if err != nil {
		if errors.Is(err, auth.ErrAuthExpired) {
			return nil, fmt.Errorf("%w: %v", ErrAuthExpired, err)
		}
		return nil, err
	}

	page, err := e.origin.ListLiked(ctx, token, cursor)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, youtube.ErrUnauthorized) {
		return nil, fmt.Errorf("%w: %v", ErrOriginUnavailable, err)
	}

	token, err = e.tokens.Refresh(ctx, user)
	if err != nil {
		if errors.Is(err, auth.ErrAuthExpired) {
			return nil, fmt.Errorf("%w: %v", ErrAuthExpired, err)
		}
		return nil, err
	}

	page, err = e.origin.ListLiked(ctx, token, cursor)
	if err == nil {
		return page, nil
	}
	if errors.Is(err, youtube.ErrUnauthorized) {
		return nil, fmt.Errorf("%w: token rejected after refresh", ErrAuthExpired)
	}
	return nil, fmt.Errorf("%w: %v", ErrOriginUnavailable, err)
}

func (e *Engine) begin(userID uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, running := e.active[userID]; running {
		return false
	}
	e.active[userID] = struct{}{}
	return true
}

func (e *Engine) end(userID uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.active, userID)
}
