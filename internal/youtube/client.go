package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var (
	// ErrUnauthorized means the bearer token was rejected by the origin.
	ErrUnauthorized = errors.New("youtube: unauthorized")
)

// Page is one ≤50-record slice of a user's liked-videos list. NextCursor is
// the origin's opaque continuation token, empty on the last page.
type Page struct {
	Records    []Record
	NextCursor string
}

// Lister is the origin-client contract consumed by the sync engine.
type Lister interface {
	ListLiked(ctx context.Context, accessToken, cursor string) (*Page, error)
}

const (
	pageSize       = 50
	requestTimeout = 30 * time.Second
)

// Client lists a user's liked videos through YouTube Data API v3.
type Client struct{}

func NewClient() *Client {
	return &Client{}
}

// ListLiked fetches one page of liked videos (snippet, contentDetails,
// statistics projection, myRating=like). Token rejection maps to
// ErrUnauthorized; every other failure is returned as-is and treated as an
// origin outage by the caller.
func (c *Client) ListLiked(ctx context.Context, accessToken, cursor string) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := youtube.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	call := svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		MyRating("like").
		MaxResults(pageSize)
	if cursor != "" {
		call = call.PageToken(cursor)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, apiErr.Message)
		}
		return nil, fmt.Errorf("list liked videos: %w", err)
	}

	page := &Page{
		Records:    make([]Record, 0, len(resp.Items)),
		NextCursor: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		page.Records = append(page.Records, newRecord(item))
	}
	return page, nil
}
