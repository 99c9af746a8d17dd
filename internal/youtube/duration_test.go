package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		iso  string
		want int64
	}{
		{"PT45S", 45},
		{"PT4M", 240},
		{"PT3M59S", 239},
		{"PT1H2M3S", 3723},
		{"PT20M", 1200},
		{"P1DT2H", 93600},
		{"P2D", 172800},
		{"PT0S", 0},
		{"", 0},
		{"garbage", 0},
		{"PT", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseDuration(tc.iso), "iso=%q", tc.iso)
	}
}

func TestDurationBucketBoundaries(t *testing.T) {
	assert.Equal(t, "short", DurationBucket(0))
	assert.Equal(t, "short", DurationBucket(239))
	// exactly 4 minutes is already medium
	assert.Equal(t, "medium", DurationBucket(240))
	assert.Equal(t, "medium", DurationBucket(1199))
	// exactly 20 minutes is already long
	assert.Equal(t, "long", DurationBucket(1200))
	assert.Equal(t, "long", DurationBucket(7200))
}

func TestWatchAndChannelURLs(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"))
	assert.Equal(t, "https://www.youtube.com/channel/UC123", ChannelURL("UC123"))
}
