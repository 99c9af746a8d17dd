package youtube

import (
	"regexp"
	"strconv"
)

// YouTube reports durations as ISO-8601 periods. In practice only days,
// hours, minutes and seconds appear (PT1H2M3S, P1DT2H, PT45S).
var durationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration converts an ISO-8601 period string into total seconds.
// Empty or unparseable input yields 0.
func ParseDuration(iso string) int64 {
	m := durationPattern.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}

	var total int64
	for i, mult := range []int64{86400, 3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0
		}
		total += n * mult
	}
	return total
}

// Duration bucket boundaries in seconds: short [0,240), medium [240,1200),
// long [1200,inf). A 4-minute video is medium, a 20-minute video is long.
const (
	ShortMaxSeconds  = 240
	MediumMaxSeconds = 1200
)

// DurationBucket classifies total seconds into short, medium or long.
func DurationBucket(seconds int64) string {
	switch {
	case seconds < ShortMaxSeconds:
		return "short"
	case seconds < MediumMaxSeconds:
		return "medium"
	default:
		return "long"
	}
}
