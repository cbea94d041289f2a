// Package timespec parses the --since/--until values accepted by
// `radar items`.
package timespec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// now is replaced in tests.
var now = time.Now

// Parse turns a time specification into a Unix timestamp in milliseconds.
//
// Accepted forms:
//   - RFC3339 timestamps: "2025-10-29T13:00:00Z"
//   - Go durations, meaning that long ago: "90m", "1h30m"
//   - Whole days or weeks ago: "7d", "2w"
func Parse(spec string) (int64, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, fmt.Errorf("empty time specification")
	}

	if t, err := time.Parse(time.RFC3339, spec); err == nil {
		return t.UnixMilli(), nil
	}

	if d, ok := parseDays(spec); ok {
		return now().Add(-d).UnixMilli(), nil
	}

	if d, err := time.ParseDuration(spec); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("negative duration: %s", spec)
		}
		return now().Add(-d).UnixMilli(), nil
	}

	return 0, fmt.Errorf("invalid time specification: %s (use a duration like '36h' or '7d', or RFC3339 like '2025-10-29T13:00:00Z')", spec)
}

// parseDays handles the "Nd" and "Nw" forms time.ParseDuration lacks.
func parseDays(spec string) (time.Duration, bool) {
	unit := spec[len(spec)-1]
	if unit != 'd' && unit != 'w' {
		return 0, false
	}

	n, err := strconv.Atoi(spec[:len(spec)-1])
	if err != nil || n < 0 {
		return 0, false
	}

	days := n
	if unit == 'w' {
		days = n * 7
	}
	return time.Duration(days) * 24 * time.Hour, true
}

// ParseRange parses --since and --until together. A zero bound means
// unbounded. Both bounds set requires since < until.
func ParseRange(since, until string) (sinceMs, untilMs int64, err error) {
	if since != "" {
		if sinceMs, err = Parse(since); err != nil {
			return 0, 0, fmt.Errorf("invalid --since: %w", err)
		}
	}

	if until != "" {
		if untilMs, err = Parse(until); err != nil {
			return 0, 0, fmt.Errorf("invalid --until: %w", err)
		}
	}

	if sinceMs > 0 && untilMs > 0 && sinceMs >= untilMs {
		return 0, 0, fmt.Errorf("--since must be before --until")
	}

	return sinceMs, untilMs, nil
}
