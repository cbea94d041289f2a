package timespec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeze(t *testing.T, at time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = orig })
}

func TestParse(t *testing.T) {
	base := time.Date(2025, 10, 29, 12, 0, 0, 0, time.UTC)
	freeze(t, base)

	tests := []struct {
		spec string
		want time.Time
	}{
		{"2025-10-01T00:00:00Z", time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)},
		{"1h", base.Add(-time.Hour)},
		{"1h30m", base.Add(-90 * time.Minute)},
		{" 7d ", base.Add(-7 * 24 * time.Hour)},
		{"2w", base.Add(-14 * 24 * time.Hour)},
		{"0d", base},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want.UnixMilli(), got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, spec := range []string{"", "yesterday", "d", "-3d", "-1h", "2025-13-01"} {
		t.Run(spec, func(t *testing.T) {
			_, err := Parse(spec)
			assert.Error(t, err)
		})
	}
}

func TestParseRange(t *testing.T) {
	freeze(t, time.Date(2025, 10, 29, 12, 0, 0, 0, time.UTC))

	since, until, err := ParseRange("7d", "1d")
	require.NoError(t, err)
	assert.Less(t, since, until)

	since, until, err = ParseRange("", "")
	require.NoError(t, err)
	assert.Zero(t, since)
	assert.Zero(t, until)

	_, _, err = ParseRange("1d", "7d")
	assert.ErrorContains(t, err, "--since must be before --until")

	_, _, err = ParseRange("bogus", "")
	assert.ErrorContains(t, err, "invalid --since")

	_, _, err = ParseRange("", "bogus")
	assert.ErrorContains(t, err, "invalid --until")
}
