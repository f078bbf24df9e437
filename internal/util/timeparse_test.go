package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSince(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2h", now.Add(-2 * time.Hour)},
		{"30m", now.Add(-30 * time.Minute)},
		{"3d", time.Date(2024, 5, 7, 12, 0, 0, 0, time.UTC)},
		{"2w", time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC)},
		{"1mo", time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)},
		{"2024-01-02", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2024-01-02T15:04", time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)},
		{"2024-01-02T15:04:05Z", time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)},
	}
	for _, tc := range tests {
		got, err := ParseSince(tc.in, now)
		require.NoError(t, err, tc.in)
		assert.True(t, tc.want.Equal(got), "%s: got %s want %s", tc.in, got, tc.want)
	}

	for _, bad := range []string{"", "xd", "-1w", "yesterday"} {
		_, err := ParseSince(bad, now)
		assert.Error(t, err, bad)
	}
}

func TestScoreCompletions(t *testing.T) {
	cands := []string{"Weekly review", "Roadmap", "Weekly sync"}
	assert.Equal(t, cands, ScoreCompletions("", cands, 1))
	assert.Nil(t, ScoreCompletions("zzz", cands, 5))

	got := ScoreCompletions("wkly", cands, 0)
	assert.ElementsMatch(t, []string{"Weekly review", "Weekly sync"}, got)
	assert.Len(t, ScoreCompletions("wkly", cands, 1), 1)

	assert.Equal(t, []int{1}, ScoreIndexes("road", cands, 3))
}
