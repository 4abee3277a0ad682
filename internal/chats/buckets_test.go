package chats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chattolabs/chatto/internal/api"
)

// now pins the tests to a known KST instant: 2025-06-15 10:00 KST.
var now = time.Date(2025, 6, 15, 10, 0, 0, 0, seoul)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		name       string
		uploadedAt time.Time
		want       Bucket
	}{
		{"same morning", time.Date(2025, 6, 15, 0, 30, 0, 0, seoul), BucketToday},
		{"yesterday evening", time.Date(2025, 6, 14, 23, 59, 0, 0, seoul), BucketRecent},
		{"seven days ago", time.Date(2025, 6, 8, 1, 0, 0, 0, seoul), BucketRecent},
		{"eight days ago", time.Date(2025, 6, 7, 23, 0, 0, 0, seoul), BucketOlder},
		{"months ago", time.Date(2025, 1, 1, 12, 0, 0, 0, seoul), BucketOlder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketFor(tt.uploadedAt, now))
		})
	}
}

func TestBucketForCrossesMidnightNotClock(t *testing.T) {
	// 11pm yesterday is one calendar day away even though it is under 12
	// hours ago. The bucket boundary is midnight in Seoul, not a 24h
	// window.
	uploaded := time.Date(2025, 6, 14, 23, 0, 0, 0, seoul)
	assert.Equal(t, BucketRecent, BucketFor(uploaded, now))

	// A UTC timestamp from the same Seoul calendar day stays in today.
	sameDayUTC := time.Date(2025, 6, 14, 16, 0, 0, 0, time.UTC) // 01:00 KST Jun 15
	assert.Equal(t, BucketToday, BucketFor(sameDayUTC, now))
}

func TestGroupPartition(t *testing.T) {
	chats := []api.Chat{
		{ID: "a", UploadedAt: now.Add(-1 * time.Hour)},
		{ID: "b", UploadedAt: now.AddDate(0, 0, -3)},
		{ID: "c", UploadedAt: now.AddDate(0, 0, -30)},
		{ID: "d", UploadedAt: now.AddDate(0, 0, -6)},
	}

	t.Run("every non-selected chat lands in exactly one bucket", func(t *testing.T) {
		g := Group(chats, "", now)
		require.Nil(t, g.Selected)

		seen := map[string]int{}
		for _, bucket := range [][]api.Chat{g.Today, g.Recent, g.Older} {
			for _, c := range bucket {
				seen[c.ID]++
			}
		}
		assert.Len(t, seen, len(chats))
		for id, count := range seen {
			assert.Equal(t, 1, count, fmt.Sprintf("chat %s appears %d times", id, count))
		}
	})

	t.Run("selected chat is pinned out of its age bucket", func(t *testing.T) {
		g := Group(chats, "c", now)
		require.NotNil(t, g.Selected)
		assert.Equal(t, "c", g.Selected.ID)

		// "c" is 30 days old but must not appear in Older anymore.
		for _, c := range g.Older {
			assert.NotEqual(t, "c", c.ID)
		}
		// The pin appears exactly once overall.
		total := len(g.Today) + len(g.Recent) + len(g.Older)
		assert.Equal(t, len(chats)-1, total)
	})

	t.Run("selection not present in the collection yields no pin", func(t *testing.T) {
		g := Group(chats, "deleted-id", now)
		assert.Nil(t, g.Selected)
	})
}

func TestBucketLabels(t *testing.T) {
	assert.Equal(t, "오늘", BucketToday.Label())
	assert.Equal(t, "최근 7일", BucketRecent.Label())
	assert.Equal(t, "이전 대화", BucketOlder.Label())
}
