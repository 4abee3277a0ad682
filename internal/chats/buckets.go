package chats

import (
	"time"

	"github.com/chattolabs/chatto/internal/api"
)

// Upload-recency buckets. The selected chat is pinned above all of them
// regardless of its own age.
type Bucket int

const (
	BucketToday Bucket = iota
	BucketRecent
	BucketOlder
)

// Label returns the Korean heading shown for the bucket.
func (b Bucket) Label() string {
	switch b {
	case BucketToday:
		return "오늘"
	case BucketRecent:
		return "최근 7일"
	default:
		return "이전 대화"
	}
}

// seoul is the calendar all bucketing is computed in; uploads are stamped by
// the backend in KST.
var seoul = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}()

// BucketFor assigns a chat to a bucket by midnight-aligned day difference in
// the Asia/Seoul calendar: 0 days is today, 1-7 recent, 8+ older.
func BucketFor(uploadedAt, now time.Time) Bucket {
	days := daysBetween(uploadedAt, now)
	switch {
	case days <= 0:
		return BucketToday
	case days <= 7:
		return BucketRecent
	default:
		return BucketOlder
	}
}

func daysBetween(earlier, later time.Time) int {
	a := midnight(earlier.In(seoul))
	b := midnight(later.In(seoul))
	return int(b.Sub(a).Hours() / 24)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Grouped is the render-ready partition of a chat collection.
type Grouped struct {
	Selected *api.Chat
	Today    []api.Chat
	Recent   []api.Chat
	Older    []api.Chat
}

// Group partitions chats into the selected pin plus the three buckets. Every
// non-selected chat lands in exactly one bucket; the selected chat (if still
// present) appears only as the pin.
func Group(chats []api.Chat, selectedID string, now time.Time) Grouped {
	var g Grouped
	for i := range chats {
		chat := chats[i]
		if selectedID != "" && chat.ID == selectedID {
			g.Selected = &chat
			continue
		}
		switch BucketFor(chat.UploadedAt, now) {
		case BucketToday:
			g.Today = append(g.Today, chat)
		case BucketRecent:
			g.Recent = append(g.Recent, chat)
		default:
			g.Older = append(g.Older, chat)
		}
	}
	return g
}
