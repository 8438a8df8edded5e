// Package projection builds the local timeline the presentation layer
// reads. It merges the live window with paginated history, handling
// ordering and deduplication. It performs no I/O.
package projection

import (
	"github.com/samber/lo"

	"github.com/pavelsokolov/yazen-chat-app/domain"
)

// Timeline merges two buffers into one continuous message list:
//
//   - live: the most recent window, replaced wholesale on every tail
//     delivery, oldest first.
//   - older: history fetched through pagination, grown only by
//     prepending pages at the front.
//
// Both buffers keep their internal order, so the merged list stays
// chronological end to end without ever re-sorting.
type Timeline struct {
	live  []domain.Message
	older []domain.Message
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// ReplaceLive installs a fresh live window. Each delivery supersedes
// the previous one in full; it is never an increment.
func (t *Timeline) ReplaceLive(page []domain.Message) {
	t.live = page
}

// PrependOlder grows the history with a page strictly older than
// everything already buffered.
func (t *Timeline) PrependOlder(page []domain.Message) {
	if len(page) == 0 {
		return
	}
	older := make([]domain.Message, 0, len(page)+len(t.older))
	older = append(older, page...)
	t.older = append(older, t.older...)
}

// Messages returns the merged list, oldest first. When an id appears
// in both buffers the live copy wins: the message is still inside the
// recent window, so the historical copy is dropped.
func (t *Timeline) Messages() []domain.Message {
	if len(t.older) == 0 {
		return append([]domain.Message{}, t.live...)
	}

	liveIDs := lo.SliceToMap(t.live, func(m domain.Message) (string, struct{}) {
		return m.ID, struct{}{}
	})

	merged := make([]domain.Message, 0, len(t.older)+len(t.live))
	for _, m := range t.older {
		if _, inLive := liveIDs[m.ID]; inLive {
			continue
		}
		merged = append(merged, m)
	}
	return append(merged, t.live...)
}
