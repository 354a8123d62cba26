package topicquery

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// ReadVisible reads src and returns the topics visible under visible, sorted
// by cursor key in dir and trimmed to limit when limit is positive.
//
// Candidates the source resolved are checked directly. The rest are fetched
// in one batch and checked after loading. Topics that vanished in between
// are dropped.
func ReadVisible(
	ctx context.Context,
	src DataSource,
	visible Predicate,
	topics topicStore,
	dir domain.ScanDirection,
	limit int,
) ([]*TopicData, error) {
	items, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}

	r := make([]*TopicData, 0, len(items))
	want := roaring.New()
	for _, d := range items {
		if !d.HasTopic() {
			want.Add(uint32(d.ID()))
			continue
		}
		ok, err := visible.Match(ctx, d)
		if err != nil {
			return nil, err
		}
		if ok {
			r = append(r, d)
		}
	}

	if !want.IsEmpty() {
		ids := make([]domain.TopicID, 0, want.GetCardinality())
		for it := want.Iterator(); it.HasNext(); {
			ids = append(ids, domain.TopicID(it.Next()))
		}
		loaded, err := topics.GetMany(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("load %d topics: %w", len(ids), err)
		}
		for _, d := range wrapTopics(loaded) {
			ok, err := visible.Match(ctx, d)
			if err != nil {
				return nil, err
			}
			if ok {
				r = append(r, d)
			}
		}
	}

	SortTopics(r, dir)
	if limit > 0 && len(r) > limit {
		r = r[:limit]
	}
	return r, nil
}

// SortTopics orders resolved topics by cursor key, newest first for
// ScanDescending. Equal keys fall back to id order.
func SortTopics(r []*TopicData, dir domain.ScanDirection) {
	slices.SortStableFunc(r, func(a, b *TopicData) int {
		c := cmp.Compare(cursorOf(a), cursorOf(b))
		if c == 0 {
			c = cmp.Compare(a.ID(), b.ID())
		}
		if dir == domain.ScanDescending {
			return -c
		}
		return c
	})
}

// Topics returns the resolved topics of r.
func Topics(r []*TopicData) []*domain.Topic {
	out := make([]*domain.Topic, 0, len(r))
	for _, d := range r {
		if t := d.Cached(); t != nil {
			out = append(out, t)
		}
	}
	return out
}
