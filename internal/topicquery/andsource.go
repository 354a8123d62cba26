package topicquery

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/internal/query"
)

// AndSource is a conjunction that reads candidates from its cheapest data
// source child and keeps those matching the whole conjunction.
type AndSource struct {
	Predicate
	children    []Predicate
	cardinality int
}

// NewAndSource returns a conjunction over ps. Children are ordered so data
// sources come first, sources yielding whole topics before the rest, then by
// cost and cardinality.
func NewAndSource(ps ...Predicate) *AndSource {
	sorted := flattenAnd(ps)
	slices.SortStableFunc(sorted, compareForAnd)
	return &AndSource{
		Predicate:   query.And(sorted...),
		children:    sorted,
		cardinality: -1,
	}
}

func flattenAnd(ps []Predicate) []Predicate {
	out := make([]Predicate, 0, len(ps))
	for _, p := range ps {
		switch p.(type) {
		case *AndSource, *query.AndPredicate[*TopicData]:
			out = append(out, p.Children()...)
		default:
			out = append(out, p)
		}
	}
	return out
}

func compareForAnd(a, b Predicate) int {
	as, aok := asSource(a)
	bs, bok := asSource(b)
	switch {
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	case aok && bok:
		if as.HasTopic() != bs.HasTopic() {
			if as.HasTopic() {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(a.Cost(), b.Cost()); c != 0 {
			return c
		}
		return cmp.Compare(as.Cardinality(), bs.Cardinality())
	default:
		return cmp.Compare(a.Cost(), b.Cost())
	}
}

// Children returns the children in evaluation order.
func (s *AndSource) Children() []Predicate { return slices.Clone(s.children) }

func (s *AndSource) source() (DataSource, error) {
	for _, c := range s.children {
		if ds, ok := asSource(c); ok {
			return ds, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrNoBackingSource, s.String())
}

// HasTopic reports whether the backing source yields whole topics.
func (s *AndSource) HasTopic() bool {
	src, err := s.source()
	return err == nil && src.HasTopic()
}

// Cardinality is the smallest estimate among data source children.
func (s *AndSource) Cardinality() int {
	if s.cardinality >= 0 {
		return s.cardinality
	}
	card := 0
	found := false
	for _, c := range s.children {
		ds, ok := asSource(c)
		if !ok {
			continue
		}
		if !found || ds.Cardinality() < card {
			card = ds.Cardinality()
			found = true
		}
	}
	s.cardinality = card
	return card
}

// Read scans the backing source and keeps candidates matching the whole
// conjunction. When the source is paginated and filtering dropped rows, it
// restarts after the last row seen until the page is full, the source runs
// dry or a restart fails to advance the cursor.
func (s *AndSource) Read(ctx context.Context) ([]*TopicData, error) {
	src, err := s.source()
	if err != nil {
		return nil, err
	}
	items, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	paginated, _ := src.(Paginated)

	var r []*TopicData
	for {
		skipped := false
		var last *TopicData
		for _, d := range items {
			ok, err := s.Match(ctx, d)
			if err != nil {
				return nil, err
			}
			if ok {
				r = append(r, d)
			} else {
				skipped = true
			}
			last = d
		}
		if paginated == nil || !skipped || last == nil || len(r) >= paginated.Limit() {
			return r, nil
		}

		sourceRestarts.Inc()
		items, err = paginated.Restart(ctx, last)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return r, nil
		}
		if !past(items[0], last, paginated.Direction()) || cursorOf(items[len(items)-1]) == cursorOf(last) {
			return r, nil
		}
	}
}

// past reports whether d lies strictly beyond last in scan order dir.
func past(d, last *TopicData, dir domain.ScanDirection) bool {
	if dir == domain.ScanAscending {
		return cursorOf(d) > cursorOf(last)
	}
	return cursorOf(d) < cursorOf(last)
}

// cursorOf returns the position of d in a cursor-ordered scan.
func cursorOf(d *TopicData) string {
	if t := d.Cached(); t != nil {
		return t.SortKey
	}
	return d.ID().String()
}
