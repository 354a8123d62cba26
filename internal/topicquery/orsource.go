package topicquery

import (
	"context"
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/internal/query"
)

// OrSource is a disjunction whose children are all data sources. Reading it
// unions the children's candidates in child order.
type OrSource struct {
	Predicate
	children    []Predicate
	cardinality int
}

// NewOrSource returns a disjunction over ps.
func NewOrSource(ps ...Predicate) *OrSource {
	flat := make([]Predicate, 0, len(ps))
	for _, p := range ps {
		switch p.(type) {
		case *OrSource, *query.OrPredicate[*TopicData]:
			flat = append(flat, p.Children()...)
		default:
			flat = append(flat, p)
		}
	}
	return &OrSource{
		Predicate:   query.Or(flat...),
		children:    flat,
		cardinality: -1,
	}
}

// Children returns the operands in their original order.
func (s *OrSource) Children() []Predicate { return slices.Clone(s.children) }

// Read returns the union of every child's candidates, de-duplicated by topic
// id and in first-seen order.
func (s *OrSource) Read(ctx context.Context) ([]*TopicData, error) {
	seen := roaring.New()
	var r []*TopicData
	for _, c := range s.children {
		ds, ok := asSource(c)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a data source", domain.ErrNoBackingSource, c.String())
		}
		items, err := ds.Read(ctx)
		if err != nil {
			return nil, err
		}
		for _, d := range items {
			if seen.CheckedAdd(uint32(d.ID())) {
				r = append(r, d)
			}
		}
	}
	return r, nil
}

// HasTopic reports whether every child yields whole topics.
func (s *OrSource) HasTopic() bool {
	for _, c := range s.children {
		ds, ok := asSource(c)
		if !ok || !ds.HasTopic() {
			return false
		}
	}
	return true
}

// Cardinality is the sum of the children's estimates.
func (s *OrSource) Cardinality() int {
	if s.cardinality >= 0 {
		return s.cardinality
	}
	card := 0
	for _, c := range s.children {
		if ds, ok := asSource(c); ok {
			card += ds.Cardinality()
		}
	}
	s.cardinality = card
	return card
}

// anySource reports whether any predicate is a data source.
func anySource(ps []Predicate) bool {
	return slices.ContainsFunc(ps, func(p Predicate) bool {
		_, ok := asSource(p)
		return ok
	})
}
