package topicquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// DataSource is a predicate that can also produce candidate topics directly
// from a backing index.
type DataSource interface {
	Predicate
	// Read returns candidates. They are not guaranteed to satisfy the
	// predicate and must be re-matched by the caller.
	Read(ctx context.Context) ([]*TopicData, error)
	// HasTopic reports whether Read returns fully resolved topics.
	HasTopic() bool
	// Cardinality estimates the candidate count. Used only for ordering.
	Cardinality() int
}

// Paginated is a DataSource scanning a cursor-ordered index one page at a time.
type Paginated interface {
	DataSource
	// Limit is the page size each scan asks for.
	Limit() int
	// Direction is the cursor order of every page.
	Direction() domain.ScanDirection
	// Restart scans the next page strictly after last, with the same
	// direction and limit as the original scan.
	Restart(ctx context.Context, last *TopicData) ([]*TopicData, error)
}

func asSource(p Predicate) (DataSource, bool) {
	s, ok := p.(DataSource)
	return s, ok
}

// ---------------------------------------------------------------------------
// topic:<id or key>
// ---------------------------------------------------------------------------

// topicPredicate matches one topic by numeric id, or topics whose key starts
// with the given prefix. It is its own data source.
type topicPredicate struct {
	leaf
	topics topicStore
	id     domain.TopicID
}

func newTopicPredicate(topics topicStore, value string) *topicPredicate {
	p := &topicPredicate{leaf: newLeaf(FieldTopic, value), topics: topics}
	if id, err := domain.ParseTopicID(value); err == nil {
		p.id = id
	}
	return p
}

func (p *topicPredicate) Match(ctx context.Context, d *TopicData) (bool, error) {
	if p.id != 0 {
		return d.ID() == p.id, nil
	}
	t, err := d.Topic(ctx, p.topics)
	if err != nil || t == nil {
		return false, err
	}
	return strings.HasPrefix(t.Key, p.Value()), nil
}

func (p *topicPredicate) Cost() int { return 1 }

func (p *topicPredicate) Read(ctx context.Context) ([]*TopicData, error) {
	if p.id != 0 {
		t, err := NewTopicData(p.id).Topic(ctx, p.topics)
		if err != nil || t == nil {
			return nil, err
		}
		return []*TopicData{FromTopic(t)}, nil
	}
	topics, err := p.topics.ByKeyPrefix(ctx, p.Value())
	if err != nil {
		return nil, fmt.Errorf("scan topics by key %q: %w", p.Value(), err)
	}
	return wrapTopics(topics), nil
}

func (p *topicPredicate) HasTopic() bool { return true }

func (p *topicPredicate) Cardinality() int {
	if p.id != 0 {
		return 1
	}
	return 10
}
