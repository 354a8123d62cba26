package topicquery

import (
	"context"
	"fmt"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/internal/query"
)

// Cardinality estimates for the status indexes.
const (
	openCardinality      = 2000
	mergedCardinality    = 50000
	abandonedCardinality = 50000
	closedCardinality    = mergedCardinality + abandonedCardinality
)

// ---------------------------------------------------------------------------
// Paginated status scan
// ---------------------------------------------------------------------------

// paginatedSource scans one status bucket of the topic index in cursor order.
// Its children are the status, cursor and limit predicates it replaced, so
// matching re-applies them and the limit stays discoverable with query.Find.
type paginatedSource struct {
	Predicate
	topics      topicStore
	statuses    []domain.TopicStatus
	key         string
	limit       int
	dir         domain.ScanDirection
	cardinality int
}

func (s *paginatedSource) Read(ctx context.Context) ([]*TopicData, error) {
	return s.scan(ctx, s.key)
}

func (s *paginatedSource) Restart(ctx context.Context, last *TopicData) ([]*TopicData, error) {
	t, err := last.Topic(ctx, s.topics)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return s.scan(ctx, t.SortKey)
}

func (s *paginatedSource) scan(ctx context.Context, key string) ([]*TopicData, error) {
	topics, err := s.topics.ScanByStatus(ctx, s.statuses, key, s.limit, s.dir)
	if err != nil {
		return nil, fmt.Errorf("scan %v topics from %q: %w", s.statuses, key, err)
	}
	return wrapTopics(topics), nil
}

func (s *paginatedSource) Limit() int { return s.limit }

func (s *paginatedSource) Direction() domain.ScanDirection { return s.dir }

func (s *paginatedSource) HasTopic() bool { return true }

func (s *paginatedSource) Cardinality() int { return s.cardinality }

// ---------------------------------------------------------------------------
// Rules
// ---------------------------------------------------------------------------

type bucket struct {
	name        string
	status      Predicate
	statuses    []domain.TopicStatus
	cardinality int
}

// NewRewriter returns the rewriter turning status, cursor and limit
// conjunctions into paginated index scans. Conjunctions and disjunctions
// containing a data source are rebuilt as AndSource and OrSource.
func NewRewriter(topics topicStore) *query.Rewriter[*TopicData] {
	buckets := []bucket{
		{"open", openPredicate(topics), domain.OpenTopicStatuses(), openCardinality},
		{"merged", newStatusPredicate(topics, domain.TopicStatusMerged), []domain.TopicStatus{domain.TopicStatusMerged}, mergedCardinality},
		{"abandoned", newStatusPredicate(topics, domain.TopicStatusAbandoned), []domain.TopicStatus{domain.TopicStatusAbandoned}, abandonedCardinality},
		{"closed", closedPredicate(topics), domain.ClosedTopicStatuses(), closedCardinality},
	}

	var rules []query.Rule[*TopicData]
	for _, b := range buckets {
		rules = append(rules,
			scanRule(topics, b, FieldSortKeyBefore, domain.ScanDescending),
			scanRule(topics, b, FieldSortKeyAfter, domain.ScanAscending),
		)
	}

	return query.NewRewriter(rules,
		query.WithAnd[*TopicData](func(ps []Predicate) Predicate {
			if anySource(ps) {
				return NewAndSource(ps...)
			}
			return query.And(ps...)
		}),
		query.WithOr[*TopicData](func(ps []Predicate) Predicate {
			if anySource(ps) {
				return NewOrSource(ps...)
			}
			return query.Or(ps...)
		}),
	)
}

func scanRule(topics topicStore, b bucket, cursorField string, dir domain.ScanDirection) query.Rule[*TopicData] {
	return query.Rule[*TopicData]{
		Name: b.name + "_by_" + cursorField,
		Pattern: []query.Element[*TopicData]{
			query.Literal(b.status),
			query.Capture[*TopicData]("cursor", cursorField),
			query.Capture[*TopicData]("limit", FieldLimit),
		},
		Build: func(m query.Bindings[*TopicData]) (Predicate, bool) {
			limit, ok := m["limit"].(*query.IntPredicate[*TopicData])
			if !ok {
				return nil, false
			}
			cursor := m["cursor"]
			return &paginatedSource{
				Predicate:   query.And(b.status, cursor, limit),
				topics:      topics,
				statuses:    b.statuses,
				key:         cursor.Value(),
				limit:       limit.IntValue(),
				dir:         dir,
				cardinality: b.cardinality,
			}, true
		},
	}
}

// ---------------------------------------------------------------------------
// Planning
// ---------------------------------------------------------------------------

// Plan rewrites q into a data source. If q alone cannot be read from an
// index it is retried with an implicit open-status conjunct. A query that
// still has no data source is rejected as unsupported.
func Plan(rw *query.Rewriter[*TopicData], topics topicGetter, q Predicate) (DataSource, error) {
	s := rw.Rewrite(q)
	if ds, ok := asSource(s); ok {
		return ds, nil
	}
	s = rw.Rewrite(query.And(openPredicate(topics), q))
	if ds, ok := asSource(s); ok {
		return ds, nil
	}
	return nil, domain.NewUnsupportedQueryError(q.String(), "cannot execute query: "+s.String())
}
