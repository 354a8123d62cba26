// Package topicquery compiles topic queries into predicate trees, rewrites
// them into paginated index scans, and executes them with visibility checks.
package topicquery

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/internal/query"
)

// Predicate is a predicate over topics.
type Predicate = query.Predicate[*TopicData]

// TopicData is a lazily hydrated handle on one topic flowing through
// predicate evaluation.
//
// The topic and its approvals are fetched at most once and then kept for the
// lifetime of the value. TopicData is request scoped and not safe for
// concurrent use.
type TopicData struct {
	id              domain.TopicID
	topic           *domain.Topic
	topicLoaded     bool
	approvals       []domain.Approval
	approvalsLoaded bool
	visibleTo       *domain.User
}

// NewTopicData returns a handle that knows only the topic id.
func NewTopicData(id domain.TopicID) *TopicData {
	return &TopicData{id: id}
}

// FromTopic returns a handle with the topic already resolved.
func FromTopic(t *domain.Topic) *TopicData {
	return &TopicData{id: t.ID, topic: t, topicLoaded: true}
}

// ID returns the topic id.
func (d *TopicData) ID() domain.TopicID { return d.id }

// HasTopic reports whether the topic has been resolved.
func (d *TopicData) HasTopic() bool { return d.topic != nil }

// Cached returns the resolved topic, or nil if it has not been loaded.
func (d *TopicData) Cached() *domain.Topic { return d.topic }

// Topic returns the topic, fetching it on first use. A topic that no longer
// exists yields (nil, nil).
func (d *TopicData) Topic(ctx context.Context, store topicGetter) (*domain.Topic, error) {
	if d.topicLoaded {
		return d.topic, nil
	}
	t, err := store.Get(ctx, d.id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load topic %s: %w", d.id, err)
	}
	d.topic = t
	d.topicLoaded = true
	return d.topic, nil
}

// Approvals returns every approval recorded on any change-set of the topic,
// fetching them on first use.
func (d *TopicData) Approvals(ctx context.Context, store approvalsByTopic) ([]domain.Approval, error) {
	if d.approvalsLoaded {
		return d.approvals, nil
	}
	a, err := store.ByTopic(ctx, d.id)
	if err != nil {
		return nil, fmt.Errorf("load approvals of topic %s: %w", d.id, err)
	}
	d.approvals = a
	d.approvalsLoaded = true
	return d.approvals, nil
}

// fastIsVisibleTo reports whether visibility was already confirmed for this
// exact user value during the current evaluation.
func (d *TopicData) fastIsVisibleTo(u *domain.User) bool {
	return u != nil && d.visibleTo == u
}

func (d *TopicData) cacheVisibleTo(u *domain.User) {
	d.visibleTo = u
}

// wrapTopics turns loaded topics into handles.
func wrapTopics(topics []domain.Topic) []*TopicData {
	out := make([]*TopicData, len(topics))
	for i := range topics {
		out[i] = FromTopic(&topics[i])
	}
	return out
}
