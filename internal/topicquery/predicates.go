package topicquery

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/internal/query"
)

// Field names understood by the query grammar.
const (
	FieldIs            = "is"
	FieldLimit         = "limit"
	FieldOwner         = "owner"
	FieldProject       = "project"
	FieldResumeSortKey = "resume_sortkey"
	FieldReviewer      = "reviewer"
	FieldSortKeyAfter  = "sortkey_after"
	FieldSortKeyBefore = "sortkey_before"
	FieldStatus        = "status"
	FieldTopic         = "topic"
	FieldVisibleTo     = "visibleto"
)

type leaf = query.OperatorPredicate[*TopicData]

func newLeaf(name, value string) leaf {
	return query.NewOperatorPredicate[*TopicData](name, value)
}

// ---------------------------------------------------------------------------
// status
// ---------------------------------------------------------------------------

type statusPredicate struct {
	leaf
	topics topicGetter
	status domain.TopicStatus
}

func newStatusPredicate(topics topicGetter, s domain.TopicStatus) *statusPredicate {
	return &statusPredicate{leaf: newLeaf(FieldStatus, s.String()), topics: topics, status: s}
}

func (p *statusPredicate) Match(ctx context.Context, d *TopicData) (bool, error) {
	t, err := d.Topic(ctx, p.topics)
	if err != nil {
		return false, err
	}
	return t != nil && t.Status == p.status, nil
}

func (p *statusPredicate) Cost() int { return 0 }

// statusesPredicate returns one status predicate, or the OR of several.
func statusesPredicate(topics topicGetter, statuses []domain.TopicStatus) Predicate {
	ps := make([]Predicate, len(statuses))
	for i, s := range statuses {
		ps[i] = newStatusPredicate(topics, s)
	}
	return query.Or(ps...)
}

// openPredicate matches topics in any open status.
func openPredicate(topics topicGetter) Predicate {
	return statusesPredicate(topics, domain.OpenTopicStatuses())
}

// closedPredicate matches topics in any closed status.
func closedPredicate(topics topicGetter) Predicate {
	return statusesPredicate(topics, domain.ClosedTopicStatuses())
}

// ---------------------------------------------------------------------------
// sortkey_before / sortkey_after
// ---------------------------------------------------------------------------

// sortKeyPredicate bounds the cursor key. Before matches keys strictly below
// the value, after matches keys strictly above it.
type sortKeyPredicate struct {
	leaf
	topics topicGetter
	before bool
}

func newSortKeyBefore(topics topicGetter, key string) *sortKeyPredicate {
	return &sortKeyPredicate{leaf: newLeaf(FieldSortKeyBefore, key), topics: topics, before: true}
}

func newSortKeyAfter(topics topicGetter, key string) *sortKeyPredicate {
	return &sortKeyPredicate{leaf: newLeaf(FieldSortKeyAfter, key), topics: topics}
}

func (p *sortKeyPredicate) Match(ctx context.Context, d *TopicData) (bool, error) {
	t, err := d.Topic(ctx, p.topics)
	if err != nil || t == nil {
		return false, err
	}
	if p.before {
		return t.SortKey < p.Value(), nil
	}
	return t.SortKey > p.Value(), nil
}

func (p *sortKeyPredicate) Cost() int { return 1 }

// ---------------------------------------------------------------------------
// owner / reviewer
// ---------------------------------------------------------------------------

type ownerPredicate struct {
	leaf
	topics  topicGetter
	account uuid.UUID
}

func newOwnerPredicate(topics topicGetter, id uuid.UUID) *ownerPredicate {
	return &ownerPredicate{leaf: newLeaf(FieldOwner, id.String()), topics: topics, account: id}
}

func (p *ownerPredicate) Match(ctx context.Context, d *TopicData) (bool, error) {
	t, err := d.Topic(ctx, p.topics)
	if err != nil {
		return false, err
	}
	return t != nil && t.Owner == p.account, nil
}

func (p *ownerPredicate) Cost() int { return 1 }

// reviewerPredicate matches topics the account voted on in any change-set.
type reviewerPredicate struct {
	leaf
	approvals approvalsByTopic
	account   uuid.UUID
}

func newReviewerPredicate(approvals approvalsByTopic, id uuid.UUID) *reviewerPredicate {
	return &reviewerPredicate{leaf: newLeaf(FieldReviewer, id.String()), approvals: approvals, account: id}
}

func (p *reviewerPredicate) Match(ctx context.Context, d *TopicData) (bool, error) {
	approvals, err := d.Approvals(ctx, p.approvals)
	if err != nil {
		return false, err
	}
	for _, a := range approvals {
		if a.Account == p.account {
			return true, nil
		}
	}
	return false, nil
}

func (p *reviewerPredicate) Cost() int { return 2 }

// ---------------------------------------------------------------------------
// project
// ---------------------------------------------------------------------------

type projectPredicate struct {
	leaf
	topics topicGetter
}

func newProjectPredicate(topics topicGetter, name string) *projectPredicate {
	return &projectPredicate{leaf: newLeaf(FieldProject, name), topics: topics}
}

func (p *projectPredicate) Match(ctx context.Context, d *TopicData) (bool, error) {
	t, err := d.Topic(ctx, p.topics)
	if err != nil {
		return false, err
	}
	return t != nil && t.Project == p.Value(), nil
}

func (p *projectPredicate) Cost() int { return 1 }

// regexProjectPredicate matches project names against a pattern written as
// "^expr" or "^expr$". The whole name must match.
type regexProjectPredicate struct {
	leaf
	topics topicGetter
	re     *regexp.Regexp
}

func newRegexProjectPredicate(topics topicGetter, value string) (*regexProjectPredicate, error) {
	expr := strings.TrimPrefix(value, "^")
	if strings.HasSuffix(expr, "$") && !strings.HasSuffix(expr, `\$`) {
		expr = strings.TrimSuffix(expr, "$")
	}
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, domain.NewQueryParseError("Invalid project pattern %q: %v", value, err)
	}
	return &regexProjectPredicate{leaf: newLeaf(FieldProject, value), topics: topics, re: re}, nil
}

func (p *regexProjectPredicate) Match(ctx context.Context, d *TopicData) (bool, error) {
	t, err := d.Topic(ctx, p.topics)
	if err != nil {
		return false, err
	}
	return t != nil && p.re.MatchString(t.Project), nil
}

func (p *regexProjectPredicate) Cost() int { return 1 }

// ---------------------------------------------------------------------------
// is:reviewed
// ---------------------------------------------------------------------------

// isReviewedPredicate matches topics whose current change-set carries at
// least one non-zero vote.
type isReviewedPredicate struct {
	leaf
	topics    topicGetter
	approvals approvalsByTopic
}

func newIsReviewedPredicate(topics topicGetter, approvals approvalsByTopic) *isReviewedPredicate {
	return &isReviewedPredicate{leaf: newLeaf(FieldIs, "reviewed"), topics: topics, approvals: approvals}
}

func (p *isReviewedPredicate) Match(ctx context.Context, d *TopicData) (bool, error) {
	t, err := d.Topic(ctx, p.topics)
	if err != nil || t == nil {
		return false, err
	}
	approvals, err := d.Approvals(ctx, p.approvals)
	if err != nil {
		return false, err
	}
	current := t.CurrentChangeSetID()
	for _, a := range approvals {
		if a.ChangeSet == current && a.Value != 0 {
			return true, nil
		}
	}
	return false, nil
}

func (p *isReviewedPredicate) Cost() int { return 2 }

// ---------------------------------------------------------------------------
// visibleto
// ---------------------------------------------------------------------------

type isVisibleToPredicate struct {
	leaf
	topics  topicGetter
	control visibility
	user    *domain.User
}

func newIsVisibleToPredicate(topics topicGetter, control visibility, u *domain.User, label string) *isVisibleToPredicate {
	return &isVisibleToPredicate{leaf: newLeaf(FieldVisibleTo, label), topics: topics, control: control, user: u}
}

func (p *isVisibleToPredicate) Match(ctx context.Context, d *TopicData) (bool, error) {
	if d.fastIsVisibleTo(p.user) {
		return true, nil
	}
	t, err := d.Topic(ctx, p.topics)
	if err != nil || t == nil {
		return false, err
	}
	ok, err := p.control.CanRead(ctx, t, p.user)
	if err != nil {
		return false, fmt.Errorf("check visibility of topic %s: %w", t.ID, err)
	}
	if ok {
		d.cacheVisibleTo(p.user)
	}
	return ok, nil
}

func (p *isVisibleToPredicate) Cost() int { return 1 }

// userLabel renders u for the visibleto value.
func userLabel(u *domain.User) string {
	switch {
	case u.IsIdentified():
		return u.AccountID.String()
	case len(u.Groups) > 0:
		ids := make([]string, len(u.Groups))
		for i, g := range u.Groups {
			ids[i] = g.String()
		}
		return "group:" + strings.Join(ids, ",")
	default:
		return "anonymous"
	}
}
