package topicquery

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/internal/query"
)

const selfValue = "self"

var (
	topicIDPattern  = regexp.MustCompile(`^[1-9][0-9]*$`)
	topicKeyPattern = regexp.MustCompile(`^T[0-9a-fA-F]{4,40}$`)
)

// Builder compiles topic query text for one user. "self" and is:visible
// refer to that user.
type Builder struct {
	deps     Deps
	user     *domain.User
	maxLimit int
	parser   *query.Builder[*TopicData]
}

// NewBuilder creates a Builder. maxLimit caps explicit limit: terms when
// positive.
func NewBuilder(deps Deps, u *domain.User, maxLimit int) *Builder {
	if u == nil {
		u = domain.Anonymous()
	}
	b := &Builder{deps: deps, user: u, maxLimit: maxLimit}
	b.parser = query.NewBuilder(map[string]query.OperatorFunc[*TopicData]{
		FieldIs:            b.is,
		FieldLimit:         b.limit,
		FieldOwner:         b.owner,
		FieldProject:       b.project,
		FieldResumeSortKey: b.sortKeyBefore,
		FieldReviewer:      b.reviewer,
		FieldSortKeyAfter:  b.sortKeyAfter,
		FieldSortKeyBefore: b.sortKeyBefore,
		FieldStatus:        b.status,
		FieldTopic:         b.topic,
		FieldVisibleTo:     b.visibleTo,
	}, b.defaultField)
	return b
}

// Parse compiles text into a predicate tree.
func (b *Builder) Parse(ctx context.Context, text string) (Predicate, error) {
	return b.parser.Parse(ctx, text)
}

// User returns the user the builder compiles for.
func (b *Builder) User() *domain.User { return b.user }

// ---------------------------------------------------------------------------
// Constructors for callers assembling trees directly
// ---------------------------------------------------------------------------

func (b *Builder) Open() Predicate { return openPredicate(b.deps.Topics) }

func (b *Builder) Closed() Predicate { return closedPredicate(b.deps.Topics) }

func (b *Builder) Owner(id uuid.UUID) Predicate { return newOwnerPredicate(b.deps.Topics, id) }

func (b *Builder) Reviewer(id uuid.UUID) Predicate {
	return newReviewerPredicate(b.deps.Approvals, id)
}

func (b *Builder) SortKeyBefore(key string) Predicate { return newSortKeyBefore(b.deps.Topics, key) }

func (b *Builder) SortKeyAfter(key string) Predicate { return newSortKeyAfter(b.deps.Topics, key) }

func (b *Builder) Limit(n int) Predicate { return query.NewIntPredicate[*TopicData](FieldLimit, n) }

// IsVisible matches topics the builder's user can read.
func (b *Builder) IsVisible() Predicate { return b.VisibleTo(b.user) }

// VisibleTo matches topics u can read.
func (b *Builder) VisibleTo(u *domain.User) Predicate {
	return newIsVisibleToPredicate(b.deps.Topics, b.deps.Control, u, userLabel(u))
}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

func (b *Builder) topic(_ context.Context, value string) (Predicate, error) {
	return newTopicPredicate(b.deps.Topics, value), nil
}

func (b *Builder) status(_ context.Context, value string) (Predicate, error) {
	switch strings.ToLower(value) {
	case "open":
		return b.Open(), nil
	case "closed":
		return b.Closed(), nil
	case "reviewed":
		return newIsReviewedPredicate(b.deps.Topics, b.deps.Approvals), nil
	}
	s, ok := domain.ParseTopicStatus(value)
	if !ok {
		return nil, domain.NewQueryParseError("Unrecognized value: %s", value)
	}
	return newStatusPredicate(b.deps.Topics, s), nil
}

func (b *Builder) is(ctx context.Context, value string) (Predicate, error) {
	if strings.EqualFold(value, "visible") {
		return b.IsVisible(), nil
	}
	return b.status(ctx, value)
}

func (b *Builder) visibleTo(ctx context.Context, who string) (Predicate, error) {
	if who == selfValue {
		return b.IsVisible(), nil
	}
	acc, err := b.deps.Accounts.Find(ctx, who)
	switch {
	case err == nil:
		return b.VisibleTo(domain.NewAccountUser(acc.ID)), nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("resolve account %q: %w", who, err)
	}

	g, err := b.deps.Groups.ByName(ctx, who)
	switch {
	case err == nil:
		return b.VisibleTo(domain.NewGroupUser(g.ID)), nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("resolve group %q: %w", who, err)
	}

	groups, err := b.deps.Groups.ByExternalName(ctx, who)
	if err != nil {
		return nil, fmt.Errorf("resolve external group %q: %w", who, err)
	}
	if len(groups) == 0 {
		return nil, domain.NewQueryParseError("No user or group matches %q.", who)
	}
	ids := make([]uuid.UUID, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	return b.VisibleTo(domain.NewGroupUser(ids...)), nil
}

func (b *Builder) owner(ctx context.Context, who string) (Predicate, error) {
	ids, err := b.accounts(ctx, who)
	if err != nil {
		return nil, err
	}
	ps := make([]Predicate, len(ids))
	for i, id := range ids {
		ps[i] = b.Owner(id)
	}
	return query.Or(ps...), nil
}

func (b *Builder) reviewer(ctx context.Context, who string) (Predicate, error) {
	ids, err := b.accounts(ctx, who)
	if err != nil {
		return nil, err
	}
	ps := make([]Predicate, len(ids))
	for i, id := range ids {
		ps[i] = b.Reviewer(id)
	}
	return query.Or(ps...), nil
}

// accounts resolves who to one or more account ids. "self" is the current
// user.
func (b *Builder) accounts(ctx context.Context, who string) ([]uuid.UUID, error) {
	if who == selfValue {
		if !b.user.IsIdentified() {
			return nil, domain.NewQueryParseError("Must be signed-in to use %s", selfValue)
		}
		return []uuid.UUID{b.user.AccountID}, nil
	}
	ids, err := b.deps.Accounts.FindAll(ctx, who)
	if err != nil {
		return nil, fmt.Errorf("resolve account %q: %w", who, err)
	}
	if len(ids) == 0 {
		return nil, domain.NewQueryParseError("User %s not found", who)
	}
	return ids, nil
}

func (b *Builder) project(_ context.Context, name string) (Predicate, error) {
	if strings.HasPrefix(name, "^") {
		p, err := newRegexProjectPredicate(b.deps.Topics, name)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return newProjectPredicate(b.deps.Topics, name), nil
}

func (b *Builder) limit(_ context.Context, value string) (Predicate, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return nil, domain.NewQueryParseError("Invalid limit: %s", value)
	}
	if b.maxLimit > 0 && n > b.maxLimit {
		n = b.maxLimit
	}
	return b.Limit(n), nil
}

func (b *Builder) sortKeyBefore(_ context.Context, key string) (Predicate, error) {
	return b.SortKeyBefore(key), nil
}

func (b *Builder) sortKeyAfter(_ context.Context, key string) (Predicate, error) {
	return b.SortKeyAfter(key), nil
}

// defaultField resolves a bare term: a topic id or key, then an email
// address (owner or reviewer), then a substring of known project names.
func (b *Builder) defaultField(ctx context.Context, value string) (Predicate, error) {
	if topicIDPattern.MatchString(value) || topicKeyPattern.MatchString(value) {
		return b.topic(ctx, value)
	}

	if strings.Contains(value, "@") {
		ids, err := b.accounts(ctx, value)
		if err != nil {
			return nil, err
		}
		ps := make([]Predicate, 0, 2*len(ids))
		for _, id := range ids {
			ps = append(ps, b.Owner(id))
		}
		for _, id := range ids {
			ps = append(ps, b.Reviewer(id))
		}
		return query.Or(ps...), nil
	}

	names, err := b.deps.Projects.AllNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	var ps []Predicate
	for _, name := range names {
		if strings.Contains(name, value) {
			ps = append(ps, newProjectPredicate(b.deps.Topics, name))
		}
	}
	if len(ps) == 0 {
		return nil, domain.NewUnsupportedQueryError(value, "Unsupported query:"+value)
	}
	return query.Or(ps...), nil
}

// ---------------------------------------------------------------------------
// Tree inspection
// ---------------------------------------------------------------------------

// HasLimit reports whether p carries a limit term.
func HasLimit(p Predicate) bool {
	return query.Find(p, FieldLimit) != nil
}

// GetLimit returns the first limit in p, or 0.
func GetLimit(p Predicate) int {
	if l, ok := query.Find(p, FieldLimit).(*query.IntPredicate[*TopicData]); ok {
		return l.IntValue()
	}
	return 0
}

// HasSortKey reports whether p bounds the cursor in either direction.
func HasSortKey(p Predicate) bool {
	return query.Find(p, FieldSortKeyBefore) != nil || query.Find(p, FieldSortKeyAfter) != nil
}
