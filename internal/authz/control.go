// Package authz answers whether a user may see a topic. Decisions come from
// the check_permission function in the database through a melange Checker
// and are cached only within one request scope.
package authz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pthm/melange/melange"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

//go:generate moq -out checker_mock_test.go -pkg authz . checker

// Object types and relations known to check_permission.
const (
	TypeUser  melange.ObjectType = "user"
	TypeGroup melange.ObjectType = "group"
	TypeTopic melange.ObjectType = "topic"

	RelCanView melange.Relation = "can_view"
)

// anyone is the wildcard subject checked for anonymous users.
const anyone = "*"

type checker interface {
	Check(ctx context.Context, subject melange.SubjectLike, relation melange.RelationLike, object melange.ObjectLike) (bool, error)
}

// NewChecker returns an uncached melange checker over db. Caching happens
// per scope, see ControlFactory.Scope.
func NewChecker(db *sql.DB) *melange.Checker {
	return melange.NewChecker(db)
}

// Topic returns the authorization object for a topic.
func Topic(id domain.TopicID) melange.Object {
	return melange.Object{Type: TypeTopic, ID: id.String()}
}

// Subjects returns the subjects a check runs for u: the account, then each
// group. The anonymous user is the wildcard user.
func Subjects(u *domain.User) []melange.Object {
	var out []melange.Object
	if u.IsIdentified() {
		out = append(out, melange.Object{Type: TypeUser, ID: u.AccountID.String()})
	}
	if u != nil {
		for _, g := range u.Groups {
			out = append(out, melange.Object{Type: TypeGroup, ID: g.String()})
		}
	}
	if len(out) == 0 {
		out = append(out, melange.Object{Type: TypeUser, ID: anyone})
	}
	return out
}

// ---------------------------------------------------------------------------
// ControlFactory
// ---------------------------------------------------------------------------

// ControlFactory hands out per-topic controls.
type ControlFactory struct {
	checker checker
	ttl     time.Duration
}

// NewControlFactory creates a ControlFactory. Decisions made under a context
// returned by Scope are cached for at most ttl; a non-positive ttl disables
// caching.
func NewControlFactory(c checker, ttl time.Duration) *ControlFactory {
	return &ControlFactory{checker: c, ttl: ttl}
}

type contextKey string

const cacheKey contextKey = "authz.decisions"

// Scope returns ctx carrying a fresh decision cache. Checks made under ctx
// share it; checks under another scope or none never see its entries.
func (f *ControlFactory) Scope(ctx context.Context) context.Context {
	if f.ttl <= 0 {
		return ctx
	}
	return context.WithValue(ctx, cacheKey, melange.Cache(melange.NewCache(melange.WithTTL(f.ttl))))
}

// Middleware opens a decision cache scope per request.
func Middleware(f *ControlFactory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(f.Scope(r.Context())))
		})
	}
}

func (f *ControlFactory) checkerFor(ctx context.Context) checker {
	if cache, ok := ctx.Value(cacheKey).(melange.Cache); ok {
		return cachedChecker{next: f.checker, cache: cache}
	}
	return f.checker
}

// ControlFor returns the control of t for u. A nil topic is ErrNotFound.
func (f *ControlFactory) ControlFor(ctx context.Context, t *domain.Topic, u *domain.User) (*TopicControl, error) {
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if u == nil {
		u = domain.Anonymous()
	}
	return &TopicControl{checker: f.checkerFor(ctx), topic: t, user: u}, nil
}

// CanRead reports whether u may see t. Listing callers use it to drop
// topics silently, so a missing topic is not an error.
func (f *ControlFactory) CanRead(ctx context.Context, t *domain.Topic, u *domain.User) (bool, error) {
	ctl, err := f.ControlFor(ctx, t, u)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ctl.IsVisible(ctx)
}

// cachedChecker answers repeated checks from a scope's cache. Failed checks
// are not cached.
type cachedChecker struct {
	next  checker
	cache melange.Cache
}

func (c cachedChecker) Check(ctx context.Context, subject melange.SubjectLike, relation melange.RelationLike, object melange.ObjectLike) (bool, error) {
	s, r, o := subject.FGASubject(), relation.FGARelation(), object.FGAObject()
	if ok, err, found := c.cache.Get(s, r, o); found {
		return ok, err
	}
	ok, err := c.next.Check(ctx, subject, relation, object)
	if err == nil {
		c.cache.Set(s, r, o, ok, nil)
	}
	return ok, err
}

// ---------------------------------------------------------------------------
// TopicControl
// ---------------------------------------------------------------------------

// TopicControl is the capability check of one user on one topic.
type TopicControl struct {
	checker checker
	topic   *domain.Topic
	user    *domain.User
}

func (c *TopicControl) Topic() *domain.Topic { return c.topic }

func (c *TopicControl) User() *domain.User { return c.user }

// IsOwner reports whether the user owns the topic.
func (c *TopicControl) IsOwner() bool {
	return c.user.IsIdentified() && c.user.AccountID == c.topic.Owner
}

// IsVisible reports whether the user may see the topic. Owners always can.
func (c *TopicControl) IsVisible(ctx context.Context) (bool, error) {
	if c.IsOwner() {
		return true, nil
	}
	object := Topic(c.topic.ID)
	for _, s := range Subjects(c.user) {
		ok, err := c.checker.Check(ctx, s, RelCanView, object)
		if err != nil {
			return false, fmt.Errorf("check %s %s %s: %w", s, RelCanView, object, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
