package topiclist

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/topicreview-backend/internal/accountcache"
	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// ForAccount builds the dashboard of target, or of u when target is nil.
// Topics u cannot see are left out. An unknown account, or an anonymous u
// without a target, is ErrNotFound.
func (s *Service) ForAccount(ctx context.Context, u *domain.User, target *uuid.UUID) (*Dashboard, error) {
	ctx, span := tracer.Start(ctx, "topiclist.ForAccount")
	defer span.End()

	var owner uuid.UUID
	switch {
	case target != nil:
		owner = *target
	case u.IsIdentified():
		owner = u.AccountID
	default:
		return nil, domain.ErrNotFound
	}

	found, err := s.accounts.GetByIDs(ctx, []uuid.UUID{owner})
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if len(found) == 0 {
		return nil, domain.ErrNotFound
	}

	var (
		openOwned, closedOwned []domain.Topic
		openReviewed           []domain.TopicID
		closedReviewed         []domain.TopicID
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		openOwned, err = s.topics.ByOwner(gctx, owner, domain.OpenTopicStatuses())
		return err
	})
	g.Go(func() error {
		var err error
		closedOwned, err = s.topics.ByOwner(gctx, owner, domain.ClosedTopicStatuses())
		return err
	})
	g.Go(func() error {
		var err error
		openReviewed, err = s.approvals.ReviewedBy(gctx, owner, domain.OpenTopicStatuses())
		return err
	})
	g.Go(func() error {
		var err error
		closedReviewed, err = s.approvals.ReviewedBy(gctx, owner, domain.ClosedTopicStatuses())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	d := &Dashboard{Owner: owner}
	d.ByOwner = s.filter(ctx, u, openOwned)
	d.Closed = s.filter(ctx, u, closedOwned)

	forReview, err := s.reviewed(ctx, u, openReviewed, d.ByOwner)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(forReview, func(a, b domain.TopicInfo) int { return cmp.Compare(a.ID, b.ID) })
	d.ForReview = forReview

	closed, err := s.reviewed(ctx, u, closedReviewed, d.Closed)
	if err != nil {
		return nil, err
	}
	if len(closed) > 0 {
		d.Closed = append(d.Closed, closed...)
		slices.SortStableFunc(d.Closed, func(a, b domain.TopicInfo) int { return cmp.Compare(b.SortKey, a.SortKey) })
	}

	want := []uuid.UUID{owner}
	for _, list := range [][]domain.TopicInfo{d.ByOwner, d.ForReview, d.Closed} {
		for _, t := range list {
			want = append(want, t.Owner)
		}
	}
	d.Accounts, err = accountcache.For(ctx, s.accounts).Fill(ctx, want)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// reviewed loads the reviewed topics not already listed in owned.
func (s *Service) reviewed(ctx context.Context, u *domain.User, ids []domain.TopicID, owned []domain.TopicInfo) ([]domain.TopicInfo, error) {
	set := roaring.New()
	for _, id := range ids {
		set.Add(uint32(id))
	}
	for _, t := range owned {
		set.Remove(uint32(t.ID))
	}
	if set.IsEmpty() {
		return nil, nil
	}

	want := make([]domain.TopicID, 0, set.GetCardinality())
	for it := set.Iterator(); it.HasNext(); {
		want = append(want, domain.TopicID(it.Next()))
	}
	topics, err := s.topics.GetMany(ctx, want)
	if err != nil {
		return nil, fmt.Errorf("load reviewed topics: %w", err)
	}
	return s.filter(ctx, u, topics), nil
}

func (s *Service) filter(ctx context.Context, u *domain.User, topics []domain.Topic) []domain.TopicInfo {
	out := make([]domain.TopicInfo, 0, len(topics))
	for i := range topics {
		t := &topics[i]
		if s.canRead(ctx, t, u) {
			out = append(out, domain.NewTopicInfo(t))
		}
	}
	return out
}
