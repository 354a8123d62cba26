package topiclist

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/accountcache"
	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// Get returns the detail of topic id. A topic u cannot see is ErrNotFound,
// the same as a missing one.
func (s *Service) Get(ctx context.Context, u *domain.User, id domain.TopicID) (*Detail, error) {
	ctx, span := tracer.Start(ctx, "topiclist.Get")
	defer span.End()

	t, err := s.topics.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	ok, err := s.control.CanRead(ctx, t, u)
	if err != nil {
		return nil, fmt.Errorf("check topic: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	approvals, err := s.approvals.ByChangeSet(ctx, t.CurrentChangeSetID())
	if err != nil {
		return nil, fmt.Errorf("get approvals: %w", err)
	}
	if approvals == nil {
		approvals = []domain.Approval{}
	}

	want := make([]uuid.UUID, 0, len(approvals)+1)
	want = append(want, t.Owner)
	for _, a := range approvals {
		want = append(want, a.Account)
	}
	accounts, err := accountcache.For(ctx, s.accounts).Fill(ctx, want)
	if err != nil {
		return nil, err
	}
	return &Detail{Topic: domain.NewTopicInfo(t), Approvals: approvals, Accounts: accounts}, nil
}
