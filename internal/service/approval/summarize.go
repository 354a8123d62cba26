package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/accountcache"
	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// UserApprovals summarizes the votes account cast on the current change-set
// of each topic. Topics u cannot see are left out.
func (s *Service) UserApprovals(ctx context.Context, u *domain.User, ids []domain.TopicID, account uuid.UUID) (*SummarySet, error) {
	return s.summarize(ctx, u, ids, []uuid.UUID{account},
		func(ctx context.Context, cs domain.ChangeSetID) ([]domain.Approval, error) {
			return s.approvals.ByChangeSetAccount(ctx, cs, account)
		},
		func(_, _ domain.Approval) bool { return true },
	)
}

// StrongestApprovals summarizes, per category, the strongest vote any
// reviewer cast on the current change-set of each topic. Topics u cannot
// see are left out.
func (s *Service) StrongestApprovals(ctx context.Context, u *domain.User, ids []domain.TopicID) (*SummarySet, error) {
	return s.summarize(ctx, u, ids, nil, s.approvals.ByChangeSet, s.stronger)
}

// stronger reports whether next replaces prev: a larger magnitude wins, and
// equal magnitudes go by the tie-break rule.
func (s *Service) stronger(prev, next domain.Approval) bool {
	o, n := abs(prev.Value), abs(next.Value)
	if o != n {
		return o < n
	}
	if s.policy.TieBreak == domain.TieBreakPositive {
		return next.Value > prev.Value
	}
	return next.Value < prev.Value
}

func abs(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

type loadFunc func(ctx context.Context, cs domain.ChangeSetID) ([]domain.Approval, error)

func (s *Service) summarize(
	ctx context.Context,
	u *domain.User,
	ids []domain.TopicID,
	want []uuid.UUID,
	load loadFunc,
	keep func(prev, next domain.Approval) bool,
) (*SummarySet, error) {
	categories, err := s.categoryIndex(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make(map[domain.TopicID]Summary, len(ids))
	for _, id := range ids {
		t, err := s.readable(ctx, u, id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			continue
		}

		votes, err := load(ctx, t.CurrentChangeSetID())
		if err != nil {
			return nil, fmt.Errorf("load approvals of topic %s: %w", id, err)
		}

		m := make(map[string]domain.Approval)
		for _, a := range votes {
			if a.Category == s.policy.SubmitCategory {
				continue
			}
			if t.Status.IsOpen() {
				if c, ok := categories[a.Category]; ok {
					a.Value = c.Normalize(a.Value)
				}
			}
			if a.Value == 0 {
				continue
			}
			if prev, ok := m[a.Category]; ok && !keep(prev, a) {
				continue
			}
			m[a.Category] = a
		}
		for _, a := range m {
			want = append(want, a.Account)
		}
		summaries[id] = Summary{Approvals: m}
	}

	accounts, err := accountcache.For(ctx, s.accounts).Fill(ctx, want)
	if err != nil {
		return nil, err
	}
	return &SummarySet{Accounts: accounts, Summaries: summaries}, nil
}

// readable returns the topic if it exists and u may see it, or nil.
func (s *Service) readable(ctx context.Context, u *domain.User, id domain.TopicID) (*domain.Topic, error) {
	t, err := s.topics.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get topic %s: %w", id, err)
	}
	ok, err := s.control.CanRead(ctx, t, u)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("check topic %s: %w", id, err)
	}
	if !ok {
		s.log.DebugContext(ctx, "topic hidden from summary", slog.String("topic_id", id.String()))
		return nil, nil
	}
	return t, nil
}

func (s *Service) categoryIndex(ctx context.Context) (map[string]domain.ApprovalCategory, error) {
	all, err := s.categories.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list approval categories: %w", err)
	}
	out := make(map[string]domain.ApprovalCategory, len(all))
	for _, c := range all {
		out[c.ID] = c
	}
	return out, nil
}
