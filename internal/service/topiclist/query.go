package topiclist

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/heartmarshall/topicreview-backend/internal/accountcache"
	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// AllQueryNext returns the page of query results older than pos, newest
// first.
func (s *Service) AllQueryNext(ctx context.Context, u *domain.User, query, pos string, pageSize int) (*Page, error) {
	return s.page(ctx, u, query, pos, pageSize, domain.ScanDescending)
}

// AllQueryPrev returns the page of query results newer than pos, newest
// first.
func (s *Service) AllQueryPrev(ctx context.Context, u *domain.User, query, pos string, pageSize int) (*Page, error) {
	return s.page(ctx, u, query, pos, pageSize, domain.ScanAscending)
}

// page reads one row past the page to learn whether more results exist.
// Previous pages are read ascending from pos and flipped for display.
func (s *Service) page(
	ctx context.Context,
	u *domain.User,
	query, pos string,
	pageSize int,
	dir domain.ScanDirection,
) (*Page, error) {
	ctx, span := tracer.Start(ctx, "topiclist.page")
	defer span.End()

	limit, err := s.safePageSize(pageSize)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("topiclist.limit", limit), attribute.String("topiclist.dir", string(dir)))

	topics, err := s.search.Search(ctx, u, query, pos, limit+1, dir)
	if err != nil {
		return nil, err
	}

	atEnd := len(topics) <= limit
	if !atEnd {
		topics = topics[:limit]
	}
	if dir == domain.ScanAscending {
		slices.Reverse(topics)
	}

	infos := make([]domain.TopicInfo, 0, len(topics))
	owners := make([]uuid.UUID, 0, len(topics))
	for _, t := range topics {
		infos = append(infos, domain.NewTopicInfo(t))
		owners = append(owners, t.Owner)
	}
	accounts, err := accountcache.For(ctx, s.accounts).Fill(ctx, owners)
	if err != nil {
		return nil, err
	}
	return &Page{Topics: infos, AtEnd: atEnd, Accounts: accounts}, nil
}

// safePageSize caps pageSize to the query limit. Non-positive sizes ask for
// the full limit.
func (s *Service) safePageSize(pageSize int) (int, error) {
	if s.maxLimit <= 0 {
		return 0, domain.ErrSearchDisabled
	}
	if pageSize > 0 && pageSize <= s.maxLimit {
		return pageSize, nil
	}
	return s.maxLimit, nil
}
