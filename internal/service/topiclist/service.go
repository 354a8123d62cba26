// Package topiclist serves the topic list screens: paged query results,
// the per-account dashboard and single topic detail.
package topiclist

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

//go:generate moq -out searcher_mock_test.go -pkg topiclist . searcher
//go:generate moq -out topic_repo_mock_test.go -pkg topiclist . topicRepo
//go:generate moq -out approval_repo_mock_test.go -pkg topiclist . approvalRepo
//go:generate moq -out account_repo_mock_test.go -pkg topiclist . accountRepo
//go:generate moq -out visibility_mock_test.go -pkg topiclist . visibility

var tracer = otel.Tracer("topicreview.topiclist")

type searcher interface {
	Search(ctx context.Context, u *domain.User, text, pos string, limit int, dir domain.ScanDirection) ([]*domain.Topic, error)
}

type topicRepo interface {
	Get(ctx context.Context, id domain.TopicID) (*domain.Topic, error)
	GetMany(ctx context.Context, ids []domain.TopicID) ([]domain.Topic, error)
	ByOwner(ctx context.Context, owner uuid.UUID, statuses []domain.TopicStatus) ([]domain.Topic, error)
}

type approvalRepo interface {
	ByChangeSet(ctx context.Context, id domain.ChangeSetID) ([]domain.Approval, error)
	ReviewedBy(ctx context.Context, account uuid.UUID, statuses []domain.TopicStatus) ([]domain.TopicID, error)
}

type accountRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Account, error)
}

type visibility interface {
	CanRead(ctx context.Context, t *domain.Topic, u *domain.User) (bool, error)
}

// Page is one page of query results.
type Page struct {
	Topics   []domain.TopicInfo               `json:"topics"`
	AtEnd    bool                             `json:"atEnd"`
	Accounts map[uuid.UUID]domain.AccountInfo `json:"accounts"`
}

// Dashboard lists the topics an account owns and reviews.
type Dashboard struct {
	Owner     uuid.UUID                        `json:"owner"`
	ByOwner   []domain.TopicInfo               `json:"byOwner"`
	ForReview []domain.TopicInfo               `json:"forReview"`
	Closed    []domain.TopicInfo               `json:"closed"`
	Accounts  map[uuid.UUID]domain.AccountInfo `json:"accounts"`
}

// Detail is a single topic with the votes on its current change-set.
type Detail struct {
	Topic     domain.TopicInfo                 `json:"topic"`
	Approvals []domain.Approval                `json:"approvals"`
	Accounts  map[uuid.UUID]domain.AccountInfo `json:"accounts"`
}

// Service implements the topic list operations.
type Service struct {
	log       *slog.Logger
	search    searcher
	topics    topicRepo
	approvals approvalRepo
	accounts  accountRepo
	control   visibility
	maxLimit  int
}

// NewService creates a new topic list service. A maxLimit of zero or less
// disables query pages.
func NewService(
	log *slog.Logger,
	search searcher,
	topics topicRepo,
	approvals approvalRepo,
	accounts accountRepo,
	control visibility,
	maxLimit int,
) *Service {
	return &Service{
		log:       log.With("service", "topiclist"),
		search:    search,
		topics:    topics,
		approvals: approvals,
		accounts:  accounts,
		control:   control,
		maxLimit:  maxLimit,
	}
}

// canRead reports whether u may see t. Failed checks hide the topic.
func (s *Service) canRead(ctx context.Context, t *domain.Topic, u *domain.User) bool {
	ok, err := s.control.CanRead(ctx, t, u)
	if err != nil {
		s.log.WarnContext(ctx, "visibility check failed",
			slog.String("topic_id", t.ID.String()),
			slog.String("error", err.Error()),
		)
		return false
	}
	return ok
}
