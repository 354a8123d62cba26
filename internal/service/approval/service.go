// Package approval summarizes review votes per topic for list screens.
package approval

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

//go:generate moq -out topic_repo_mock_test.go -pkg approval . topicRepo
//go:generate moq -out approval_repo_mock_test.go -pkg approval . approvalRepo
//go:generate moq -out category_repo_mock_test.go -pkg approval . categoryRepo
//go:generate moq -out visibility_mock_test.go -pkg approval . visibility
//go:generate moq -out account_repo_mock_test.go -pkg approval . accountRepo

type topicRepo interface {
	Get(ctx context.Context, id domain.TopicID) (*domain.Topic, error)
}

type approvalRepo interface {
	ByChangeSet(ctx context.Context, id domain.ChangeSetID) ([]domain.Approval, error)
	ByChangeSetAccount(ctx context.Context, id domain.ChangeSetID, account uuid.UUID) ([]domain.Approval, error)
}

type categoryRepo interface {
	All(ctx context.Context) ([]domain.ApprovalCategory, error)
}

type visibility interface {
	CanRead(ctx context.Context, t *domain.Topic, u *domain.User) (bool, error)
}

type accountRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Account, error)
}

// Policy holds the workflow rules applied while summarizing.
type Policy struct {
	// SubmitCategory is never summarized.
	SubmitCategory string
	// TieBreak picks between equally strong votes of opposite sign.
	TieBreak domain.TieBreak
}

// Summary is the per-category view of one topic's current change-set.
type Summary struct {
	Approvals map[string]domain.Approval `json:"approvals"`
}

// SummarySet maps topics to summaries and carries the accounts they mention.
type SummarySet struct {
	Accounts  map[uuid.UUID]domain.AccountInfo `json:"accounts"`
	Summaries map[domain.TopicID]Summary       `json:"summaries"`
}

// Service computes approval summaries.
type Service struct {
	log        *slog.Logger
	topics     topicRepo
	approvals  approvalRepo
	categories categoryRepo
	control    visibility
	accounts   accountRepo
	policy     Policy
}

// NewService creates a new approval service.
func NewService(
	log *slog.Logger,
	topics topicRepo,
	approvals approvalRepo,
	categories categoryRepo,
	control visibility,
	accounts accountRepo,
	policy Policy,
) *Service {
	if policy.TieBreak == "" {
		policy.TieBreak = domain.TieBreakNegative
	}
	return &Service{
		log:        log.With("service", "approval"),
		topics:     topics,
		approvals:  approvals,
		categories: categories,
		control:    control,
		accounts:   accounts,
		policy:     policy,
	}
}
