package topicquery

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

//go:generate moq -out topic_store_mock_test.go -pkg topicquery . topicStore
//go:generate moq -out visibility_mock_test.go -pkg topicquery . visibility

// ---------------------------------------------------------------------------
// Consumer-defined interfaces
// ---------------------------------------------------------------------------

type topicGetter interface {
	Get(ctx context.Context, id domain.TopicID) (*domain.Topic, error)
}

type topicStore interface {
	topicGetter
	GetMany(ctx context.Context, ids []domain.TopicID) ([]domain.Topic, error)
	ScanByStatus(ctx context.Context, statuses []domain.TopicStatus, sortKey string, limit int, dir domain.ScanDirection) ([]domain.Topic, error)
	ByKeyPrefix(ctx context.Context, prefix string) ([]domain.Topic, error)
}

type approvalsByTopic interface {
	ByTopic(ctx context.Context, id domain.TopicID) ([]domain.Approval, error)
}

type approvalStore interface {
	approvalsByTopic
	ByChangeSet(ctx context.Context, id domain.ChangeSetID) ([]domain.Approval, error)
}

type accountResolver interface {
	// Find returns the single account best matching who, or ErrNotFound.
	Find(ctx context.Context, who string) (*domain.Account, error)
	// FindAll returns every account matching who.
	FindAll(ctx context.Context, who string) ([]uuid.UUID, error)
}

type groupResolver interface {
	// ByName returns the group with the given name, or ErrNotFound.
	ByName(ctx context.Context, name string) (*domain.Group, error)
	ByExternalName(ctx context.Context, name string) ([]domain.Group, error)
}

type projectLister interface {
	AllNames(ctx context.Context) ([]string, error)
}

type visibility interface {
	// CanRead reports whether u may see t. A vanished topic is not readable.
	CanRead(ctx context.Context, t *domain.Topic, u *domain.User) (bool, error)
}

// Deps are the collaborators predicates, sources and the builder read through.
type Deps struct {
	Topics    topicStore
	Approvals approvalStore
	Accounts  accountResolver
	Groups    groupResolver
	Projects  projectLister
	Control   visibility
}
