package topiclist

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

var _ approvalRepo = &approvalRepoMock{}

type approvalRepoMock struct {
	ByChangeSetFunc func(ctx context.Context, id domain.ChangeSetID) ([]domain.Approval, error)
	ReviewedByFunc  func(ctx context.Context, account uuid.UUID, statuses []domain.TopicStatus) ([]domain.TopicID, error)

	calls struct {
		ByChangeSet []struct {
			Ctx context.Context
			Id  domain.ChangeSetID
		}
		ReviewedBy []struct {
			Ctx      context.Context
			Account  uuid.UUID
			Statuses []domain.TopicStatus
		}
	}
	lockByChangeSet sync.RWMutex
	lockReviewedBy  sync.RWMutex
}

func (mock *approvalRepoMock) ByChangeSet(ctx context.Context, id domain.ChangeSetID) ([]domain.Approval, error) {
	if mock.ByChangeSetFunc == nil {
		panic("approvalRepoMock.ByChangeSetFunc: method is nil but approvalRepo.ByChangeSet was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  domain.ChangeSetID
	}{Ctx: ctx, Id: id}
	mock.lockByChangeSet.Lock()
	mock.calls.ByChangeSet = append(mock.calls.ByChangeSet, callInfo)
	mock.lockByChangeSet.Unlock()
	return mock.ByChangeSetFunc(ctx, id)
}

func (mock *approvalRepoMock) ByChangeSetCalls() []struct {
	Ctx context.Context
	Id  domain.ChangeSetID
} {
	mock.lockByChangeSet.RLock()
	calls := mock.calls.ByChangeSet
	mock.lockByChangeSet.RUnlock()
	return calls
}

func (mock *approvalRepoMock) ReviewedBy(ctx context.Context, account uuid.UUID, statuses []domain.TopicStatus) ([]domain.TopicID, error) {
	if mock.ReviewedByFunc == nil {
		panic("approvalRepoMock.ReviewedByFunc: method is nil but approvalRepo.ReviewedBy was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Account  uuid.UUID
		Statuses []domain.TopicStatus
	}{Ctx: ctx, Account: account, Statuses: statuses}
	mock.lockReviewedBy.Lock()
	mock.calls.ReviewedBy = append(mock.calls.ReviewedBy, callInfo)
	mock.lockReviewedBy.Unlock()
	return mock.ReviewedByFunc(ctx, account, statuses)
}

func (mock *approvalRepoMock) ReviewedByCalls() []struct {
	Ctx      context.Context
	Account  uuid.UUID
	Statuses []domain.TopicStatus
} {
	mock.lockReviewedBy.RLock()
	calls := mock.calls.ReviewedBy
	mock.lockReviewedBy.RUnlock()
	return calls
}
