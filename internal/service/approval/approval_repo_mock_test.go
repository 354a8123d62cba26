package approval

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

var _ approvalRepo = &approvalRepoMock{}

type approvalRepoMock struct {
	ByChangeSetFunc        func(ctx context.Context, id domain.ChangeSetID) ([]domain.Approval, error)
	ByChangeSetAccountFunc func(ctx context.Context, id domain.ChangeSetID, account uuid.UUID) ([]domain.Approval, error)

	calls struct {
		ByChangeSet []struct {
			Ctx context.Context
			ID  domain.ChangeSetID
		}
		ByChangeSetAccount []struct {
			Ctx     context.Context
			ID      domain.ChangeSetID
			Account uuid.UUID
		}
	}
	lockByChangeSet        sync.RWMutex
	lockByChangeSetAccount sync.RWMutex
}

func (mock *approvalRepoMock) ByChangeSet(ctx context.Context, id domain.ChangeSetID) ([]domain.Approval, error) {
	if mock.ByChangeSetFunc == nil {
		panic("approvalRepoMock.ByChangeSetFunc: method is nil but approvalRepo.ByChangeSet was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  domain.ChangeSetID
	}{Ctx: ctx, ID: id}
	mock.lockByChangeSet.Lock()
	mock.calls.ByChangeSet = append(mock.calls.ByChangeSet, callInfo)
	mock.lockByChangeSet.Unlock()
	return mock.ByChangeSetFunc(ctx, id)
}

func (mock *approvalRepoMock) ByChangeSetCalls() []struct {
	Ctx context.Context
	ID  domain.ChangeSetID
} {
	mock.lockByChangeSet.RLock()
	calls := mock.calls.ByChangeSet
	mock.lockByChangeSet.RUnlock()
	return calls
}

func (mock *approvalRepoMock) ByChangeSetAccount(ctx context.Context, id domain.ChangeSetID, account uuid.UUID) ([]domain.Approval, error) {
	if mock.ByChangeSetAccountFunc == nil {
		panic("approvalRepoMock.ByChangeSetAccountFunc: method is nil but approvalRepo.ByChangeSetAccount was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      domain.ChangeSetID
		Account uuid.UUID
	}{Ctx: ctx, ID: id, Account: account}
	mock.lockByChangeSetAccount.Lock()
	mock.calls.ByChangeSetAccount = append(mock.calls.ByChangeSetAccount, callInfo)
	mock.lockByChangeSetAccount.Unlock()
	return mock.ByChangeSetAccountFunc(ctx, id, account)
}

func (mock *approvalRepoMock) ByChangeSetAccountCalls() []struct {
	Ctx     context.Context
	ID      domain.ChangeSetID
	Account uuid.UUID
} {
	mock.lockByChangeSetAccount.RLock()
	calls := mock.calls.ByChangeSetAccount
	mock.lockByChangeSetAccount.RUnlock()
	return calls
}
