package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/internal/service/approval"
)

var _ approvalSummarizer = &approvalSummarizerMock{}

type approvalSummarizerMock struct {
	StrongestApprovalsFunc func(ctx context.Context, u *domain.User, ids []domain.TopicID) (*approval.SummarySet, error)
	UserApprovalsFunc      func(ctx context.Context, u *domain.User, ids []domain.TopicID, account uuid.UUID) (*approval.SummarySet, error)

	calls struct {
		StrongestApprovals []struct {
			Ctx context.Context
			U   *domain.User
			Ids []domain.TopicID
		}
		UserApprovals []struct {
			Ctx     context.Context
			U       *domain.User
			Ids     []domain.TopicID
			Account uuid.UUID
		}
	}
	lockStrongestApprovals sync.RWMutex
	lockUserApprovals      sync.RWMutex
}

func (mock *approvalSummarizerMock) StrongestApprovals(ctx context.Context, u *domain.User, ids []domain.TopicID) (*approval.SummarySet, error) {
	if mock.StrongestApprovalsFunc == nil {
		panic("approvalSummarizerMock.StrongestApprovalsFunc: method is nil but approvalSummarizer.StrongestApprovals was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.User
		Ids []domain.TopicID
	}{Ctx: ctx, U: u, Ids: ids}
	mock.lockStrongestApprovals.Lock()
	mock.calls.StrongestApprovals = append(mock.calls.StrongestApprovals, callInfo)
	mock.lockStrongestApprovals.Unlock()
	return mock.StrongestApprovalsFunc(ctx, u, ids)
}

func (mock *approvalSummarizerMock) StrongestApprovalsCalls() []struct {
	Ctx context.Context
	U   *domain.User
	Ids []domain.TopicID
} {
	mock.lockStrongestApprovals.RLock()
	calls := mock.calls.StrongestApprovals
	mock.lockStrongestApprovals.RUnlock()
	return calls
}

func (mock *approvalSummarizerMock) UserApprovals(ctx context.Context, u *domain.User, ids []domain.TopicID, account uuid.UUID) (*approval.SummarySet, error) {
	if mock.UserApprovalsFunc == nil {
		panic("approvalSummarizerMock.UserApprovalsFunc: method is nil but approvalSummarizer.UserApprovals was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		U       *domain.User
		Ids     []domain.TopicID
		Account uuid.UUID
	}{Ctx: ctx, U: u, Ids: ids, Account: account}
	mock.lockUserApprovals.Lock()
	mock.calls.UserApprovals = append(mock.calls.UserApprovals, callInfo)
	mock.lockUserApprovals.Unlock()
	return mock.UserApprovalsFunc(ctx, u, ids, account)
}

func (mock *approvalSummarizerMock) UserApprovalsCalls() []struct {
	Ctx     context.Context
	U       *domain.User
	Ids     []domain.TopicID
	Account uuid.UUID
} {
	mock.lockUserApprovals.RLock()
	calls := mock.calls.UserApprovals
	mock.lockUserApprovals.RUnlock()
	return calls
}
