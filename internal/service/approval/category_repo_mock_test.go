package approval

import (
	"context"
	"sync"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

var _ categoryRepo = &categoryRepoMock{}

type categoryRepoMock struct {
	AllFunc func(ctx context.Context) ([]domain.ApprovalCategory, error)

	calls struct {
		All []struct {
			Ctx context.Context
		}
	}
	lockAll sync.RWMutex
}

func (mock *categoryRepoMock) All(ctx context.Context) ([]domain.ApprovalCategory, error) {
	if mock.AllFunc == nil {
		panic("categoryRepoMock.AllFunc: method is nil but categoryRepo.All was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockAll.Lock()
	mock.calls.All = append(mock.calls.All, callInfo)
	mock.lockAll.Unlock()
	return mock.AllFunc(ctx)
}

func (mock *categoryRepoMock) AllCalls() []struct {
	Ctx context.Context
} {
	mock.lockAll.RLock()
	calls := mock.calls.All
	mock.lockAll.RUnlock()
	return calls
}
