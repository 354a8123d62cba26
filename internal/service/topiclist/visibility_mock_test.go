package topiclist

import (
	"context"
	"sync"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

var _ visibility = &visibilityMock{}

type visibilityMock struct {
	CanReadFunc func(ctx context.Context, t *domain.Topic, u *domain.User) (bool, error)

	calls struct {
		CanRead []struct {
			Ctx context.Context
			T   *domain.Topic
			U   *domain.User
		}
	}
	lockCanRead sync.RWMutex
}

func (mock *visibilityMock) CanRead(ctx context.Context, t *domain.Topic, u *domain.User) (bool, error) {
	if mock.CanReadFunc == nil {
		panic("visibilityMock.CanReadFunc: method is nil but visibility.CanRead was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T   *domain.Topic
		U   *domain.User
	}{Ctx: ctx, T: t, U: u}
	mock.lockCanRead.Lock()
	mock.calls.CanRead = append(mock.calls.CanRead, callInfo)
	mock.lockCanRead.Unlock()
	return mock.CanReadFunc(ctx, t, u)
}

func (mock *visibilityMock) CanReadCalls() []struct {
	Ctx context.Context
	T   *domain.Topic
	U   *domain.User
} {
	mock.lockCanRead.RLock()
	calls := mock.calls.CanRead
	mock.lockCanRead.RUnlock()
	return calls
}
