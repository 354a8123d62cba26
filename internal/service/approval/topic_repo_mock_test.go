package approval

import (
	"context"
	"sync"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

var _ topicRepo = &topicRepoMock{}

type topicRepoMock struct {
	GetFunc func(ctx context.Context, id domain.TopicID) (*domain.Topic, error)

	calls struct {
		Get []struct {
			Ctx context.Context
			ID  domain.TopicID
		}
	}
	lockGet sync.RWMutex
}

func (mock *topicRepoMock) Get(ctx context.Context, id domain.TopicID) (*domain.Topic, error) {
	if mock.GetFunc == nil {
		panic("topicRepoMock.GetFunc: method is nil but topicRepo.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  domain.TopicID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *topicRepoMock) GetCalls() []struct {
	Ctx context.Context
	ID  domain.TopicID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}
