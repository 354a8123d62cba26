package topiclist

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

var _ topicRepo = &topicRepoMock{}

type topicRepoMock struct {
	ByOwnerFunc func(ctx context.Context, owner uuid.UUID, statuses []domain.TopicStatus) ([]domain.Topic, error)
	GetFunc     func(ctx context.Context, id domain.TopicID) (*domain.Topic, error)
	GetManyFunc func(ctx context.Context, ids []domain.TopicID) ([]domain.Topic, error)

	calls struct {
		ByOwner []struct {
			Ctx      context.Context
			Owner    uuid.UUID
			Statuses []domain.TopicStatus
		}
		Get []struct {
			Ctx context.Context
			Id  domain.TopicID
		}
		GetMany []struct {
			Ctx context.Context
			Ids []domain.TopicID
		}
	}
	lockByOwner sync.RWMutex
	lockGet     sync.RWMutex
	lockGetMany sync.RWMutex
}

func (mock *topicRepoMock) ByOwner(ctx context.Context, owner uuid.UUID, statuses []domain.TopicStatus) ([]domain.Topic, error) {
	if mock.ByOwnerFunc == nil {
		panic("topicRepoMock.ByOwnerFunc: method is nil but topicRepo.ByOwner was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Owner    uuid.UUID
		Statuses []domain.TopicStatus
	}{Ctx: ctx, Owner: owner, Statuses: statuses}
	mock.lockByOwner.Lock()
	mock.calls.ByOwner = append(mock.calls.ByOwner, callInfo)
	mock.lockByOwner.Unlock()
	return mock.ByOwnerFunc(ctx, owner, statuses)
}

func (mock *topicRepoMock) ByOwnerCalls() []struct {
	Ctx      context.Context
	Owner    uuid.UUID
	Statuses []domain.TopicStatus
} {
	mock.lockByOwner.RLock()
	calls := mock.calls.ByOwner
	mock.lockByOwner.RUnlock()
	return calls
}

func (mock *topicRepoMock) Get(ctx context.Context, id domain.TopicID) (*domain.Topic, error) {
	if mock.GetFunc == nil {
		panic("topicRepoMock.GetFunc: method is nil but topicRepo.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  domain.TopicID
	}{Ctx: ctx, Id: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *topicRepoMock) GetCalls() []struct {
	Ctx context.Context
	Id  domain.TopicID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *topicRepoMock) GetMany(ctx context.Context, ids []domain.TopicID) ([]domain.Topic, error) {
	if mock.GetManyFunc == nil {
		panic("topicRepoMock.GetManyFunc: method is nil but topicRepo.GetMany was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ids []domain.TopicID
	}{Ctx: ctx, Ids: ids}
	mock.lockGetMany.Lock()
	mock.calls.GetMany = append(mock.calls.GetMany, callInfo)
	mock.lockGetMany.Unlock()
	return mock.GetManyFunc(ctx, ids)
}

func (mock *topicRepoMock) GetManyCalls() []struct {
	Ctx context.Context
	Ids []domain.TopicID
} {
	mock.lockGetMany.RLock()
	calls := mock.calls.GetMany
	mock.lockGetMany.RUnlock()
	return calls
}
