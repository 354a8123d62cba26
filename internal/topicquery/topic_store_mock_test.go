package topicquery

import (
	"context"
	"sync"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

var _ topicStore = &topicStoreMock{}

type topicStoreMock struct {
	ByKeyPrefixFunc  func(ctx context.Context, prefix string) ([]domain.Topic, error)
	GetFunc          func(ctx context.Context, id domain.TopicID) (*domain.Topic, error)
	GetManyFunc      func(ctx context.Context, ids []domain.TopicID) ([]domain.Topic, error)
	ScanByStatusFunc func(ctx context.Context, statuses []domain.TopicStatus, sortKey string, limit int, dir domain.ScanDirection) ([]domain.Topic, error)

	calls struct {
		ByKeyPrefix []struct {
			Ctx    context.Context
			Prefix string
		}
		Get []struct {
			Ctx context.Context
			ID  domain.TopicID
		}
		GetMany []struct {
			Ctx context.Context
			IDs []domain.TopicID
		}
		ScanByStatus []struct {
			Ctx      context.Context
			Statuses []domain.TopicStatus
			SortKey  string
			Limit    int
			Dir      domain.ScanDirection
		}
	}
	lockByKeyPrefix  sync.RWMutex
	lockGet          sync.RWMutex
	lockGetMany      sync.RWMutex
	lockScanByStatus sync.RWMutex
}

func (mock *topicStoreMock) ByKeyPrefix(ctx context.Context, prefix string) ([]domain.Topic, error) {
	if mock.ByKeyPrefixFunc == nil {
		panic("topicStoreMock.ByKeyPrefixFunc: method is nil but topicStore.ByKeyPrefix was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Prefix string
	}{Ctx: ctx, Prefix: prefix}
	mock.lockByKeyPrefix.Lock()
	mock.calls.ByKeyPrefix = append(mock.calls.ByKeyPrefix, callInfo)
	mock.lockByKeyPrefix.Unlock()
	return mock.ByKeyPrefixFunc(ctx, prefix)
}

func (mock *topicStoreMock) ByKeyPrefixCalls() []struct {
	Ctx    context.Context
	Prefix string
} {
	mock.lockByKeyPrefix.RLock()
	calls := mock.calls.ByKeyPrefix
	mock.lockByKeyPrefix.RUnlock()
	return calls
}

func (mock *topicStoreMock) Get(ctx context.Context, id domain.TopicID) (*domain.Topic, error) {
	if mock.GetFunc == nil {
		panic("topicStoreMock.GetFunc: method is nil but topicStore.Get was just called")
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

func (mock *topicStoreMock) GetCalls() []struct {
	Ctx context.Context
	ID  domain.TopicID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *topicStoreMock) GetMany(ctx context.Context, ids []domain.TopicID) ([]domain.Topic, error) {
	if mock.GetManyFunc == nil {
		panic("topicStoreMock.GetManyFunc: method is nil but topicStore.GetMany was just called")
	}
	callInfo := struct {
		Ctx context.Context
		IDs []domain.TopicID
	}{Ctx: ctx, IDs: ids}
	mock.lockGetMany.Lock()
	mock.calls.GetMany = append(mock.calls.GetMany, callInfo)
	mock.lockGetMany.Unlock()
	return mock.GetManyFunc(ctx, ids)
}

func (mock *topicStoreMock) GetManyCalls() []struct {
	Ctx context.Context
	IDs []domain.TopicID
} {
	mock.lockGetMany.RLock()
	calls := mock.calls.GetMany
	mock.lockGetMany.RUnlock()
	return calls
}

func (mock *topicStoreMock) ScanByStatus(ctx context.Context, statuses []domain.TopicStatus, sortKey string, limit int, dir domain.ScanDirection) ([]domain.Topic, error) {
	if mock.ScanByStatusFunc == nil {
		panic("topicStoreMock.ScanByStatusFunc: method is nil but topicStore.ScanByStatus was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Statuses []domain.TopicStatus
		SortKey  string
		Limit    int
		Dir      domain.ScanDirection
	}{Ctx: ctx, Statuses: statuses, SortKey: sortKey, Limit: limit, Dir: dir}
	mock.lockScanByStatus.Lock()
	mock.calls.ScanByStatus = append(mock.calls.ScanByStatus, callInfo)
	mock.lockScanByStatus.Unlock()
	return mock.ScanByStatusFunc(ctx, statuses, sortKey, limit, dir)
}

func (mock *topicStoreMock) ScanByStatusCalls() []struct {
	Ctx      context.Context
	Statuses []domain.TopicStatus
	SortKey  string
	Limit    int
	Dir      domain.ScanDirection
} {
	mock.lockScanByStatus.RLock()
	calls := mock.calls.ScanByStatus
	mock.lockScanByStatus.RUnlock()
	return calls
}
