package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/internal/service/topiclist"
)

var _ topicLister = &topicListerMock{}

type topicListerMock struct {
	AllQueryNextFunc func(ctx context.Context, u *domain.User, query string, pos string, pageSize int) (*topiclist.Page, error)
	AllQueryPrevFunc func(ctx context.Context, u *domain.User, query string, pos string, pageSize int) (*topiclist.Page, error)
	ForAccountFunc   func(ctx context.Context, u *domain.User, target *uuid.UUID) (*topiclist.Dashboard, error)
	GetFunc          func(ctx context.Context, u *domain.User, id domain.TopicID) (*topiclist.Detail, error)

	calls struct {
		AllQueryNext []struct {
			Ctx      context.Context
			U        *domain.User
			Query    string
			Pos      string
			PageSize int
		}
		AllQueryPrev []struct {
			Ctx      context.Context
			U        *domain.User
			Query    string
			Pos      string
			PageSize int
		}
		ForAccount []struct {
			Ctx    context.Context
			U      *domain.User
			Target *uuid.UUID
		}
		Get []struct {
			Ctx context.Context
			U   *domain.User
			Id  domain.TopicID
		}
	}
	lockAllQueryNext sync.RWMutex
	lockAllQueryPrev sync.RWMutex
	lockForAccount   sync.RWMutex
	lockGet          sync.RWMutex
}

func (mock *topicListerMock) AllQueryNext(ctx context.Context, u *domain.User, query string, pos string, pageSize int) (*topiclist.Page, error) {
	if mock.AllQueryNextFunc == nil {
		panic("topicListerMock.AllQueryNextFunc: method is nil but topicLister.AllQueryNext was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		U        *domain.User
		Query    string
		Pos      string
		PageSize int
	}{Ctx: ctx, U: u, Query: query, Pos: pos, PageSize: pageSize}
	mock.lockAllQueryNext.Lock()
	mock.calls.AllQueryNext = append(mock.calls.AllQueryNext, callInfo)
	mock.lockAllQueryNext.Unlock()
	return mock.AllQueryNextFunc(ctx, u, query, pos, pageSize)
}

func (mock *topicListerMock) AllQueryNextCalls() []struct {
	Ctx      context.Context
	U        *domain.User
	Query    string
	Pos      string
	PageSize int
} {
	mock.lockAllQueryNext.RLock()
	calls := mock.calls.AllQueryNext
	mock.lockAllQueryNext.RUnlock()
	return calls
}

func (mock *topicListerMock) AllQueryPrev(ctx context.Context, u *domain.User, query string, pos string, pageSize int) (*topiclist.Page, error) {
	if mock.AllQueryPrevFunc == nil {
		panic("topicListerMock.AllQueryPrevFunc: method is nil but topicLister.AllQueryPrev was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		U        *domain.User
		Query    string
		Pos      string
		PageSize int
	}{Ctx: ctx, U: u, Query: query, Pos: pos, PageSize: pageSize}
	mock.lockAllQueryPrev.Lock()
	mock.calls.AllQueryPrev = append(mock.calls.AllQueryPrev, callInfo)
	mock.lockAllQueryPrev.Unlock()
	return mock.AllQueryPrevFunc(ctx, u, query, pos, pageSize)
}

func (mock *topicListerMock) AllQueryPrevCalls() []struct {
	Ctx      context.Context
	U        *domain.User
	Query    string
	Pos      string
	PageSize int
} {
	mock.lockAllQueryPrev.RLock()
	calls := mock.calls.AllQueryPrev
	mock.lockAllQueryPrev.RUnlock()
	return calls
}

func (mock *topicListerMock) ForAccount(ctx context.Context, u *domain.User, target *uuid.UUID) (*topiclist.Dashboard, error) {
	if mock.ForAccountFunc == nil {
		panic("topicListerMock.ForAccountFunc: method is nil but topicLister.ForAccount was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		U      *domain.User
		Target *uuid.UUID
	}{Ctx: ctx, U: u, Target: target}
	mock.lockForAccount.Lock()
	mock.calls.ForAccount = append(mock.calls.ForAccount, callInfo)
	mock.lockForAccount.Unlock()
	return mock.ForAccountFunc(ctx, u, target)
}

func (mock *topicListerMock) ForAccountCalls() []struct {
	Ctx    context.Context
	U      *domain.User
	Target *uuid.UUID
} {
	mock.lockForAccount.RLock()
	calls := mock.calls.ForAccount
	mock.lockForAccount.RUnlock()
	return calls
}

func (mock *topicListerMock) Get(ctx context.Context, u *domain.User, id domain.TopicID) (*topiclist.Detail, error) {
	if mock.GetFunc == nil {
		panic("topicListerMock.GetFunc: method is nil but topicLister.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.User
		Id  domain.TopicID
	}{Ctx: ctx, U: u, Id: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, u, id)
}

func (mock *topicListerMock) GetCalls() []struct {
	Ctx context.Context
	U   *domain.User
	Id  domain.TopicID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}
