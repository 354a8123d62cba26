package topiclist

import (
	"context"
	"sync"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

var _ searcher = &searcherMock{}

type searcherMock struct {
	SearchFunc func(ctx context.Context, u *domain.User, text string, pos string, limit int, dir domain.ScanDirection) ([]*domain.Topic, error)

	calls struct {
		Search []struct {
			Ctx   context.Context
			U     *domain.User
			Text  string
			Pos   string
			Limit int
			Dir   domain.ScanDirection
		}
	}
	lockSearch sync.RWMutex
}

func (mock *searcherMock) Search(ctx context.Context, u *domain.User, text string, pos string, limit int, dir domain.ScanDirection) ([]*domain.Topic, error) {
	if mock.SearchFunc == nil {
		panic("searcherMock.SearchFunc: method is nil but searcher.Search was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		U     *domain.User
		Text  string
		Pos   string
		Limit int
		Dir   domain.ScanDirection
	}{Ctx: ctx, U: u, Text: text, Pos: pos, Limit: limit, Dir: dir}
	mock.lockSearch.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lockSearch.Unlock()
	return mock.SearchFunc(ctx, u, text, pos, limit, dir)
}

func (mock *searcherMock) SearchCalls() []struct {
	Ctx   context.Context
	U     *domain.User
	Text  string
	Pos   string
	Limit int
	Dir   domain.ScanDirection
} {
	mock.lockSearch.RLock()
	calls := mock.calls.Search
	mock.lockSearch.RUnlock()
	return calls
}
