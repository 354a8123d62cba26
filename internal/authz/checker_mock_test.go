package authz

import (
	"context"
	"sync"

	"github.com/pthm/melange/melange"
)

var _ checker = &checkerMock{}

type checkerMock struct {
	CheckFunc func(ctx context.Context, subject melange.SubjectLike, relation melange.RelationLike, object melange.ObjectLike) (bool, error)

	calls struct {
		Check []struct {
			Ctx      context.Context
			Subject  melange.SubjectLike
			Relation melange.RelationLike
			Object   melange.ObjectLike
		}
	}
	lockCheck sync.RWMutex
}

func (mock *checkerMock) Check(ctx context.Context, subject melange.SubjectLike, relation melange.RelationLike, object melange.ObjectLike) (bool, error) {
	if mock.CheckFunc == nil {
		panic("checkerMock.CheckFunc: method is nil but checker.Check was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Subject  melange.SubjectLike
		Relation melange.RelationLike
		Object   melange.ObjectLike
	}{Ctx: ctx, Subject: subject, Relation: relation, Object: object}
	mock.lockCheck.Lock()
	mock.calls.Check = append(mock.calls.Check, callInfo)
	mock.lockCheck.Unlock()
	return mock.CheckFunc(ctx, subject, relation, object)
}

func (mock *checkerMock) CheckCalls() []struct {
	Ctx      context.Context
	Subject  melange.SubjectLike
	Relation melange.RelationLike
	Object   melange.ObjectLike
} {
	mock.lockCheck.RLock()
	calls := mock.calls.Check
	mock.lockCheck.RUnlock()
	return calls
}
