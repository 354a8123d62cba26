package middleware

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ groupResolver = &groupResolverMock{}

type groupResolverMock struct {
	MemberOfFunc func(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error)

	calls struct {
		MemberOf []struct {
			Ctx       context.Context
			AccountID uuid.UUID
		}
	}
	lockMemberOf sync.RWMutex
}

func (mock *groupResolverMock) MemberOf(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
	if mock.MemberOfFunc == nil {
		panic("groupResolverMock.MemberOfFunc: method is nil but groupResolver.MemberOf was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		AccountID uuid.UUID
	}{Ctx: ctx, AccountID: accountID}
	mock.lockMemberOf.Lock()
	mock.calls.MemberOf = append(mock.calls.MemberOf, callInfo)
	mock.lockMemberOf.Unlock()
	return mock.MemberOfFunc(ctx, accountID)
}

func (mock *groupResolverMock) MemberOfCalls() []struct {
	Ctx       context.Context
	AccountID uuid.UUID
} {
	mock.lockMemberOf.RLock()
	calls := mock.calls.MemberOf
	mock.lockMemberOf.RUnlock()
	return calls
}
