package seeder

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

var _ store = &storeMock{}

type storeMock struct {
	InsertAccountFunc  func(ctx context.Context, a domain.Account) error
	InsertGroupFunc    func(ctx context.Context, g domain.Group, members []uuid.UUID) error
	InsertProjectFunc  func(ctx context.Context, name string, public bool, groups []uuid.UUID) error
	InsertTopicFunc    func(ctx context.Context, t domain.Topic) (domain.TopicID, error)
	InsertApprovalFunc func(ctx context.Context, a domain.Approval) error

	calls struct {
		InsertAccount []struct {
			Ctx context.Context
			A   domain.Account
		}
		InsertGroup []struct {
			Ctx     context.Context
			G       domain.Group
			Members []uuid.UUID
		}
		InsertProject []struct {
			Ctx    context.Context
			Name   string
			Public bool
			Groups []uuid.UUID
		}
		InsertTopic []struct {
			Ctx context.Context
			T   domain.Topic
		}
		InsertApproval []struct {
			Ctx context.Context
			A   domain.Approval
		}
	}
	lockInsertAccount  sync.RWMutex
	lockInsertGroup    sync.RWMutex
	lockInsertProject  sync.RWMutex
	lockInsertTopic    sync.RWMutex
	lockInsertApproval sync.RWMutex
}

func (mock *storeMock) InsertAccount(ctx context.Context, a domain.Account) error {
	if mock.InsertAccountFunc == nil {
		panic("storeMock.InsertAccountFunc: method is nil but store.InsertAccount was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   domain.Account
	}{Ctx: ctx, A: a}
	mock.lockInsertAccount.Lock()
	mock.calls.InsertAccount = append(mock.calls.InsertAccount, callInfo)
	mock.lockInsertAccount.Unlock()
	return mock.InsertAccountFunc(ctx, a)
}

func (mock *storeMock) InsertAccountCalls() []struct {
	Ctx context.Context
	A   domain.Account
} {
	mock.lockInsertAccount.RLock()
	calls := mock.calls.InsertAccount
	mock.lockInsertAccount.RUnlock()
	return calls
}

func (mock *storeMock) InsertGroup(ctx context.Context, g domain.Group, members []uuid.UUID) error {
	if mock.InsertGroupFunc == nil {
		panic("storeMock.InsertGroupFunc: method is nil but store.InsertGroup was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		G       domain.Group
		Members []uuid.UUID
	}{Ctx: ctx, G: g, Members: members}
	mock.lockInsertGroup.Lock()
	mock.calls.InsertGroup = append(mock.calls.InsertGroup, callInfo)
	mock.lockInsertGroup.Unlock()
	return mock.InsertGroupFunc(ctx, g, members)
}

func (mock *storeMock) InsertGroupCalls() []struct {
	Ctx     context.Context
	G       domain.Group
	Members []uuid.UUID
} {
	mock.lockInsertGroup.RLock()
	calls := mock.calls.InsertGroup
	mock.lockInsertGroup.RUnlock()
	return calls
}

func (mock *storeMock) InsertProject(ctx context.Context, name string, public bool, groups []uuid.UUID) error {
	if mock.InsertProjectFunc == nil {
		panic("storeMock.InsertProjectFunc: method is nil but store.InsertProject was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Name   string
		Public bool
		Groups []uuid.UUID
	}{Ctx: ctx, Name: name, Public: public, Groups: groups}
	mock.lockInsertProject.Lock()
	mock.calls.InsertProject = append(mock.calls.InsertProject, callInfo)
	mock.lockInsertProject.Unlock()
	return mock.InsertProjectFunc(ctx, name, public, groups)
}

func (mock *storeMock) InsertProjectCalls() []struct {
	Ctx    context.Context
	Name   string
	Public bool
	Groups []uuid.UUID
} {
	mock.lockInsertProject.RLock()
	calls := mock.calls.InsertProject
	mock.lockInsertProject.RUnlock()
	return calls
}

func (mock *storeMock) InsertTopic(ctx context.Context, t domain.Topic) (domain.TopicID, error) {
	if mock.InsertTopicFunc == nil {
		panic("storeMock.InsertTopicFunc: method is nil but store.InsertTopic was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T   domain.Topic
	}{Ctx: ctx, T: t}
	mock.lockInsertTopic.Lock()
	mock.calls.InsertTopic = append(mock.calls.InsertTopic, callInfo)
	mock.lockInsertTopic.Unlock()
	return mock.InsertTopicFunc(ctx, t)
}

func (mock *storeMock) InsertTopicCalls() []struct {
	Ctx context.Context
	T   domain.Topic
} {
	mock.lockInsertTopic.RLock()
	calls := mock.calls.InsertTopic
	mock.lockInsertTopic.RUnlock()
	return calls
}

func (mock *storeMock) InsertApproval(ctx context.Context, a domain.Approval) error {
	if mock.InsertApprovalFunc == nil {
		panic("storeMock.InsertApprovalFunc: method is nil but store.InsertApproval was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   domain.Approval
	}{Ctx: ctx, A: a}
	mock.lockInsertApproval.Lock()
	mock.calls.InsertApproval = append(mock.calls.InsertApproval, callInfo)
	mock.lockInsertApproval.Unlock()
	return mock.InsertApprovalFunc(ctx, a)
}

func (mock *storeMock) InsertApprovalCalls() []struct {
	Ctx context.Context
	A   domain.Approval
} {
	mock.lockInsertApproval.RLock()
	calls := mock.calls.InsertApproval
	mock.lockInsertApproval.RUnlock()
	return calls
}
