package topicquery

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

var (
	alice = uuid.MustParse("00000000-0000-0000-0000-00000000a11c")
	bob   = uuid.MustParse("00000000-0000-0000-0000-000000000b0b")
	devs  = uuid.MustParse("00000000-0000-0000-0000-0000000000d5")

	// updatedAt is shared by every topic so ordering rests on the id suffix.
	updatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
)

// world is an in-memory review site backing every collaborator in Deps.
type world struct {
	topics    map[domain.TopicID]domain.Topic
	approvals map[domain.TopicID][]domain.Approval
	accounts  map[string]domain.Account
	groups    []domain.Group
	projects  []string
	hidden    map[domain.TopicID]bool

	store   *topicStoreMock
	control *visibilityMock
}

func newWorld() *world {
	w := &world{
		topics:    make(map[domain.TopicID]domain.Topic),
		approvals: make(map[domain.TopicID][]domain.Approval),
		accounts: map[string]domain.Account{
			"alice@example.com": {ID: alice, FullName: "Alice", Email: "alice@example.com", Username: "alice"},
			"bob@example.com":   {ID: bob, FullName: "Bob", Email: "bob@example.com", Username: "bob"},
		},
		groups:   []domain.Group{{ID: devs, Name: "developers", ExternalName: "ldap:devs"}},
		projects: []string{"platform/core", "platform/web", "tools"},
		hidden:   make(map[domain.TopicID]bool),
	}
	w.store = &topicStoreMock{
		GetFunc:          w.get,
		GetManyFunc:      w.getMany,
		ScanByStatusFunc: w.scan,
		ByKeyPrefixFunc:  w.byKeyPrefix,
	}
	w.control = &visibilityMock{
		CanReadFunc: func(_ context.Context, t *domain.Topic, _ *domain.User) (bool, error) {
			return !w.hidden[t.ID], nil
		},
	}
	return w
}

// add stores a topic updated at updatedAt. Higher ids get higher sort keys.
func (w *world) add(id domain.TopicID, owner uuid.UUID, status domain.TopicStatus, project string) domain.Topic {
	t := domain.Topic{
		ID:               id,
		Key:              fmt.Sprintf("T%08x", id),
		Project:          project,
		Owner:            owner,
		Status:           status,
		SortKey:          domain.NewSortKey(updatedAt, id),
		LastUpdatedOn:    updatedAt,
		Subject:          "topic " + id.String(),
		CurrentChangeSet: 1,
	}
	w.topics[id] = t
	return t
}

func (w *world) vote(id domain.TopicID, who uuid.UUID, category string, value int16) {
	w.approvals[id] = append(w.approvals[id], domain.Approval{
		ChangeSet: domain.ChangeSetID{TopicID: id, Num: w.topics[id].CurrentChangeSet},
		Account:   who,
		Category:  category,
		Value:     value,
	})
}

func (w *world) deps() Deps {
	return Deps{
		Topics:    w.store,
		Approvals: w,
		Accounts:  w,
		Groups:    w,
		Projects:  w,
		Control:   w.control,
	}
}

func (w *world) get(_ context.Context, id domain.TopicID) (*domain.Topic, error) {
	t, ok := w.topics[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (w *world) getMany(_ context.Context, ids []domain.TopicID) ([]domain.Topic, error) {
	var out []domain.Topic
	for _, id := range ids {
		if t, ok := w.topics[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (w *world) scan(_ context.Context, statuses []domain.TopicStatus, key string, limit int, dir domain.ScanDirection) ([]domain.Topic, error) {
	var out []domain.Topic
	for _, t := range w.topics {
		if !slices.Contains(statuses, t.Status) {
			continue
		}
		if dir == domain.ScanDescending && t.SortKey < key || dir == domain.ScanAscending && t.SortKey > key {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b domain.Topic) int {
		if dir == domain.ScanDescending {
			return cmp.Compare(b.SortKey, a.SortKey)
		}
		return cmp.Compare(a.SortKey, b.SortKey)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (w *world) byKeyPrefix(_ context.Context, prefix string) ([]domain.Topic, error) {
	var out []domain.Topic
	for _, t := range w.topics {
		if strings.HasPrefix(t.Key, prefix) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b domain.Topic) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (w *world) ByTopic(_ context.Context, id domain.TopicID) ([]domain.Approval, error) {
	return w.approvals[id], nil
}

func (w *world) ByChangeSet(_ context.Context, id domain.ChangeSetID) ([]domain.Approval, error) {
	var out []domain.Approval
	for _, a := range w.approvals[id.TopicID] {
		if a.ChangeSet == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (w *world) Find(_ context.Context, who string) (*domain.Account, error) {
	for _, a := range w.accounts {
		if a.Email == who || a.Username == who {
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (w *world) FindAll(_ context.Context, who string) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, a := range w.accounts {
		if a.Email == who || a.Username == who || strings.Contains(a.FullName, who) {
			out = append(out, a.ID)
		}
	}
	slices.SortFunc(out, func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })
	return out, nil
}

func (w *world) ByName(_ context.Context, name string) (*domain.Group, error) {
	for _, g := range w.groups {
		if g.Name == name {
			return &g, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (w *world) ByExternalName(_ context.Context, name string) ([]domain.Group, error) {
	var out []domain.Group
	for _, g := range w.groups {
		if g.ExternalName == name {
			out = append(out, g)
		}
	}
	return out, nil
}

func (w *world) AllNames(context.Context) ([]string, error) {
	return w.projects, nil
}

func ids(r []*TopicData) []domain.TopicID {
	out := make([]domain.TopicID, len(r))
	for i, d := range r {
		out[i] = d.ID()
	}
	return out
}

func topicIDs(ts []*domain.Topic) []domain.TopicID {
	out := make([]domain.TopicID, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}
