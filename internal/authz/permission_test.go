package authz_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/heartmarshall/topicreview-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/topicreview-backend/internal/authz"
	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

func TestCheckPermission_Postgres(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	db := stdlib.OpenDBFromPool(pool)
	t.Cleanup(func() { _ = db.Close() })

	owner := testhelper.SeedAccount(t, pool)
	member := testhelper.SeedAccount(t, pool)
	outsider := testhelper.SeedAccount(t, pool)
	team := testhelper.SeedGroup(t, pool, member.ID)

	private := testhelper.SeedProject(t, pool, false, team.ID)
	public := testhelper.SeedProject(t, pool, true)
	hidden := testhelper.SeedTopic(t, pool, private, owner.ID, domain.TopicStatusNew)
	open := testhelper.SeedTopic(t, pool, public, owner.ID, domain.TopicStatusNew)

	controls := authz.NewControlFactory(authz.NewChecker(db), time.Minute)

	tests := []struct {
		name  string
		topic domain.Topic
		user  *domain.User
		want  bool
	}{
		{"owner", hidden, domain.NewAccountUser(owner.ID), true},
		{"group member by account", hidden, domain.NewAccountUser(member.ID), true},
		{"group only", hidden, domain.NewGroupUser(team.ID), true},
		{"outsider", hidden, domain.NewAccountUser(outsider.ID), false},
		{"anonymous on private project", hidden, domain.Anonymous(), false},
		{"anonymous on public project", open, domain.Anonymous(), true},
		{"unrelated group", hidden, domain.NewGroupUser(uuid.New()), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := controls.CanRead(context.Background(), &tt.topic, tt.user)
			if err != nil {
				t.Fatalf("CanRead() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CanRead() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckPermission_RevokedAccessNextRequest(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	db := stdlib.OpenDBFromPool(pool)
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()

	owner := testhelper.SeedAccount(t, pool)
	member := testhelper.SeedAccount(t, pool)
	team := testhelper.SeedGroup(t, pool, member.ID)
	private := testhelper.SeedProject(t, pool, false, team.ID)
	topic := testhelper.SeedTopic(t, pool, private, owner.ID, domain.TopicStatusNew)
	u := domain.NewAccountUser(member.ID)

	controls := authz.NewControlFactory(authz.NewChecker(db), time.Minute)
	if ok, err := controls.CanRead(controls.Scope(ctx), &topic, u); err != nil || !ok {
		t.Fatalf("before revoke: CanRead = %v, %v; want true, nil", ok, err)
	}

	if _, err := pool.Exec(ctx, `DELETE FROM project_group_access WHERE project_name = $1`, private); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, err := controls.CanRead(controls.Scope(ctx), &topic, u); err != nil || ok {
		t.Errorf("after revoke: CanRead = %v, %v; want false, nil", ok, err)
	}
}
