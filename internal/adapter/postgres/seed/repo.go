// Package seed writes demo fixtures. Every write goes through the
// transaction in the context when there is one.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/topicreview-backend/internal/adapter/postgres"
	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

const nextTopicID = `SELECT nextval(pg_get_serial_sequence('topics', 'id'))`

// Repo inserts fixture rows.
type Repo struct {
	db postgres.Querier
}

// New creates a new seed repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// InsertAccount creates an account.
func (r *Repo) InsertAccount(ctx context.Context, a domain.Account) error {
	err := postgres.Exec(ctx, r.db, postgres.Builder().
		Insert("accounts").
		Columns("id", "full_name", "email", "username").
		Values(a.ID, a.FullName, a.Email, a.Username))
	if err != nil {
		return postgres.MapError(err, "account", a.Username)
	}
	return nil
}

// InsertGroup creates a group and its memberships.
func (r *Repo) InsertGroup(ctx context.Context, g domain.Group, members []uuid.UUID) error {
	var external any
	if g.ExternalName != "" {
		external = g.ExternalName
	}
	err := postgres.Exec(ctx, r.db, postgres.Builder().
		Insert("groups").
		Columns("id", "name", "external_name").
		Values(g.ID, g.Name, external))
	if err != nil {
		return postgres.MapError(err, "group", g.Name)
	}

	batch := &pgx.Batch{}
	for _, m := range members {
		batch.Queue(`INSERT INTO account_groups (account_id, group_id) VALUES ($1, $2)`, m, g.ID)
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		return postgres.MapError(err, "group member", g.Name)
	}
	return nil
}

// InsertProject creates a project readable by groups, or by everyone when public.
func (r *Repo) InsertProject(ctx context.Context, name string, public bool, groups []uuid.UUID) error {
	err := postgres.Exec(ctx, r.db, postgres.Builder().
		Insert("projects").
		Columns("name", "is_public").
		Values(name, public))
	if err != nil {
		return postgres.MapError(err, "project", name)
	}

	batch := &pgx.Batch{}
	for _, g := range groups {
		batch.Queue(`INSERT INTO project_group_access (project_name, group_id) VALUES ($1, $2)`, name, g)
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		return postgres.MapError(err, "project access", name)
	}
	return nil
}

// InsertTopic creates t with change-sets 1..t.CurrentChangeSet, all
// uploaded by the owner, and returns the assigned id. The sort key is
// derived from t.LastUpdatedOn and the id, so t.SortKey is ignored.
func (r *Repo) InsertTopic(ctx context.Context, t domain.Topic) (domain.TopicID, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var id int32
	if err := q.QueryRow(ctx, nextTopicID).Scan(&id); err != nil {
		return 0, fmt.Errorf("reserve topic id: %w", err)
	}

	query, args, err := postgres.Builder().
		Insert("topics").
		Columns("id", "topic_key", "project", "owner_id", "status", "sort_key", "subject",
			"current_change_set", "created_on", "last_updated_on").
		Values(id, t.Key, t.Project, t.Owner, t.Status.String(),
			domain.NewSortKey(t.LastUpdatedOn, domain.TopicID(id)), t.Subject,
			t.CurrentChangeSet, t.CreatedOn, t.LastUpdatedOn).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build statement: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return 0, postgres.MapError(err, "topic", t.Key)
	}

	batch := &pgx.Batch{}
	for n := int32(1); n <= t.CurrentChangeSet; n++ {
		batch.Queue(`INSERT INTO change_sets (topic_id, num, uploader, created_on) VALUES ($1, $2, $3, $4)`,
			id, n, t.Owner, t.CreatedOn)
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		return 0, postgres.MapError(err, "change set", t.Key)
	}
	return domain.TopicID(id), nil
}

// InsertApproval records a vote.
func (r *Repo) InsertApproval(ctx context.Context, a domain.Approval) error {
	err := postgres.Exec(ctx, r.db, postgres.Builder().
		Insert("approvals").
		Columns("topic_id", "change_set_num", "account_id", "category_id", "value", "granted_on").
		Values(int32(a.ChangeSet.TopicID), a.ChangeSet.Num, a.Account, a.Category, a.Value, a.GrantedOn))
	if err != nil {
		return postgres.MapError(err, "approval", a.ChangeSet.TopicID)
	}
	return nil
}

func (r *Repo) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	br := postgres.QuerierFromCtx(ctx, r.db).SendBatch(ctx, batch)
	for range batch.Len() {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return err
		}
	}
	return br.Close()
}
