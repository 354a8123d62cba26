// Package approval reads review votes and approval categories.
package approval

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/topicreview-backend/internal/adapter/postgres"
	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

var columns = []string{"topic_id", "change_set_num", "account_id", "category_id", "value", "granted_on"}

// Repo provides approval reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new approval repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func selectApprovals() sq.SelectBuilder {
	return postgres.Builder().Select(columns...).From("approvals").OrderBy("granted_on", "account_id", "category_id")
}

// ByTopic returns the approvals on every change-set of topic id.
func (r *Repo) ByTopic(ctx context.Context, id domain.TopicID) ([]domain.Approval, error) {
	return r.list(ctx, "get approvals by topic", selectApprovals().
		Where(sq.Eq{"topic_id": int32(id)}))
}

// ByChangeSet returns the approvals on change-set id.
func (r *Repo) ByChangeSet(ctx context.Context, id domain.ChangeSetID) ([]domain.Approval, error) {
	return r.list(ctx, "get approvals by change-set", selectApprovals().
		Where(sq.Eq{"topic_id": int32(id.TopicID), "change_set_num": id.Num}))
}

// ByChangeSetAccount returns the approvals account cast on change-set id.
func (r *Repo) ByChangeSetAccount(ctx context.Context, id domain.ChangeSetID, account uuid.UUID) ([]domain.Approval, error) {
	return r.list(ctx, "get approvals by change-set and account", selectApprovals().
		Where(sq.Eq{"topic_id": int32(id.TopicID), "change_set_num": id.Num, "account_id": account}))
}

// ReviewedBy returns the ids of topics in statuses that account voted on.
func (r *Repo) ReviewedBy(ctx context.Context, account uuid.UUID, statuses []domain.TopicStatus) ([]domain.TopicID, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}

	rows, err := postgres.Select(ctx, r.db, postgres.Builder().
		Select("DISTINCT a.topic_id").
		From("approvals a").
		Join("topics t ON t.id = a.topic_id").
		Where(sq.Eq{"a.account_id": account, "t.status": names}).
		OrderBy("a.topic_id"))
	if err != nil {
		return nil, fmt.Errorf("get reviewed topics: %w", err)
	}

	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TopicID, error) {
		var id int32
		err := row.Scan(&id)
		return domain.TopicID(id), err
	})
	if err != nil {
		return nil, fmt.Errorf("get reviewed topics: %w", err)
	}
	return ids, nil
}

func (r *Repo) list(ctx context.Context, op string, b sq.SelectBuilder) ([]domain.Approval, error) {
	rows, err := postgres.Select(ctx, r.db, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	approvals, err := pgx.CollectRows(rows, scanApproval)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return approvals, nil
}

func scanApproval(row pgx.CollectableRow) (domain.Approval, error) {
	var (
		a       domain.Approval
		topicID int32
	)
	err := row.Scan(&topicID, &a.ChangeSet.Num, &a.Account, &a.Category, &a.Value, &a.GrantedOn)
	a.ChangeSet.TopicID = domain.TopicID(topicID)
	return a, err
}
