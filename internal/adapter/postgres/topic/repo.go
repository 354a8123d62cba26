// Package topic implements the topic store using PostgreSQL. Range scans
// walk the (status, sort_key) index in either direction from a cursor.
package topic

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/topicreview-backend/internal/adapter/postgres"
	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// maxPrefixMatches bounds key prefix lookups.
const maxPrefixMatches = 10

var columns = []string{
	"id", "topic_key", "project", "owner_id", "status", "sort_key",
	"subject", "current_change_set", "created_on", "last_updated_on",
}

// Repo provides topic reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new topic repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func selectTopics() sq.SelectBuilder {
	return postgres.Builder().Select(columns...).From("topics")
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns a topic by id, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id domain.TopicID) (*domain.Topic, error) {
	query, args, err := selectTopics().Where(sq.Eq{"id": int32(id)}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	t, err := scanTopic(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "topic", id)
	}
	return &t, nil
}

// GetMany returns the topics among ids that exist, in id order.
func (r *Repo) GetMany(ctx context.Context, ids []domain.TopicID) ([]domain.Topic, error) {
	if len(ids) == 0 {
		return []domain.Topic{}, nil
	}
	keys := make([]int32, len(ids))
	for i, id := range ids {
		keys[i] = int32(id)
	}

	rows, err := postgres.Select(ctx, r.db, selectTopics().
		Where(sq.Eq{"id": keys}).
		OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("get topics: %w", err)
	}
	return collectTopics(rows, "get topics")
}

// ScanByStatus returns up to limit topics in statuses whose sort key lies
// strictly past sortKey in dir: below it for ScanDescending, above it for
// ScanAscending. Rows come back in scan order.
func (r *Repo) ScanByStatus(
	ctx context.Context,
	statuses []domain.TopicStatus,
	sortKey string,
	limit int,
	dir domain.ScanDirection,
) ([]domain.Topic, error) {
	b := selectTopics().Where(sq.Eq{"status": statusNames(statuses)})
	if dir == domain.ScanAscending {
		b = b.Where(sq.Gt{"sort_key": sortKey}).OrderBy("sort_key ASC", "id ASC")
	} else {
		b = b.Where(sq.Lt{"sort_key": sortKey}).OrderBy("sort_key DESC", "id DESC")
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}

	rows, err := postgres.Select(ctx, r.db, b)
	if err != nil {
		return nil, fmt.Errorf("scan topics by status: %w", err)
	}
	return collectTopics(rows, "scan topics by status")
}

// ByKeyPrefix returns the topics whose key starts with prefix.
func (r *Repo) ByKeyPrefix(ctx context.Context, prefix string) ([]domain.Topic, error) {
	rows, err := postgres.Select(ctx, r.db, selectTopics().
		Where(sq.Like{"topic_key": postgres.EscapeLike(prefix) + "%"}).
		OrderBy("topic_key").
		Limit(maxPrefixMatches))
	if err != nil {
		return nil, fmt.Errorf("get topics by key prefix: %w", err)
	}
	return collectTopics(rows, "get topics by key prefix")
}

// ByOwner returns the topics owned by owner in statuses, newest first.
func (r *Repo) ByOwner(ctx context.Context, owner uuid.UUID, statuses []domain.TopicStatus) ([]domain.Topic, error) {
	rows, err := postgres.Select(ctx, r.db, selectTopics().
		Where(sq.Eq{"owner_id": owner, "status": statusNames(statuses)}).
		OrderBy("sort_key DESC", "id DESC"))
	if err != nil {
		return nil, fmt.Errorf("get topics by owner: %w", err)
	}
	return collectTopics(rows, "get topics by owner")
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func statusNames(statuses []domain.TopicStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}

func collectTopics(rows pgx.Rows, op string) ([]domain.Topic, error) {
	defer rows.Close()

	result := []domain.Topic{}
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanTopic(row pgx.Row) (domain.Topic, error) {
	var (
		t      domain.Topic
		id     int32
		status string
	)
	err := row.Scan(
		&id, &t.Key, &t.Project, &t.Owner, &status, &t.SortKey,
		&t.Subject, &t.CurrentChangeSet, &t.CreatedOn, &t.LastUpdatedOn,
	)
	if err != nil {
		return domain.Topic{}, err
	}
	t.ID = domain.TopicID(id)
	t.Status = domain.TopicStatus(status)
	return t, nil
}
