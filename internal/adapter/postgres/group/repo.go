// Package group resolves groups by name.
package group

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/topicreview-backend/internal/adapter/postgres"
	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// Repo provides group reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new group repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func selectGroups() sq.SelectBuilder {
	return postgres.Builder().
		Select("id", "name", "COALESCE(external_name, '')").
		From("groups")
}

// ByName returns the group called name, or domain.ErrNotFound.
func (r *Repo) ByName(ctx context.Context, name string) (*domain.Group, error) {
	query, args, err := selectGroups().Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var g domain.Group
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&g.ID, &g.Name, &g.ExternalName)
	if err != nil {
		return nil, postgres.MapError(err, "group", name)
	}
	return &g, nil
}

// ByExternalName returns the groups whose external name matches name,
// ignoring case.
func (r *Repo) ByExternalName(ctx context.Context, name string) ([]domain.Group, error) {
	rows, err := postgres.Select(ctx, r.db, selectGroups().
		Where(sq.Eq{"lower(external_name)": strings.ToLower(name)}).
		OrderBy("name"))
	if err != nil {
		return nil, fmt.Errorf("get groups by external name: %w", err)
	}

	groups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Group, error) {
		var g domain.Group
		err := row.Scan(&g.ID, &g.Name, &g.ExternalName)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("get groups by external name: %w", err)
	}
	return groups, nil
}

// MemberOf returns the ids of the groups account belongs to.
func (r *Repo) MemberOf(ctx context.Context, account uuid.UUID) ([]uuid.UUID, error) {
	rows, err := postgres.Select(ctx, r.db, postgres.Builder().
		Select("group_id").
		From("account_groups").
		Where(sq.Eq{"account_id": account}).
		OrderBy("group_id"))
	if err != nil {
		return nil, fmt.Errorf("get account groups: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("get account groups: %w", err)
	}
	return ids, nil
}
