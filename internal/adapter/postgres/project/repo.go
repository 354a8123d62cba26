// Package project reads project names.
package project

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/topicreview-backend/internal/adapter/postgres"
)

// Repo provides project reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new project repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// AllNames returns every project name in order.
func (r *Repo) AllNames(ctx context.Context) ([]string, error) {
	rows, err := postgres.Select(ctx, r.db, postgres.Builder().
		Select("name").
		From("projects").
		OrderBy("name"))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return names, nil
}
