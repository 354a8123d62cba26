// Package category reads approval categories.
package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/topicreview-backend/internal/adapter/postgres"
	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// Repo provides approval category reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new category repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// All returns every approval category in display order.
func (r *Repo) All(ctx context.Context) ([]domain.ApprovalCategory, error) {
	rows, err := postgres.Select(ctx, r.db, postgres.Builder().
		Select("id", "name", "position", "min_value", "max_value").
		From("approval_categories").
		OrderBy("position", "id"))
	if err != nil {
		return nil, fmt.Errorf("list approval categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ApprovalCategory, error) {
		var c domain.ApprovalCategory
		err := row.Scan(&c.ID, &c.Name, &c.Position, &c.MinValue, &c.MaxValue)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("list approval categories: %w", err)
	}
	return categories, nil
}
