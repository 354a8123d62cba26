package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/heartmarshall/topicreview-backend/internal/adapter/postgres"
	"github.com/heartmarshall/topicreview-backend/internal/adapter/postgres/account"
	approvalrepo "github.com/heartmarshall/topicreview-backend/internal/adapter/postgres/approval"
	"github.com/heartmarshall/topicreview-backend/internal/adapter/postgres/category"
	"github.com/heartmarshall/topicreview-backend/internal/adapter/postgres/group"
	"github.com/heartmarshall/topicreview-backend/internal/adapter/postgres/project"
	"github.com/heartmarshall/topicreview-backend/internal/adapter/postgres/topic"
	"github.com/heartmarshall/topicreview-backend/internal/authz"
	"github.com/heartmarshall/topicreview-backend/internal/config"
	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/internal/service/approval"
	"github.com/heartmarshall/topicreview-backend/internal/service/topiclist"
	"github.com/heartmarshall/topicreview-backend/internal/topicquery"
)

// Components are the wired repositories and services of one process.
type Components struct {
	Pool *pgxpool.Pool

	Accounts *account.Repo
	Groups   *group.Repo

	Control   *authz.ControlFactory
	Processor *topicquery.Processor
	Lists     *topiclist.Service
	Approvals *approval.Service

	sqlDB *sql.DB
}

// Open connects to the database and wires every service on top of it.
// Close releases what Open acquired.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Components, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// melange checks through database/sql; share the pgx pool with it.
	sqlDB := stdlib.OpenDBFromPool(pool)
	control := authz.NewControlFactory(authz.NewChecker(sqlDB), cfg.Query.VisibilityCacheTTL)

	topics := topic.New(pool)
	approvals := approvalrepo.New(pool)
	accounts := account.New(pool)
	groups := group.New(pool)

	processor := topicquery.NewProcessor(log, topicquery.Deps{
		Topics:    topics,
		Approvals: approvals,
		Accounts:  accounts,
		Groups:    groups,
		Projects:  project.New(pool),
		Control:   control,
	}, cfg.Query.MaxLimit)

	return &Components{
		Pool:      pool,
		Accounts:  accounts,
		Groups:    groups,
		Control:   control,
		Processor: processor,
		Lists:     topiclist.NewService(log, processor, topics, approvals, accounts, control, cfg.Query.MaxLimit),
		Approvals: approval.NewService(log, topics, approvals, category.New(pool), control, accounts, approval.Policy{
			SubmitCategory: cfg.Approval.SubmitCategory,
			TieBreak:       domain.TieBreak(cfg.Approval.TieBreak),
		}),
		sqlDB: sqlDB,
	}, nil
}

// Close releases the database handles.
func (c *Components) Close() {
	_ = c.sqlDB.Close()
	c.Pool.Close()
}
