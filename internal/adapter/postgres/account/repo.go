// Package account reads accounts and resolves user-supplied names to them.
package account

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

// maxMatches bounds name resolution results.
const maxMatches = 100

// Repo provides account reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new account repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func selectAccounts() sq.SelectBuilder {
	return postgres.Builder().
		Select("id", "full_name", "email", "username").
		From("accounts")
}

// GetByIDs returns the accounts among ids that exist.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Account, error) {
	if len(ids) == 0 {
		return []domain.Account{}, nil
	}
	return r.list(ctx, "get accounts", selectAccounts().Where(sq.Eq{"id": ids}).OrderBy("id"))
}

// Find returns the one account named by who, matching its id, email,
// username or full name exactly. No match or an ambiguous match is
// domain.ErrNotFound.
func (r *Repo) Find(ctx context.Context, who string) (*domain.Account, error) {
	found, err := r.list(ctx, "find account", selectAccounts().Where(exact(who)).Limit(2))
	if err != nil {
		return nil, err
	}
	if len(found) != 1 {
		return nil, fmt.Errorf("account %s: %w", who, domain.ErrNotFound)
	}
	return &found[0], nil
}

// FindAll returns every account who could name: exact matches as in Find,
// plus accounts whose email local part or full name starts with who.
func (r *Repo) FindAll(ctx context.Context, who string) ([]uuid.UUID, error) {
	lower := postgres.EscapeLike(strings.ToLower(who))
	found, err := r.list(ctx, "find accounts", selectAccounts().
		Where(sq.Or{
			exact(who),
			sq.Like{"lower(email)": lower + "@%"},
			sq.Like{"lower(full_name)": lower + "%"},
		}).
		OrderBy("id").
		Limit(maxMatches))
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(found))
	for i, a := range found {
		ids[i] = a.ID
	}
	return ids, nil
}

func exact(who string) sq.Sqlizer {
	lower := strings.ToLower(who)
	or := sq.Or{
		sq.Eq{"lower(email)": lower},
		sq.Eq{"lower(username)": lower},
		sq.Eq{"lower(full_name)": lower},
	}
	if id, err := uuid.Parse(who); err == nil {
		or = append(or, sq.Eq{"id": id})
	}
	return or
}

func (r *Repo) list(ctx context.Context, op string, b sq.SelectBuilder) ([]domain.Account, error) {
	rows, err := postgres.Select(ctx, r.db, b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Account, error) {
		var a domain.Account
		err := row.Scan(&a.ID, &a.FullName, &a.Email, &a.Username)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return accounts, nil
}
