// Package accountcache batches account lookups for rendering result lists.
// One Cache lives for one request; every service filling account info for
// that request shares it through the context.
package accountcache

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type accountRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Account, error)
}

// Cache resolves account ids to render info, batching concurrent lookups
// into one repository call and remembering results.
type Cache struct {
	loader *dataloader.Loader[uuid.UUID, domain.AccountInfo]
}

// New creates an empty cache backed by repo.
func New(repo accountRepo) *Cache {
	return &Cache{
		loader: dataloader.NewBatchedLoader(
			newAccountsBatchFn(repo),
			dataloader.WithWait[uuid.UUID, domain.AccountInfo](wait),
			dataloader.WithBatchCapacity[uuid.UUID, domain.AccountInfo](maxBatch),
		),
	}
}

// Get returns the info of one account. Unknown accounts yield an info
// carrying only the id.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (domain.AccountInfo, error) {
	return c.loader.Load(ctx, id)()
}

// Fill resolves every id and returns them keyed by id. Nil ids are skipped.
func (c *Cache) Fill(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.AccountInfo, error) {
	keys := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, id)
	}

	out := make(map[uuid.UUID]domain.AccountInfo, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	infos, errs := c.loader.LoadMany(ctx, keys)()
	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("load accounts: %w", err)
		}
	}
	for i, info := range infos {
		out[keys[i]] = info
	}
	return out, nil
}

func newAccountsBatchFn(repo accountRepo) dataloader.BatchFunc[uuid.UUID, domain.AccountInfo] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[domain.AccountInfo] {
		accounts, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[domain.AccountInfo](len(keys), err)
		}

		byID := make(map[uuid.UUID]domain.AccountInfo, len(accounts))
		for _, a := range accounts {
			byID[a.ID] = domain.NewAccountInfo(a)
		}

		results := make([]*dataloader.Result[domain.AccountInfo], len(keys))
		for i, key := range keys {
			info, ok := byID[key]
			if !ok {
				info = domain.AccountInfo{ID: key}
			}
			results[i] = &dataloader.Result[domain.AccountInfo]{Data: info}
		}
		return results
	}
}

// errorResults creates n results all carrying the same error.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const cacheKey contextKey = "accountcache"

// WithCache stores c in the context.
func WithCache(ctx context.Context, c *Cache) context.Context {
	return context.WithValue(ctx, cacheKey, c)
}

// For returns the request's cache, or a new one backed by repo when the
// context carries none.
func For(ctx context.Context, repo accountRepo) *Cache {
	if c, ok := ctx.Value(cacheKey).(*Cache); ok && c != nil {
		return c
	}
	return New(repo)
}

// Middleware creates a cache per request and stores it in the context.
func Middleware(repo accountRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithCache(r.Context(), New(repo))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
