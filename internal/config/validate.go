package config

import (
	"fmt"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Query.validate(); err != nil {
		return fmt.Errorf("query: %w", err)
	}

	if err := c.Approval.validate(); err != nil {
		return fmt.Errorf("approval: %w", err)
	}

	if c.RateLimit.QueriesPerMinute <= 0 {
		return fmt.Errorf("rate_limit.queries_per_minute must be > 0 (got %d)", c.RateLimit.QueriesPerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %s)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (q *QueryConfig) validate() error {
	if q.DefaultPageSize <= 0 {
		return fmt.Errorf("default_page_size must be > 0 (got %d)", q.DefaultPageSize)
	}
	if q.MaxLimit > 0 && q.DefaultPageSize > q.MaxLimit {
		return fmt.Errorf("default_page_size %d exceeds max_limit %d", q.DefaultPageSize, q.MaxLimit)
	}
	if q.VisibilityCacheTTL < 0 {
		return fmt.Errorf("visibility_cache_ttl must be >= 0 (got %s)", q.VisibilityCacheTTL)
	}
	return nil
}

func (a *ApprovalConfig) validate() error {
	if a.SubmitCategory == "" {
		return fmt.Errorf("submit_category must not be empty")
	}
	if !domain.TieBreak(a.TieBreak).IsValid() {
		return fmt.Errorf("tie_break must be negative or positive (got %q)", a.TieBreak)
	}
	return nil
}

// SearchEnabled reports whether topic queries may run.
func (q QueryConfig) SearchEnabled() bool {
	return q.MaxLimit > 0
}
