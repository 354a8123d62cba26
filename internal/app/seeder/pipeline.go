// Package seeder loads a demo data set into the review database.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

//go:generate moq -out store_mock_test.go -pkg seeder . store

type store interface {
	InsertAccount(ctx context.Context, a domain.Account) error
	InsertGroup(ctx context.Context, g domain.Group, members []uuid.UUID) error
	InsertProject(ctx context.Context, name string, public bool, groups []uuid.UUID) error
	// InsertTopic creates the topic with change-sets 1..CurrentChangeSet.
	InsertTopic(ctx context.Context, t domain.Topic) (domain.TopicID, error)
	InsertApproval(ctx context.Context, a domain.Approval) error
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// allPhases defines the canonical execution order.
var allPhases = []string{"accounts", "groups", "projects", "topics"}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Duration time.Duration
}

// Pipeline writes a fixture in one transaction, phase by phase.
type Pipeline struct {
	log     *slog.Logger
	tx      txRunner
	repo    store
	cfg     Config
	now     func() time.Time
	results map[string]PhaseResult

	accounts map[string]uuid.UUID
	groups   map[string]uuid.UUID
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, tx txRunner, repo store, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		tx:      tx,
		repo:    repo,
		cfg:     cfg,
		now:     cfg.clock(),
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// Run writes fx. Any failure rolls back the whole fixture. In dry-run mode
// nothing is written.
func (p *Pipeline) Run(ctx context.Context, fx *Fixture) error {
	if p.cfg.DryRun {
		p.log.Info("dry run, nothing written",
			slog.Int("accounts", len(fx.Accounts)),
			slog.Int("groups", len(fx.Groups)),
			slog.Int("projects", len(fx.Projects)),
			slog.Int("topics", len(fx.Topics)),
		)
		return nil
	}

	p.accounts = make(map[string]uuid.UUID, len(fx.Accounts))
	p.groups = make(map[string]uuid.UUID, len(fx.Groups))

	return p.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, phase := range allPhases {
			start := time.Now()
			p.log.Info("starting phase", slog.String("phase", phase))

			var (
				n   int
				err error
			)
			switch phase {
			case "accounts":
				n, err = p.runAccounts(ctx, fx.Accounts)
			case "groups":
				n, err = p.runGroups(ctx, fx.Groups)
			case "projects":
				n, err = p.runProjects(ctx, fx.Projects)
			case "topics":
				n, err = p.runTopics(ctx, fx.Topics)
			}
			if err != nil {
				return fmt.Errorf("phase %s: %w", phase, err)
			}

			p.results[phase] = PhaseResult{Inserted: n, Duration: time.Since(start)}
			p.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("inserted", n),
				slog.Duration("duration", time.Since(start)),
			)
		}
		return nil
	})
}

func (p *Pipeline) runAccounts(ctx context.Context, accounts []AccountFixture) (int, error) {
	for _, a := range accounts {
		id := uuid.New()
		if err := p.repo.InsertAccount(ctx, domain.Account{
			ID:       id,
			FullName: a.FullName,
			Email:    a.Email,
			Username: a.Username,
		}); err != nil {
			return 0, fmt.Errorf("account %s: %w", a.Username, err)
		}
		p.accounts[a.Username] = id
	}
	return len(accounts), nil
}

func (p *Pipeline) runGroups(ctx context.Context, groups []GroupFixture) (int, error) {
	for _, g := range groups {
		members := make([]uuid.UUID, 0, len(g.Members))
		for _, m := range g.Members {
			members = append(members, p.accounts[m])
		}
		id := uuid.New()
		if err := p.repo.InsertGroup(ctx, domain.Group{ID: id, Name: g.Name, ExternalName: g.ExternalName}, members); err != nil {
			return 0, fmt.Errorf("group %s: %w", g.Name, err)
		}
		p.groups[g.Name] = id
	}
	return len(groups), nil
}

func (p *Pipeline) runProjects(ctx context.Context, projects []ProjectFixture) (int, error) {
	for _, pr := range projects {
		groups := make([]uuid.UUID, 0, len(pr.Groups))
		for _, g := range pr.Groups {
			groups = append(groups, p.groups[g])
		}
		if err := p.repo.InsertProject(ctx, pr.Name, pr.Public, groups); err != nil {
			return 0, fmt.Errorf("project %s: %w", pr.Name, err)
		}
	}
	return len(projects), nil
}

// runTopics inserts topics in fixture order; later topics sort after
// earlier ones. The count includes votes.
func (p *Pipeline) runTopics(ctx context.Context, topics []TopicFixture) (int, error) {
	base := p.now().UTC().Truncate(time.Microsecond)
	n := 0
	for i, tf := range topics {
		updated := base.Add(time.Duration(i) * time.Second)
		t := domain.Topic{
			Key:              "T" + uuid.New().String()[:8],
			Project:          tf.Project,
			Owner:            p.accounts[tf.Owner],
			Status:           domain.TopicStatus(tf.Status),
			Subject:          tf.Subject,
			CurrentChangeSet: int32(tf.ChangeSets),
			CreatedOn:        updated,
			LastUpdatedOn:    updated,
		}
		id, err := p.repo.InsertTopic(ctx, t)
		if err != nil {
			return 0, fmt.Errorf("topic %q: %w", tf.Subject, err)
		}
		n++

		for _, af := range tf.Approvals {
			if err := p.repo.InsertApproval(ctx, domain.Approval{
				ChangeSet: domain.ChangeSetID{TopicID: id, Num: int32(af.ChangeSet)},
				Account:   p.accounts[af.Account],
				Category:  af.Category,
				Value:     af.Value,
				GrantedOn: updated,
			}); err != nil {
				return 0, fmt.Errorf("topic %q vote by %s: %w", tf.Subject, af.Account, err)
			}
			n++
		}
	}
	return n, nil
}
