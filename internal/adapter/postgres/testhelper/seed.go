package testhelper

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// sortSeq keeps seeded sort keys increasing across tests sharing a database.
var (
	sortBase = time.Now().UnixMicro()
	sortSeq  atomic.Int64
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedAccount creates an account with unique email and username.
func SeedAccount(t *testing.T, pool *pgxpool.Pool) domain.Account {
	t.Helper()

	suffix := uniqueSuffix()
	a := domain.Account{
		ID:       uuid.New(),
		FullName: "Reviewer " + suffix,
		Email:    "reviewer-" + suffix + "@example.com",
		Username: "reviewer-" + suffix,
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO accounts (id, full_name, email, username) VALUES ($1, $2, $3, $4)`,
		a.ID, a.FullName, a.Email, a.Username,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAccount: %v", err)
	}
	return a
}

// SeedGroup creates a group with the given members.
func SeedGroup(t *testing.T, pool *pgxpool.Pool, members ...uuid.UUID) domain.Group {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	g := domain.Group{ID: uuid.New(), Name: "group-" + suffix, ExternalName: "ldap/group-" + suffix}
	_, err := pool.Exec(ctx,
		`INSERT INTO groups (id, name, external_name) VALUES ($1, $2, $3)`,
		g.ID, g.Name, g.ExternalName,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGroup: %v", err)
	}
	for _, m := range members {
		if _, err := pool.Exec(ctx,
			`INSERT INTO account_groups (account_id, group_id) VALUES ($1, $2)`, m, g.ID,
		); err != nil {
			t.Fatalf("testhelper: SeedGroup member: %v", err)
		}
	}
	return g
}

// SeedProject creates a project readable by the given groups, or by
// everyone when public.
func SeedProject(t *testing.T, pool *pgxpool.Pool, public bool, groups ...uuid.UUID) string {
	t.Helper()
	ctx := context.Background()

	name := "project-" + uniqueSuffix()
	if _, err := pool.Exec(ctx,
		`INSERT INTO projects (name, is_public) VALUES ($1, $2)`, name, public,
	); err != nil {
		t.Fatalf("testhelper: SeedProject: %v", err)
	}
	for _, g := range groups {
		if _, err := pool.Exec(ctx,
			`INSERT INTO project_group_access (project_name, group_id) VALUES ($1, $2)`, name, g,
		); err != nil {
			t.Fatalf("testhelper: SeedProject access: %v", err)
		}
	}
	return name
}

// SeedTopic creates a topic with one change-set. Each seeded topic sorts
// after every topic seeded before it.
func SeedTopic(t *testing.T, pool *pgxpool.Pool, project string, owner uuid.UUID, status domain.TopicStatus) domain.Topic {
	t.Helper()
	ctx := context.Background()

	updated := time.UnixMicro(sortBase + sortSeq.Add(1)).UTC()
	topic := domain.Topic{
		Key:              "T" + uniqueSuffix(),
		Project:          project,
		Owner:            owner,
		Status:           status,
		Subject:          "Topic " + uniqueSuffix(),
		CurrentChangeSet: 1,
		CreatedOn:        updated,
		LastUpdatedOn:    updated,
	}

	var id int32
	if err := pool.QueryRow(ctx, `SELECT nextval(pg_get_serial_sequence('topics', 'id'))`).Scan(&id); err != nil {
		t.Fatalf("testhelper: SeedTopic id: %v", err)
	}
	topic.ID = domain.TopicID(id)
	topic.SortKey = domain.NewSortKey(updated, topic.ID)

	_, err := pool.Exec(ctx,
		`INSERT INTO topics (id, topic_key, project, owner_id, status, sort_key, subject, current_change_set, created_on, last_updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, topic.Key, topic.Project, topic.Owner, topic.Status.String(), topic.SortKey,
		topic.Subject, topic.CurrentChangeSet, topic.CreatedOn, topic.LastUpdatedOn,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTopic: %v", err)
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO change_sets (topic_id, num, uploader) VALUES ($1, 1, $2)`, id, owner,
	); err != nil {
		t.Fatalf("testhelper: SeedTopic change-set: %v", err)
	}
	return topic
}

// SeedApproval records a vote by account on the topic's current change-set.
func SeedApproval(t *testing.T, pool *pgxpool.Pool, topic domain.Topic, account uuid.UUID, category string, value int16) domain.Approval {
	t.Helper()

	a := domain.Approval{
		ChangeSet: topic.CurrentChangeSetID(),
		Account:   account,
		Category:  category,
		Value:     value,
		GrantedOn: time.Now().UTC().Truncate(time.Microsecond),
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO approvals (topic_id, change_set_num, account_id, category_id, value, granted_on)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		int32(a.ChangeSet.TopicID), a.ChangeSet.Num, a.Account, a.Category, a.Value, a.GrantedOn,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedApproval: %v", err)
	}
	return a
}
