package seeder

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// Fixture is a demo data set: accounts, groups, projects and topics with
// their votes. Accounts and groups are referenced by username and name.
type Fixture struct {
	Accounts []AccountFixture `yaml:"accounts"`
	Groups   []GroupFixture   `yaml:"groups"`
	Projects []ProjectFixture `yaml:"projects"`
	Topics   []TopicFixture   `yaml:"topics"`
}

type AccountFixture struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	FullName string `yaml:"full_name"`
}

type GroupFixture struct {
	Name         string   `yaml:"name"`
	ExternalName string   `yaml:"external_name"`
	Members      []string `yaml:"members"`
}

type ProjectFixture struct {
	Name   string   `yaml:"name"`
	Public bool     `yaml:"public"`
	Groups []string `yaml:"groups"`
}

type TopicFixture struct {
	Project    string            `yaml:"project"`
	Owner      string            `yaml:"owner"`
	Status     string            `yaml:"status"`
	Subject    string            `yaml:"subject"`
	ChangeSets int               `yaml:"change_sets"`
	Approvals  []ApprovalFixture `yaml:"approvals"`
}

type ApprovalFixture struct {
	Account   string `yaml:"account"`
	Category  string `yaml:"category"`
	Value     int16  `yaml:"value"`
	ChangeSet int    `yaml:"change_set"`
}

// LoadFixture reads and validates the fixture at path.
func LoadFixture(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	return ParseFixture(f)
}

// ParseFixture decodes and validates a fixture.
func ParseFixture(r io.Reader) (*Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := fx.validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// validate checks every reference resolves and every value is legal.
// Change-set counts default to one.
func (fx *Fixture) validate() error {
	var errs []domain.FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	accounts := make(map[string]bool, len(fx.Accounts))
	for i, a := range fx.Accounts {
		if a.Username == "" || a.Email == "" {
			add(fmt.Sprintf("accounts[%d]", i), "username and email are required")
		}
		if accounts[a.Username] {
			add(fmt.Sprintf("accounts[%d]", i), "duplicate username %q", a.Username)
		}
		accounts[a.Username] = true
	}

	groups := make(map[string]bool, len(fx.Groups))
	for i, g := range fx.Groups {
		if g.Name == "" {
			add(fmt.Sprintf("groups[%d]", i), "name is required")
		}
		groups[g.Name] = true
		for _, m := range g.Members {
			if !accounts[m] {
				add(fmt.Sprintf("groups[%d].members", i), "unknown account %q", m)
			}
		}
	}

	projects := make(map[string]bool, len(fx.Projects))
	for i, p := range fx.Projects {
		if p.Name == "" {
			add(fmt.Sprintf("projects[%d]", i), "name is required")
		}
		projects[p.Name] = true
		for _, g := range p.Groups {
			if !groups[g] {
				add(fmt.Sprintf("projects[%d].groups", i), "unknown group %q", g)
			}
		}
	}

	for i := range fx.Topics {
		t := &fx.Topics[i]
		field := fmt.Sprintf("topics[%d]", i)
		if !projects[t.Project] {
			add(field, "unknown project %q", t.Project)
		}
		if !accounts[t.Owner] {
			add(field, "unknown owner %q", t.Owner)
		}
		if !domain.TopicStatus(t.Status).IsValid() {
			add(field, "invalid status %q", t.Status)
		}
		if t.ChangeSets <= 0 {
			t.ChangeSets = 1
		}
		for j := range t.Approvals {
			a := &t.Approvals[j]
			if !accounts[a.Account] {
				add(fmt.Sprintf("%s.approvals[%d]", field, j), "unknown account %q", a.Account)
			}
			if a.Category == "" {
				add(fmt.Sprintf("%s.approvals[%d]", field, j), "category is required")
			}
			if a.ChangeSet <= 0 {
				a.ChangeSet = t.ChangeSets
			}
			if a.ChangeSet > t.ChangeSets {
				add(fmt.Sprintf("%s.approvals[%d]", field, j), "change set %d does not exist", a.ChangeSet)
			}
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
