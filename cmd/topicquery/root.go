package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/heartmarshall/topicreview-backend/internal/app"
	"github.com/heartmarshall/topicreview-backend/internal/config"
	"github.com/heartmarshall/topicreview-backend/internal/domain"
	"github.com/heartmarshall/topicreview-backend/internal/topicquery"
)

type accountFinder interface {
	Find(ctx context.Context, who string) (*domain.Account, error)
}

type groupLister interface {
	MemberOf(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error)
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TOPICQUERY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "topicquery [flags] <query>",
		Short: "Run a topic query and print the visible results",
		Example: `  topicquery --user alice@example.com "status:open reviewer:bob"
  topicquery --format json "project:^platform/.* limit:10"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := topicquery.ParseOutputFormat(v.GetString("format"))
			if err != nil {
				return err
			}
			cfg, err := loadConfig(v.GetString("config"))
			if err != nil {
				return err
			}
			return runQuery(cmd.Context(), cfg, v.GetString("user"), strings.Join(args, " "), format)
		},
	}

	f := cmd.PersistentFlags()
	f.String("config", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	f.String("format", "text", "output format: text or json")
	f.String("user", "", "account to run the query as: id, email, username or full name (default: anonymous)")
	_ = v.BindPFlags(f)

	cmd.AddCommand(newTokenCmd(v))
	return cmd
}

// loadConfig reads path, or falls back to CONFIG_PATH and the default
// locations when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func runQuery(ctx context.Context, cfg *config.Config, who, text string, format topicquery.OutputFormat) error {
	log := app.NewLogger(cfg.Log)

	c, err := app.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()

	u, err := resolveUser(ctx, c.Accounts, c.Groups, who)
	if err != nil {
		return err
	}
	return c.Processor.Query(c.Control.Scope(ctx), u, text, os.Stdout, format)
}

// resolveUser turns the --user flag into the user the query runs as.
func resolveUser(ctx context.Context, accounts accountFinder, groups groupLister, who string) (*domain.User, error) {
	who = strings.TrimSpace(who)
	if who == "" {
		return domain.Anonymous(), nil
	}

	id, err := uuid.Parse(who)
	if err != nil {
		a, err := accounts.Find(ctx, who)
		if err != nil {
			return nil, fmt.Errorf("resolve user %q: %w", who, err)
		}
		id = a.ID
	}

	memberOf, err := groups.MemberOf(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve groups of %s: %w", id, err)
	}
	return domain.NewAccountUser(id, memberOf...), nil
}
