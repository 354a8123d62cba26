// Command seeder loads a demo data set of accounts, groups, projects and
// topics into the review database. It is meant for local development.
//
// Flags:
//
//	--fixture        path to the fixture YAML file (overrides config)
//	--dry-run        validate the fixture without writing to DB
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/topicreview-backend/internal/adapter/postgres"
	"github.com/heartmarshall/topicreview-backend/internal/adapter/postgres/seed"
	"github.com/heartmarshall/topicreview-backend/internal/app"
	"github.com/heartmarshall/topicreview-backend/internal/app/seeder"
	"github.com/heartmarshall/topicreview-backend/internal/config"
)

func main() {
	fixtureFlag := flag.String("fixture", "", "path to fixture YAML file")
	dryRunFlag := flag.Bool("dry-run", false, "validate the fixture without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *dryRunFlag {
		seederCfg.DryRun = true
	}
	if *fixtureFlag != "" {
		seederCfg.FixturePath = *fixtureFlag
	}
	if seederCfg.FixturePath == "" {
		logger.Error("no fixture given: set --fixture or SEEDER_FIXTURE_PATH")
		os.Exit(1)
	}

	fx, err := seeder.LoadFixture(seederCfg.FixturePath)
	if err != nil {
		logger.Error("load fixture", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	pipeline := seeder.NewPipeline(logger, postgres.NewTxManager(pool), seed.New(pool), *seederCfg)
	if err := pipeline.Run(ctx, fx); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}

	for name, res := range pipeline.Results() {
		logger.Info("phase done",
			slog.String("phase", name),
			slog.Int("inserted", res.Inserted),
			slog.Duration("duration", res.Duration),
		)
	}
	logger.Info("seed completed", slog.Bool("dry_run", seederCfg.DryRun))
}
