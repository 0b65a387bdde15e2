package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/alexanderramin/studyplanner/internal/cli"
	"github.com/alexanderramin/studyplanner/internal/config"
	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/intelligence"
	"github.com/alexanderramin/studyplanner/internal/llm"
	"github.com/alexanderramin/studyplanner/internal/logging"
	"github.com/alexanderramin/studyplanner/internal/repository"
	"github.com/alexanderramin/studyplanner/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	gen, err := llm.NewGenerator(cfg.LLM)
	if err != nil {
		return fmt.Errorf("configuring model provider: %w", err)
	}
	if cfg.LLM.Provider == llm.ProviderGemini && cfg.LLM.APIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set; schedule generation will fail until it is")
	}
	engine := intelligence.NewEngine(llm.NewClient(gen, cfg.LLM, observer, logger), logger)

	opts := []service.PlannerOption{
		service.WithModel(cfg.LLM.Model),
		service.WithLogger(logger),
		service.WithObserver(service.NewLogUseCaseObserver(logger)),
	}

	// An empty database path runs without persistence.
	if cfg.Database.Path != "" {
		database, err := db.OpenDB(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		opts = append(opts, service.WithStore(
			repository.NewSQLiteScheduleRepo(database),
			db.NewSQLiteUnitOfWork(database).WithLogger(logger),
		))
		logger.Debug("schedule store opened", zap.String("path", cfg.Database.Path))
	}

	app := &cli.App{
		Planner: service.NewPlannerService(engine, opts...),
		Logger:  logger,
		Addr:    cfg.Server.Addr,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		},
	}

	err = cli.NewRootCmd(app).ExecuteContext(context.Background())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
