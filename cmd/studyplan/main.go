package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mkrogh/studyplan/internal/cli"
	"github.com/mkrogh/studyplan/internal/config"
	"github.com/mkrogh/studyplan/internal/db"
	"github.com/mkrogh/studyplan/internal/intelligence"
	"github.com/mkrogh/studyplan/internal/llm"
	"github.com/mkrogh/studyplan/internal/repository"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	planRepo := repository.NewSQLitePlanRepo(database)
	chat := llm.NewChatClient(cfg.Provider, llm.NewZapObserver(log))

	app := &cli.App{
		Plans:  intelligence.NewPlanService(chat, planRepo, log),
		Chat:   chat,
		Config: *cfg,
		Log:    log,
	}

	// Detect interactive terminal for the generate form.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
