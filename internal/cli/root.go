package cli

import (
	"github.com/mkrogh/studyplan/internal/config"
	"github.com/mkrogh/studyplan/internal/intelligence"
	"github.com/mkrogh/studyplan/internal/llm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the services and configuration the CLI commands run against.
type App struct {
	Plans  intelligence.PlanService
	Chat   llm.ChatClient
	Config config.Config
	Log    *zap.Logger

	// IsInteractive reports whether stdin is a terminal. Commands use it to
	// decide between flags and the interactive form.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "studyplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "studyplan",
		Short: "LLM-backed study plan generator",
	}

	root.AddCommand(
		newGenerateCmd(app),
		newShowCmd(app),
		newDaysCmd(app),
		newServeCmd(app),
	)

	return root
}
