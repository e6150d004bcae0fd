package cli

import (
	"fmt"

	"github.com/mkrogh/studyplan/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *App) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for the browser frontend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config.Server
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			srv := server.New(cfg, app.Plans, app.Chat, app.Log)
			addr := ":" + cfg.Port
			app.Log.Info("starting HTTP server", zap.String("addr", addr))
			fmt.Printf("Listening on http://localhost%s\n", addr)
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&port, "port", "3000", "Port to listen on")

	return cmd
}
