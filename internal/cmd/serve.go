package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe/internal"
)

func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP and WebSocket",
		Long: heredoc.Doc(`
			Serve the game to a browser front end.

			Routes:
			  GET    /ping                     health check
			  GET    /api/game                 current game, starts one if needed
			  POST   /api/game/cells/{index}   mark cell 0-8
			  POST   /api/game/reset           start over
			  DELETE /api/game                 end the session
			  GET    /ws                       WebSocket (connect, game:state, game:move, game:reset)
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if port, _ := cmd.Flags().GetString("port"); port != "" {
				conf.HTTPPort = port
			}

			logger := initLogger(conf, cmd.OutOrStdout())

			ctx, cancel := app.NotifyContext(logger)
			defer cancel()

			return app.RunApp(ctx, logger, conf)
		},
	}

	cmd.Flags().StringP("port", "p", "", "Override the configured HTTP port")

	return cmd
}
