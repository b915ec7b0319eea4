package cmd

import (
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe/internal"
	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/service"
	"github.com/rocketscienceinc/tictactoe/transport/terminal"
)

func Play() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal, two players on one keyboard",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			// the board owns stdout; logs go to stderr
			logger := initLogger(conf, cmd.ErrOrStderr())

			ctx, cancel := app.NotifyContext(logger)
			defer cancel()

			// a terminal game lives only as long as the process
			conf.Storage = config.StorageMemory

			gameRepo, closeRepo, err := app.NewGameRepository(ctx, conf)
			if err != nil {
				return err
			}
			defer func() { _ = closeRepo() }()

			gameService := service.NewGameService(logger, gameRepo)
			out := termenv.NewOutput(cmd.OutOrStdout())

			return terminal.NewConsole(logger, gameService, cmd.InOrStdin(), out).Run(ctx)
		},
	}
}
