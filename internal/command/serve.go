package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/qfoodsapp/qfoods/internal/app"
	"github.com/qfoodsapp/qfoods/internal/server"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the food ordering REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			grp, ctx := errgroup.WithContext(cmd.Context())

			listener, err := server.Listen(ctx, cfg.ListenAddress)
			if err != nil {
				return err
			}

			srv := app.New(cfg, logger, store)

			logger.InfoContext(ctx,
				"starting API server...",
				slog.String("address", cfg.ListenAddress),
			)
			server.Serve(ctx, grp, srv.Server, listener)
			return grp.Wait()
		},
	}
}
