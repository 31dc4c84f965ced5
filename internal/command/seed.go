package command

import (
	"errors"

	"github.com/spf13/cobra"
)

func seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo restaurant set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			if err := store.SeedRestaurants(cmd.Context()); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "seeded restaurants")
			return nil
		},
	}
}
