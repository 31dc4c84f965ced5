package command

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/qfoodsapp/qfoods/internal/sec"
)

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Account administration commands",
	}
	cmd.AddCommand(
		userCreateCommand(),
		userDeleteCommand(),
		userListCommand(),
	)
	return cmd
}

func userCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME EMAIL",
		Short: "Create account",
		Long: "Creates an account for the provided username and email. Passwords may be\n" +
			"provided via stdin or through the interactive prompt.",

		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			name, email := args[0], args[1]
			passwd, err := prompt("password: ", true)
			if err != nil {
				return err
			}
			if _, err = sec.Register(cmd.Context(), store, name, email, string(passwd)); err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "created account", slog.String("name", name))
			return nil
		},
	}
}

func userDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete account",
		Long: "Permanently deletes the account. " +
			"This operation is permanent and irreversible.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			name := args[0]
			logger = logger.With(slog.String("name", name))
			account, err := store.GetAccountByName(cmd.Context(), name)
			if err != nil {
				return err
			}
			resp, err := prompt("Are you sure you want to delete this account? [y|N] ", false)
			if !bytes.Equal(resp, []byte{'y'}) || err != nil {
				logger.InfoContext(cmd.Context(), "aborted account deletion")
				return err
			}
			if err = store.DeleteAccount(cmd.Context(), account.ID); err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "account deleted")
			return nil
		},
	}
}

func userListCommand() *cobra.Command {
	const pageSize = 100
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			_, _, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			afterName := ""
			for {
				accounts, err := store.ListAccounts(cmd.Context(), afterName, pageSize)
				if err != nil {
					return err
				}
				for _, account := range accounts {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", account.Name, account.Email)
				}
				if len(accounts) < pageSize {
					return nil
				}
				afterName = accounts[len(accounts)-1].Name
			}
		},
	}
}
