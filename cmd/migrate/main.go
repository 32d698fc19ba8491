package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storefront_backend/platform/config"
	"storefront_backend/platform/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the storefront database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newMigrateCmd(db.MigrateUp, "Apply all pending migrations"))
	cmd.AddCommand(newMigrateCmd(db.MigrateDown, "Roll back the most recent migration"))
	cmd.AddCommand(newMigrateCmd(db.MigrateStatus, "Show applied and pending migrations"))
	return cmd
}

func newMigrateCmd(command, short string) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   command,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			if dir != "" {
				cfg.MigrationsDir = dir
			}
			if err := db.Migrate(cmd.Context(), cfg, command); err != nil {
				return fmt.Errorf("migrate %s: %w", command, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", command)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "read migrations from this directory instead of the embedded set")
	return cmd
}
