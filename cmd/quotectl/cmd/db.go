package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/sanquote/internal/migrations"
	"github.com/Simplici0/sanquote/internal/seed"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.open()
			if err != nil {
				return err
			}
			defer database.Close()

			if err := migrations.Up(database); err != nil {
				return err
			}
			version, err := migrations.Version(database)
			if err != nil {
				return err
			}
			a.log.Info("migrations applied", zap.Int64("version", version))
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store the default config of every service",
		Long: `Store the compiled-in config of every service that has none yet. With
--reset, stored configs that differ from the defaults are overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.open()
			if err != nil {
				return err
			}
			defer database.Close()

			if err := migrations.Up(database); err != nil {
				return err
			}
			stats, err := seed.Run(database, seed.Config{Reset: reset})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d, updated %d\n", stats.Inserts, stats.Updates)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "overwrite stored configs with the defaults")
	return cmd
}
