// Package cmd provides the quotectl commands.
package cmd

import (
	"database/sql"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/sanquote/internal/config"
	"github.com/Simplici0/sanquote/internal/db"
	"github.com/Simplici0/sanquote/internal/logging"
)

// app carries what every command shares.
type app struct {
	dbPath  string
	verbose bool
	log     *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "quotectl",
		Short: "Price sanitation services and manage quoting data",
		Long: `quotectl prices service quotes from the command line and manages the
quoting database.

Examples:
  quotectl services
  quotectl compute floor_scrub --qty fixtures=5 --frequency monthly
  quotectl migrate
  quotectl seed --reset
  quotectl config show carpet --default`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := cfg.LogLevel
			if a.verbose {
				level = "debug"
			}
			log, err := logging.New(logging.Config{
				Level:       level,
				Format:      cfg.LogFormat,
				Output:      "stderr",
				Development: cfg.IsDev(),
			})
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.dbPath, "db", cfg.DBPath, "sqlite database path")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServicesCmd(a),
		newComputeCmd(a),
		newMigrateCmd(a),
		newSeedCmd(a),
		newConfigCmd(a),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) open() (*sql.DB, error) {
	a.log.Debug("opening database", zap.String("path", a.dbPath))
	return db.Open(a.dbPath)
}
