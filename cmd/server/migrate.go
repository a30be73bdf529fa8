package main

import (
	"os"

	"todo_expert/internal/platform/config"
	"todo_expert/internal/platform/database"
	"todo_expert/internal/platform/logging"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or inspect the embedded schema migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.Load()
		logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

		db, err := database.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(ctx, db.DB, args[0]); err != nil {
			return err
		}
		logger.Info(ctx, "Migration command finished.", "command", args[0])
		return nil
	},
}
