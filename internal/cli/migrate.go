package cli

import (
	"fmt"

	"github.com/jengzang/tour-planner-go/internal/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd applies pending schema migrations
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Applies pending database migrations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := database.Open(database.Config{Path: cfg.DBPath}, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := database.NewMigrationManager(db, logger).Run()
		if err != nil {
			return err
		}

		logger.Info("migrations finished", zap.Int("applied", n), zap.String("db_path", cfg.DBPath))
		fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
