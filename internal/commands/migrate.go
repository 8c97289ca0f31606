package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askhat-bs/trackd/internal/config"
	"github.com/askhat-bs/trackd/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}
		if path, _ := cmd.Flags().GetString("db"); path != "" {
			cfg.DBPath = path
		}

		if err := initDB(cfg); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		fmt.Println("database schema is up to date")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("trackd %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	migrateCmd.Flags().String("db", "", "SQLite database path")
}
