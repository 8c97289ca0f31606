package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askhat-bs/trackd/internal/config"
	"github.com/askhat-bs/trackd/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "trackd",
	Short: "A personal task and time tracking server",
	Long: `trackd is a multi-user REST service that combines task management
with time tracking. Users own tasks, record time on them with start/stop
timers, and read aggregate statistics from the dashboard endpoints.`,
}

// initDB loads the configuration and opens the database.
func initDB(cfg config.Config) error {
	path := cfg.DBPath
	if path == "" {
		defaultPath, err := db.DefaultDatabasePath()
		if err != nil {
			return fmt.Errorf("failed to resolve database path: %w", err)
		}
		path = defaultPath
	}
	return db.Initialize(path)
}

// SetVersion sets the version information.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}
