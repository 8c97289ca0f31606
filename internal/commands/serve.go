package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/askhat-bs/trackd/internal/config"
	"github.com/askhat-bs/trackd/internal/db"
	"github.com/askhat-bs/trackd/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Start the trackd REST API. Configuration comes from TRACKD_*
environment variables; flags override individual settings.

Examples:
  trackd serve
  trackd serve --addr :9090 --db /var/lib/trackd/trackd.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if path, _ := cmd.Flags().GetString("db"); path != "" {
			cfg.DBPath = path
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		setupLogger(cfg.LogLevel)

		if err := initDB(cfg); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		slog.Info("starting server", "addr", cfg.Addr)
		srv := server.New([]byte(cfg.JWTSecret), cfg.TokenTTL)
		return srv.Start(cfg.Addr)
	},
}

func setupLogger(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
	serveCmd.Flags().String("db", "", "SQLite database path")
}
