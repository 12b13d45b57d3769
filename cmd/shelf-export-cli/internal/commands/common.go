package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
		Service:  "shelf-export-cli",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// loadConfig reads the file named by the persistent --config flag
func loadConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}
	return config.Load(path)
}

// InitCommands registers all sub-commands with the root command
func InitCommands(rootCmd *cobra.Command) error {
	handler, err := NewCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create command handler: %w", err)
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  handler.MigrateCmd,
	}
	rootCmd.AddCommand(migrateCmd)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's data synchronously to a local archive",
		RunE:  handler.ExportCmd,
	}
	exportCmd.Flags().Uint("user-id", 0, "ID of the user to export")
	exportCmd.Flags().String("output-file", "", "Path of the tar.gz archive to write")
	_ = exportCmd.MarkFlagRequired("user-id")
	_ = exportCmd.MarkFlagRequired("output-file")
	rootCmd.AddCommand(exportCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the contents of an export archive",
		RunE:  handler.InspectCmd,
	}
	inspectCmd.Flags().String("input-file", "", "Path of the tar.gz archive to read")
	_ = inspectCmd.MarkFlagRequired("input-file")
	rootCmd.AddCommand(inspectCmd)

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete archives older than the retention window",
		RunE:  handler.PruneCmd,
	}
	pruneCmd.Flags().Int("older-than-days", 0, "Retention in days (defaults to export.retention_days)")
	rootCmd.AddCommand(pruneCmd)

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a user, signed with auth.jwt_secret",
		RunE:  handler.TokenCmd,
	}
	tokenCmd.Flags().Uint("user-id", 0, "ID of the user the token is issued for")
	tokenCmd.Flags().Duration("ttl", time.Hour, "Lifetime of the token")
	_ = tokenCmd.MarkFlagRequired("user-id")
	rootCmd.AddCommand(tokenCmd)

	return nil
}
