// Package main is the entry point for the shelf-export-cli application.
// It registers the maintenance sub-commands (migrate, export, inspect, prune, token)
// and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/MGTheTrain/shelf-export/cmd/shelf-export-cli/internal/commands"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "shelf-export-cli",
		Short: "Maintenance tool for user data exports",
		Long: `shelf-export-cli runs user data exports outside the REST API.
It can migrate the schema, export a user synchronously to a local archive,
inspect an archive, prune expired archives and issue development tokens.

Settings are read from the file given by --config and may be overridden
through SHELF_EXPORT_* environment variables.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", os.Getenv("CONFIG_PATH"), "Path to the YAML configuration file")

	if err := commands.InitCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
