package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	v1 "github.com/MGTheTrain/shelf-export/internal/api/rest/v1"
	"github.com/MGTheTrain/shelf-export/internal/bootstrap"
	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/archive"
	"github.com/MGTheTrain/shelf-export/internal/infrastructure/persistence"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// CommandHandler encapsulates logic for handling export operations via CLI.
type CommandHandler struct {
	logger logger.Logger
}

// NewCommandHandler initializes and returns a CommandHandler instance with a console logger.
func NewCommandHandler() (*CommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return &CommandHandler{logger: loggerInstance}, nil
}

// MigrateCmd creates or updates the database schema
func (h *CommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := persistence.NewDBConnection(cfg.Database, h.logger)
	if err != nil {
		return err
	}
	defer func() { _ = persistence.CloseDB(db) }()

	if err := persistence.Migrate(db); err != nil {
		return err
	}
	h.logger.Info("Database migrated", "type", cfg.Database.Type)
	return nil
}

// ExportCmd collects a user's data and writes the archive to a local file
// without going through the job queue
func (h *CommandHandler) ExportCmd(cmd *cobra.Command, _ []string) error {
	userID, err := cmd.Flags().GetUint("user-id")
	if err != nil {
		return fmt.Errorf("invalid user-id flag: %w", err)
	}
	outputFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return fmt.Errorf("invalid output-file flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	deps, err := bootstrap.Initialize(ctx, cfg, nil, h.logger)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Close() }()

	size, checksum, err := writeArchive(ctx, deps, userID, outputFilePath)
	if err != nil {
		return err
	}

	h.logger.Info("Export written", "user_id", userID, "file", outputFilePath, "size", size, "sha256", checksum)
	return nil
}

func writeArchive(ctx context.Context, deps *bootstrap.Dependencies, userID uint, outputFilePath string) (int64, string, error) {
	bundle, user, editions, err := deps.Collector.Collect(ctx, userID)
	if err != nil {
		return 0, "", err
	}

	file, err := os.OpenFile(outputFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create %s: %w", outputFilePath, err)
	}

	hasher := sha256.New()
	counter := &countingWriter{}
	archiveErr := deps.Archiver.Archive(ctx, io.MultiWriter(file, hasher, counter), bundle, user, editions)
	if err := errors.Join(archiveErr, file.Close()); err != nil {
		_ = os.Remove(outputFilePath)
		return 0, "", err
	}
	return counter.n, hex.EncodeToString(hasher.Sum(nil)), nil
}

// InspectCmd prints a summary of an export archive
func (h *CommandHandler) InspectCmd(cmd *cobra.Command, _ []string) error {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}

	file, err := os.Open(inputFilePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", inputFilePath, err)
	}
	defer file.Close()

	contents, err := archive.Read(file)
	if err != nil {
		return err
	}
	bundle, err := exports.DecodeBundle(contents.Bundle)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "user: %s\n", bundle.User.Username)
	fmt.Fprintf(out, "goals: %d\n", len(bundle.Goals))
	fmt.Fprintf(out, "books: %d\n", len(bundle.Books))
	for _, book := range bundle.Books {
		if book.Book != nil {
			fmt.Fprintf(out, "  - %s\n", book.Title)
		}
	}
	fmt.Fprintf(out, "saved lists: %d\n", len(bundle.SavedLists))
	fmt.Fprintf(out, "follows: %d\n", len(bundle.Follows))
	fmt.Fprintf(out, "blocked users: %d\n", len(bundle.BlockedUsers))
	fmt.Fprintf(out, "images: %d\n", len(contents.Images))
	for _, name := range contents.ImageNames() {
		fmt.Fprintf(out, "  - %s (%d bytes)\n", name, len(contents.Images[name]))
	}
	return nil
}

// PruneCmd deletes archives of jobs finished before the retention window
func (h *CommandHandler) PruneCmd(cmd *cobra.Command, _ []string) error {
	olderThanDays, err := cmd.Flags().GetInt("older-than-days")
	if err != nil {
		return fmt.Errorf("invalid older-than-days flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if olderThanDays <= 0 {
		olderThanDays = cfg.Export.RetentionDays
	}
	if olderThanDays <= 0 {
		return errors.New("no retention configured: set --older-than-days or export.retention_days")
	}

	deps, err := bootstrap.Initialize(cmd.Context(), cfg, nil, h.logger)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Close() }()

	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	pruned, err := deps.ExportJobService.PruneExpired(cmd.Context(), cutoff)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pruned %d archives\n", pruned)
	return nil
}

// TokenCmd prints a bearer token for the REST API
func (h *CommandHandler) TokenCmd(cmd *cobra.Command, _ []string) error {
	userID, err := cmd.Flags().GetUint("user-id")
	if err != nil {
		return fmt.Errorf("invalid user-id flag: %w", err)
	}
	ttl, err := cmd.Flags().GetDuration("ttl")
	if err != nil {
		return fmt.Errorf("invalid ttl flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Auth.Validate(); err != nil {
		return err
	}

	token, err := v1.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer).Generate(userID, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

// countingWriter counts the bytes written through it
type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}
