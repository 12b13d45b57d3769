package app

import (
	"context"
	"time"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// ExportPruner periodically removes archives older than the retention window
type ExportPruner struct {
	service   exports.ExportJobService
	retention time.Duration
	logger    logger.Logger
	now       func() time.Time
}

// NewExportPruner creates a pruner keeping archives for retentionDays
func NewExportPruner(service exports.ExportJobService, retentionDays int, logger logger.Logger) *ExportPruner {
	return &ExportPruner{
		service:   service,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger,
		now:       time.Now,
	}
}

// PruneOnce removes every archive that is past retention
func (p *ExportPruner) PruneOnce(ctx context.Context) (int, error) {
	return p.service.PruneExpired(ctx, p.now().UTC().Add(-p.retention))
}

// Run prunes immediately and then on every interval until ctx is cancelled
func (p *ExportPruner) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := p.PruneOnce(ctx); err != nil && ctx.Err() == nil {
			p.logger.Error("Failed to prune expired exports", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
