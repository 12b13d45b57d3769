package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/domain/library"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// ExportHandler defines the interface for handling export-related operations
type ExportHandler interface {
	Start(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	DownloadByID(ctx *gin.Context)
	Stop(ctx *gin.Context)
}

// exportHandler struct holds the services
type exportHandler struct {
	exportJobService      exports.ExportJobService
	exportDownloadService exports.ExportDownloadService
	logger                logger.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportJobService exports.ExportJobService, exportDownloadService exports.ExportDownloadService, logger logger.Logger) ExportHandler {
	return &exportHandler{
		exportJobService:      exportJobService,
		exportDownloadService: exportDownloadService,
		logger:                logger,
	}
}

// Start creates an export job for the authenticated user
func (handler *exportHandler) Start(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		abortWithError(ctx, http.StatusUnauthorized, ErrMissingToken.Error())
		return
	}

	job, err := handler.exportJobService.StartJob(ctx.Request.Context(), userID)
	if err != nil {
		handler.writeError(ctx, err, "could not start export")
		return
	}

	ctx.JSON(http.StatusAccepted, NewExportJobResponse(job))
}

// List returns the authenticated user's export jobs, newest first
func (handler *exportHandler) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		abortWithError(ctx, http.StatusUnauthorized, ErrMissingToken.Error())
		return
	}

	jobs, err := handler.exportJobService.List(ctx.Request.Context(), userID)
	if err != nil {
		handler.writeError(ctx, err, "could not list exports")
		return
	}

	listResponse := make([]ExportJobResponse, 0, len(jobs))
	for _, job := range jobs {
		listResponse = append(listResponse, NewExportJobResponse(job))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID fetches an export job by ID
func (handler *exportHandler) GetByID(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		abortWithError(ctx, http.StatusUnauthorized, ErrMissingToken.Error())
		return
	}
	jobID := ctx.Param("id")

	job, err := handler.exportJobService.GetByID(ctx.Request.Context(), jobID, userID)
	if err != nil {
		handler.writeError(ctx, err, fmt.Sprintf("export with id %s not found", jobID))
		return
	}

	ctx.JSON(http.StatusOK, NewExportJobResponse(job))
}

// DownloadByID streams the archive of a completed export job
func (handler *exportHandler) DownloadByID(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		abortWithError(ctx, http.StatusUnauthorized, ErrMissingToken.Error())
		return
	}
	jobID := ctx.Param("id")

	rc, job, err := handler.exportDownloadService.DownloadByID(ctx.Request.Context(), jobID, userID)
	if err != nil {
		handler.writeError(ctx, err, fmt.Sprintf("could not download export with id %s", jobID))
		return
	}
	defer rc.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="export-%s.tar.gz"`, job.ID),
		"X-Checksum-Sha256":   job.Checksum,
	}
	ctx.DataFromReader(http.StatusOK, job.ExportSize, "application/gzip", rc, extraHeaders)
}

// Stop ends an unfinished export job
func (handler *exportHandler) Stop(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		abortWithError(ctx, http.StatusUnauthorized, ErrMissingToken.Error())
		return
	}
	jobID := ctx.Param("id")

	job, err := handler.exportJobService.Stop(ctx.Request.Context(), jobID, userID)
	if err != nil {
		handler.writeError(ctx, err, fmt.Sprintf("could not stop export with id %s", jobID))
		return
	}

	ctx.JSON(http.StatusOK, NewExportJobResponse(job))
}

// writeError maps domain errors to status codes. Jobs of other users are
// reported as missing.
func (handler *exportHandler) writeError(ctx *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, exports.ErrJobNotFound),
		errors.Is(err, exports.ErrForbidden),
		errors.Is(err, library.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, exports.ErrJobNotReady),
		errors.Is(err, exports.ErrJobFinished):
		status = http.StatusConflict
	case errors.Is(err, exports.ErrQueueClosed):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		handler.logger.Error("Export request failed", "path", ctx.FullPath(), "error", err)
		ctx.JSON(status, ErrorResponse{Message: message})
		return
	}
	ctx.JSON(status, ErrorResponse{Message: fmt.Sprintf("%s: %v", message, err)})
}
