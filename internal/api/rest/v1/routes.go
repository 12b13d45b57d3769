package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	jwtManager *JWTManager,
	exportJobService exports.ExportJobService,
	exportDownloadService exports.ExportDownloadService,
	logger logger.Logger) {

	v1 := r.Group(BasePath, RequireAuth(jwtManager))

	// Exports Routes
	exportHandler := NewExportHandler(exportJobService, exportDownloadService, logger)
	v1.POST("/exports", exportHandler.Start)
	v1.GET("/exports", exportHandler.List)
	v1.GET("/exports/:id", exportHandler.GetByID)
	v1.GET("/exports/:id/file", exportHandler.DownloadByID)
	v1.POST("/exports/:id/stop", exportHandler.Stop)
}

// SetupOperationalRoutes registers the unauthenticated health and metrics endpoints
func SetupOperationalRoutes(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
