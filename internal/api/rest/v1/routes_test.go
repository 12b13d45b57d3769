//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
	"github.com/MGTheTrain/shelf-export/internal/pkg/testutil"
)

// TestSetupRoutes_RoutesRegistered verifies that routes are registered behind authentication
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockJobService := new(MockExportJobService)
	mockDownloadService := new(MockExportDownloadService)
	manager := NewJWTManager(testSecret, "")

	mockJobService.On("StartJob", mock.Anything, uint(5)).Return(exports.NewExportJob(5), nil)
	mockJobService.On("List", mock.Anything, uint(5)).Return([]*exports.ExportJob{}, nil)
	mockJobService.On("GetByID", mock.Anything, "abc", uint(5)).Return(nil, exports.ErrJobNotFound)
	mockJobService.On("Stop", mock.Anything, "abc", uint(5)).Return(nil, exports.ErrJobNotFound)
	mockDownloadService.On("DownloadByID", mock.Anything, "abc", uint(5)).Return(nil, nil, exports.ErrJobNotFound)

	r := gin.New()
	SetupRoutes(r, manager, mockJobService, mockDownloadService, testutil.SetupTestLogger(t))

	token, err := manager.Generate(5, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{http.MethodPost, "/api/v1/exports", http.StatusAccepted},
		{http.MethodGet, "/api/v1/exports", http.StatusOK},
		{http.MethodGet, "/api/v1/exports/abc", http.StatusNotFound},
		{http.MethodGet, "/api/v1/exports/abc/file", http.StatusNotFound},
		{http.MethodPost, "/api/v1/exports/abc/stop", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "route should require a token")

			req, _ = http.NewRequest(tt.method, tt.url, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w = httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
	mockJobService.AssertExpectations(t)
	mockDownloadService.AssertExpectations(t)
}

func TestSetupOperationalRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_requests_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()

	r := gin.New()
	SetupOperationalRoutes(r, registry)

	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	req, _ = http.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_requests_total 1")
}
