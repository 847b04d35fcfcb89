package apiserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubev2v/fracture-planner/internal/config"
	"github.com/kubev2v/fracture-planner/internal/estimation/solvers"
)

const computeBody = `{"model":"kgd","input":{"youngModulus":3e10,"poissonRatio":0.25,"sigmaMin":3e7,
"leakoffCoefficient":5e-5,"viscosity":0.1,"rate":0.05,"height":30,"toughness":1e6,"time":1800}}`

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.NewDefault()
	cfg.Service.AllowedOrigins = []string{"https://example.com"}

	router, err := New(cfg, nil, solvers.NewEngine(), nil).Router()
	require.NoError(t, err)
	return router
}

func TestRouter_WithoutStore(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "health", method: http.MethodGet, path: "/health", status: http.StatusOK},
		{name: "models", method: http.MethodGet, path: "/api/v1/models", status: http.StatusOK},
		{name: "compute is not stored", method: http.MethodPost, path: "/api/v1/computations", body: computeBody, status: http.StatusOK},
		{name: "history needs a store", method: http.MethodGet, path: "/api/v1/runs", status: http.StatusNotImplemented},
		{name: "unknown route", method: http.MethodGet, path: "/api/v2/models", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/models", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RejectsUnknownUnitSystem(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Estimation.UnitSystem = "cgs"

	_, err := New(cfg, nil, solvers.NewEngine(), nil).Router()
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "cgs"))
}
