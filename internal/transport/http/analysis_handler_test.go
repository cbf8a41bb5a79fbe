package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/analytics"
	"salespulse/internal/config"
	"salespulse/internal/services"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.RateLimit.Enabled = false

	return NewRouter(RouterDeps{
		Analysis: services.NewAnalysisService(analytics.DefaultOptions(), nil, nil, nil),
		Health:   services.NewHealthService(),
		Config:   cfg,
	})
}

func validRequestBody() []byte {
	return []byte(`{
		"orders": [
			{"id": "1", "date": "2026-01-01", "customer_id": "1", "sales_rep_id": "50", "total": 70}
		],
		"order_lines": [
			{"order_id": "1", "product_id": "100", "quantity": 7, "unit_price": 10, "total": 70}
		],
		"today": "2026-02-10"
	}`)
}

func TestAnalysisCreate(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", bytes.NewReader(validRequestBody()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var run services.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, services.StatusCompleted, run.Status)
	require.NotNil(t, run.Report)
	assert.Equal(t, 70.0, run.Report.Summary.TotalRevenue)
	assert.Equal(t, "2026-02-10", run.Report.ReferenceDate)
}

func TestAnalysisCreateInvalidJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_REQUEST")
}

func TestAnalysisCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing orders", `{"order_lines":[{"order_id":"1","product_id":"100"}]}`},
		{"missing lines", `{"orders":[{"id":"1","date":"2026-01-01","customer_id":"1","total":1}]}`},
		{"bad today", `{
			"orders":[{"id":"1","date":"2026-01-01","customer_id":"1","total":1}],
			"order_lines":[{"order_id":"1","product_id":"100","quantity":1,"unit_price":1,"total":1}],
			"today":"01/02/2026"}`},
	}

	router := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/analysis",
				bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "INVALID_DATASET")
		})
	}
}

func TestAnalysisGet(t *testing.T) {
	svc := services.NewAnalysisService(analytics.DefaultOptions(), nil, nil, nil)
	cfg := &config.Config{}
	router := NewRouter(RouterDeps{
		Analysis: svc,
		Health:   services.NewHealthService(),
		Config:   cfg,
	})

	// Seed one run through the API.
	req := httptest.NewRequest(http.MethodPost, "/api/analysis", bytes.NewReader(validRequestBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created services.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req = httptest.NewRequest(http.MethodGet, "/api/analysis/"+created.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/analysis/does-not-exist", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RUN_NOT_FOUND")
}

func TestAnalysisList(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", bytes.NewReader(validRequestBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/analysis", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var runs []services.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	assert.Len(t, runs, 1)
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestNotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}
