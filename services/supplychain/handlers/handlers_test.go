// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the decision engine HTTP handlers

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianSupply/services/llm"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/datatypes"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/engine"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/recommend"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockLLM struct {
	reply string
}

func (m *mockLLM) Generate(_ context.Context, _ string, _ llm.GenerationParams) (string, error) {
	return m.reply, nil
}

func testDataset() *datatypes.Dataset {
	return &datatypes.Dataset{
		Source: datatypes.SourceSynthetic,
		Records: []datatypes.Record{
			{Supplier: "TechCorp Mexico", Product: "Industrial Relay", CurrentStock: 20, MinStock: 100,
				LeadTimeDays: 30, QualityRating: 3.2, StockRisk: 0.8, OverallRisk: 0.775},
			{Supplier: "EuroParts", Product: "Control Panel", CurrentStock: 400, MinStock: 80,
				LeadTimeDays: 10, QualityRating: 4.8, OverallRisk: 0.075},
		},
	}
}

func newTestEngine(client llm.LLMClient, withData bool) *engine.Engine {
	store := engine.NewStore(nil)
	if withData {
		store.SetDataset(testDataset())
	}
	return engine.New(store, nil, recommend.New(client, store.Manual()), nil)
}

// =============================================================================
// HealthCheck Tests
// =============================================================================

func TestHealthCheck_ReturnsOK(t *testing.T) {
	router := gin.New()
	router.GET("/health", HealthCheck)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}

// =============================================================================
// HandleAnalyze Tests
// =============================================================================

func postAnalyze(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHandleAnalyze_Success(t *testing.T) {
	router := gin.New()
	router.POST("/v1/analyze", HandleAnalyze(newTestEngine(&mockLLM{reply: "do the thing"}, true)))

	w := postAnalyze(router, `{"query": "what are my stock risks?"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp datatypes.AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "do the thing", resp.Recommendation)
	assert.Equal(t, "Stock Levels", resp.Analysis.FocusArea)
	assert.Equal(t, 2, resp.Analysis.TotalItems)
	assert.False(t, resp.Error)
}

func TestHandleAnalyze_NoDataReturns503(t *testing.T) {
	router := gin.New()
	router.POST("/v1/analyze", HandleAnalyze(newTestEngine(nil, false)))

	w := postAnalyze(router, `{"query": "anything"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "No supply data loaded", response["error"])
}

func TestHandleAnalyze_MissingQuery(t *testing.T) {
	router := gin.New()
	router.POST("/v1/analyze", HandleAnalyze(newTestEngine(nil, true)))

	w := postAnalyze(router, `{"language": "English"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnalyze_BlankQueryRejected(t *testing.T) {
	router := gin.New()
	router.POST("/v1/analyze", HandleAnalyze(newTestEngine(nil, true)))

	w := postAnalyze(router, `{"query": "   "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnalyze_InvalidLanguage(t *testing.T) {
	router := gin.New()
	router.POST("/v1/analyze", HandleAnalyze(newTestEngine(nil, true)))

	w := postAnalyze(router, `{"query": "q", "language": "French"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAnalyze_SpanishAccepted(t *testing.T) {
	router := gin.New()
	router.POST("/v1/analyze", HandleAnalyze(newTestEngine(&mockLLM{reply: "ok"}, true)))

	w := postAnalyze(router, `{"query": "riesgos de stock", "language": "Español"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleAnalyze_MalformedJSON(t *testing.T) {
	router := gin.New()
	router.POST("/v1/analyze", HandleAnalyze(newTestEngine(nil, true)))

	w := postAnalyze(router, `{"query": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =============================================================================
// HandleDatasetPreview Tests
// =============================================================================

func TestHandleDatasetPreview_ReturnsKPIsAndRecords(t *testing.T) {
	router := gin.New()
	router.GET("/v1/dataset/preview", HandleDatasetPreview(newTestEngine(nil, true)))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/dataset/preview", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp DatasetPreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, datatypes.SourceSynthetic, resp.Source)
	assert.Equal(t, 2, resp.TotalRecords)
	assert.Equal(t, 1, resp.HighRiskItems)
	assert.Equal(t, 2, resp.Suppliers)
	assert.InDelta(t, 20.0, resp.AvgLeadTime, 1e-9)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "TechCorp Mexico", resp.Records[0].Supplier)
	assert.Equal(t, 20, resp.Records[0].CurrentStock)
}

func TestHandleDatasetPreview_NoData(t *testing.T) {
	router := gin.New()
	router.GET("/v1/dataset/preview", HandleDatasetPreview(newTestEngine(nil, false)))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/dataset/preview", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// =============================================================================
// HandleManual / HandleScenarios Tests
// =============================================================================

func TestHandleManual_ReturnsPreview(t *testing.T) {
	router := gin.New()
	router.GET("/v1/manual", HandleManual(newTestEngine(nil, false)))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/manual", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Policy Manual Integrated", response["status"])
	preview, ok := response["preview"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(preview, "..."))
	assert.Contains(t, preview, "ENTERPRISE SUPPLIER QUALITY MANUAL")
}

func TestHandleScenarios_ReturnsAllFour(t *testing.T) {
	router := gin.New()
	router.GET("/v1/scenarios", HandleScenarios)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/scenarios", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response["scenarios"], 4)
	assert.Contains(t, response["scenarios"][0], "TechCorp Mexico")
}
