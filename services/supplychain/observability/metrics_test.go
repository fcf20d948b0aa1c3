// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// newTestMetrics creates an EngineMetrics instance with a custom registry.
// This avoids conflicts with the global Prometheus registry and allows
// parallel testing.
func newTestMetrics(t *testing.T) *EngineMetrics {
	t.Helper()

	reg := prometheus.NewRegistry()

	analyzeRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: supplySubsystem,
			Name:      "analyze_requests_total",
			Help:      "Total number of analyze requests by status",
		},
		[]string{"status"},
	)

	datasetLoadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: supplySubsystem,
			Name:      "dataset_loads_total",
			Help:      "Total dataset loads by winning source",
		},
		[]string{"source"},
	)

	recommendationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: supplySubsystem,
			Name:      "recommendations_total",
			Help:      "Total recommendations by generation tier",
		},
		[]string{"tier"},
	)

	analyzeDurationSeconds := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: supplySubsystem,
			Name:      "analyze_duration_seconds",
			Help:      "End-to-end analyze duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"status"},
	)

	datasetLoadDurationSeconds := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: supplySubsystem,
			Name:      "dataset_load_duration_seconds",
			Help:      "Dataset load cascade duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 15, 30, 60},
		},
		[]string{"source"},
	)

	reg.MustRegister(
		analyzeRequestsTotal,
		datasetLoadsTotal,
		recommendationsTotal,
		analyzeDurationSeconds,
		datasetLoadDurationSeconds,
	)

	return &EngineMetrics{
		AnalyzeRequestsTotal:       analyzeRequestsTotal,
		DatasetLoadsTotal:          datasetLoadsTotal,
		RecommendationsTotal:       recommendationsTotal,
		AnalyzeDurationSeconds:     analyzeDurationSeconds,
		DatasetLoadDurationSeconds: datasetLoadDurationSeconds,
	}
}

// Note: InitMetrics uses promauto which registers with the default Prometheus
// registry. This test must only run once per test binary execution since
// duplicate registration will panic.
var initMetricsTestOnce bool

func TestInitMetrics(t *testing.T) {
	if initMetricsTestOnce {
		t.Skip("InitMetrics can only be called once per test run (promauto restriction)")
	}
	initMetricsTestOnce = true

	result := InitMetrics()

	if result == nil {
		t.Fatal("InitMetrics() returned nil")
	}
	if DefaultMetrics != result {
		t.Error("DefaultMetrics should equal the returned value")
	}
	if result.AnalyzeRequestsTotal == nil {
		t.Error("AnalyzeRequestsTotal should not be nil")
	}
	if result.DatasetLoadsTotal == nil {
		t.Error("DatasetLoadsTotal should not be nil")
	}
	if result.RecommendationsTotal == nil {
		t.Error("RecommendationsTotal should not be nil")
	}
	if result.AnalyzeDurationSeconds == nil {
		t.Error("AnalyzeDurationSeconds should not be nil")
	}

	// Verify metrics can be used
	result.RecordAnalyze(StatusSuccess, 0.2)
	result.RecordDatasetLoad("synthetic", 1.5)
	result.RecordRecommendation("live")
}

func TestRecordAnalyze(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordAnalyze(StatusSuccess, 0.1)
	m.RecordAnalyze(StatusSuccess, 0.3)
	m.RecordAnalyze(StatusNoData, 0.01)

	if got := testutil.ToFloat64(m.AnalyzeRequestsTotal.WithLabelValues("success")); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.AnalyzeRequestsTotal.WithLabelValues("no_data")); got != 1 {
		t.Errorf("no_data count = %v, want 1", got)
	}
}

func TestRecordDatasetLoad(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordDatasetLoad("primary", 2.0)
	m.RecordDatasetLoad("synthetic", 0.1)
	m.RecordDatasetLoad("synthetic", 0.2)

	if got := testutil.ToFloat64(m.DatasetLoadsTotal.WithLabelValues("synthetic")); got != 2 {
		t.Errorf("synthetic count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.DatasetLoadsTotal.WithLabelValues("primary")); got != 1 {
		t.Errorf("primary count = %v, want 1", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordRecommendation("live")
	m.RecordRecommendation("no_credential")

	if got := testutil.ToFloat64(m.RecommendationsTotal.WithLabelValues("live")); got != 1 {
		t.Errorf("live count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RecommendationsTotal.WithLabelValues("no_credential")); got != 1 {
		t.Errorf("no_credential count = %v, want 1", got)
	}
}
