// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the supply-chain
// decision engine.
//
// # Description
//
// Metrics cover the analyze pipeline end to end:
//   - Request counters (by status)
//   - Dataset load counters (by source)
//   - Recommendation counters (by generation tier)
//   - Analyze duration histogram
//
// # Integration
//
// Metrics are exposed via the /metrics endpoint. Use with Prometheus +
// Grafana for dashboards and alerting.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const metricsNamespace = "aleutian"

// Subsystem for decision-engine metrics
const supplySubsystem = "supplychain"

// EngineMetrics holds all Prometheus metrics for the analyze pipeline.
// Initialize once at startup via InitMetrics().
type EngineMetrics struct {
	// AnalyzeRequestsTotal counts analyze invocations by outcome.
	// Labels: status (success, no_data, error)
	AnalyzeRequestsTotal *prometheus.CounterVec

	// DatasetLoadsTotal counts dataset loads by the source that won the
	// cascade. Labels: source (primary, dataco, synthetic)
	DatasetLoadsTotal *prometheus.CounterVec

	// RecommendationsTotal counts recommendations by how they were produced.
	// Labels: tier (live, no_credential, generation_error)
	RecommendationsTotal *prometheus.CounterVec

	// AnalyzeDurationSeconds measures end-to-end analyze latency.
	// Labels: status (success, no_data, error)
	AnalyzeDurationSeconds *prometheus.HistogramVec

	// DatasetLoadDurationSeconds measures how long the loader cascade took.
	// Labels: source (primary, dataco, synthetic)
	DatasetLoadDurationSeconds *prometheus.HistogramVec
}

// DefaultMetrics is the singleton instance of EngineMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *EngineMetrics

// InitMetrics creates and registers all Prometheus metrics. Call once at
// application startup; a second call panics on duplicate registration.
func InitMetrics() *EngineMetrics {
	DefaultMetrics = &EngineMetrics{
		AnalyzeRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: supplySubsystem,
				Name:      "analyze_requests_total",
				Help:      "Total number of analyze requests by status",
			},
			[]string{"status"},
		),

		DatasetLoadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: supplySubsystem,
				Name:      "dataset_loads_total",
				Help:      "Total dataset loads by winning source",
			},
			[]string{"source"},
		),

		RecommendationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: supplySubsystem,
				Name:      "recommendations_total",
				Help:      "Total recommendations by generation tier",
			},
			[]string{"tier"},
		),

		AnalyzeDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: supplySubsystem,
				Name:      "analyze_duration_seconds",
				Help:      "End-to-end analyze duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"status"},
		),

		DatasetLoadDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: supplySubsystem,
				Name:      "dataset_load_duration_seconds",
				Help:      "Dataset load cascade duration in seconds",
				Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 15, 30, 60},
			},
			[]string{"source"},
		),
	}

	return DefaultMetrics
}

// =============================================================================
// Status Values
// =============================================================================

// Status labels an analyze outcome for metrics.
type Status string

const (
	// StatusSuccess indicates the analyze pipeline completed.
	StatusSuccess Status = "success"

	// StatusNoData indicates no dataset was loaded.
	StatusNoData Status = "no_data"

	// StatusError indicates an internal failure.
	StatusError Status = "error"
)

// =============================================================================
// Helper Methods
// =============================================================================

// RecordAnalyze records one completed analyze request and its latency.
func (m *EngineMetrics) RecordAnalyze(status Status, seconds float64) {
	m.AnalyzeRequestsTotal.WithLabelValues(string(status)).Inc()
	m.AnalyzeDurationSeconds.WithLabelValues(string(status)).Observe(seconds)
}

// RecordDatasetLoad records which source produced the dataset and how long
// the cascade took.
func (m *EngineMetrics) RecordDatasetLoad(source string, seconds float64) {
	m.DatasetLoadsTotal.WithLabelValues(source).Inc()
	m.DatasetLoadDurationSeconds.WithLabelValues(source).Observe(seconds)
}

// RecordRecommendation records the tier that produced a recommendation.
func (m *EngineMetrics) RecordRecommendation(tier string) {
	m.RecommendationsTotal.WithLabelValues(tier).Inc()
}
