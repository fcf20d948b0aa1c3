// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes defines the shared data model for the supply-chain
// decision engine: supply records, datasets, query analysis results, and
// the chart aggregates handed to presentation clients.
package datatypes

// =============================================================================
// Delivery Status
// =============================================================================

// DeliveryStatus describes the outcome of a supplier's last delivery.
type DeliveryStatus string

const (
	DeliveryOnTime  DeliveryStatus = "On Time"
	DeliveryDelayed DeliveryStatus = "Delayed"
	DeliveryEarly   DeliveryStatus = "Early"
)

// IsValid reports whether the status is one of the known delivery outcomes.
func (d DeliveryStatus) IsValid() bool {
	switch d {
	case DeliveryOnTime, DeliveryDelayed, DeliveryEarly:
		return true
	}
	return false
}

// =============================================================================
// Language
// =============================================================================

// Language selects the output language for generated recommendations.
// Only the two values the dashboard offers are accepted.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageSpanish Language = "Español"
)

// IsValid reports whether the language is one of the supported values.
func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageSpanish
}

// =============================================================================
// Data Source
// =============================================================================

// DataSource identifies which branch of the loader cascade produced a dataset.
type DataSource string

const (
	SourcePrimary   DataSource = "primary"
	SourceDataCo    DataSource = "dataco"
	SourceSynthetic DataSource = "synthetic"
)

// =============================================================================
// Supply Records
// =============================================================================

// Record is one supply item in the canonical schema. The four risk fields
// are derived; they are always recomputed from the raw fields and never
// accepted from an external source.
//
// JSON keys match the canonical column names of the source datasets so
// dashboard clients can consume records unchanged.
type Record struct {
	Supplier      string         `json:"Supplier"`
	Product       string         `json:"Product"`
	Location      string         `json:"Location,omitempty"`
	CurrentStock  int            `json:"Current_Stock"`
	MinStock      float64        `json:"Min_Stock"`
	LeadTimeDays  int            `json:"Lead_Time_Days"`
	CostPerUnit   float64        `json:"Cost_Per_Unit,omitempty"`
	QualityRating float64        `json:"Quality_Rating"`
	LastDelivery  DeliveryStatus `json:"Last_Delivery"`

	StockRisk    float64 `json:"Stock_Risk"`
	LeadTimeRisk float64 `json:"Lead_Time_Risk"`
	QualityRisk  float64 `json:"Quality_Risk"`
	OverallRisk  float64 `json:"Overall_Risk"`
}

// MaxDatasetRecords caps every dataset regardless of source size. The cap
// bounds prompt construction and display cost downstream.
const MaxDatasetRecords = 200

// Dataset is an ordered collection of records sharing the canonical schema.
// It is built once by the loader and is read-only afterwards.
type Dataset struct {
	Records []Record   `json:"records"`
	Source  DataSource `json:"source"`
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// SupplierCount returns the number of distinct suppliers in the dataset.
func (d *Dataset) SupplierCount() int {
	if d == nil {
		return 0
	}
	seen := make(map[string]struct{}, 16)
	for _, r := range d.Records {
		seen[r.Supplier] = struct{}{}
	}
	return len(seen)
}

// =============================================================================
// Query Analysis
// =============================================================================

// RiskLevel labels a focus item for quick triage in the dashboard.
type RiskLevel string

const (
	RiskLevelHigh   RiskLevel = "HIGH"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelLow    RiskLevel = "LOW"
)

// RiskLevelFor buckets an overall risk value into a triage label.
// Thresholds match the dashboard's priority items panel.
func RiskLevelFor(overallRisk float64) RiskLevel {
	switch {
	case overallRisk > 0.7:
		return RiskLevelHigh
	case overallRisk > 0.4:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// FocusItem is a record projected down to the fields the recommendation
// prompt and the dashboard's priority list need.
type FocusItem struct {
	Supplier    string    `json:"Supplier"`
	Product     string    `json:"Product"`
	OverallRisk float64   `json:"Overall_Risk"`
	RiskLevel   RiskLevel `json:"risk_level"`
}

// FocusResult is the outcome of classifying a free-text query against a
// dataset. The counts are always computed over the full dataset, independent
// of which focus branch matched.
type FocusResult struct {
	FocusArea          string      `json:"focus_area"`
	TotalItems         int         `json:"total_items"`
	HighRiskCount      int         `json:"high_risk_count"`
	CriticalStockCount int         `json:"critical_stock_count"`
	AvgLeadTime        float64     `json:"avg_lead_time"`
	AvgQuality         float64     `json:"avg_quality"`
	FocusItems         []FocusItem `json:"focus_items"`
}

// =============================================================================
// Chart Aggregates
// =============================================================================

// ChartData is one aggregate series for an external charting call.
// The engine never renders anything; it only ships numbers and hints.
type ChartData struct {
	Title  string            `json:"title"`
	Labels []string          `json:"labels"`
	Values []float64         `json:"values"`
	Colors map[string]string `json:"colors,omitempty"`
}

// Charts bundles the two aggregates the dashboard consumes.
type Charts struct {
	RiskPie     ChartData `json:"risk_pie"`
	SupplierBar ChartData `json:"supplier_bar"`
}

// =============================================================================
// Analyze Response
// =============================================================================

// AnalysisResponse is the full result of one analyze invocation.
type AnalysisResponse struct {
	Recommendation string      `json:"recommendation"`
	Analysis       FocusResult `json:"analysis"`
	Charts         Charts      `json:"charts"`
	Error          bool        `json:"error"`
}
