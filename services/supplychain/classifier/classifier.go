// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package classifier maps a free-text operational query to one of a fixed
// set of focus areas and selects the records relevant to that focus.
//
// Matching is case-insensitive keyword matching in a fixed priority order;
// the first matching rule wins and an unmatched query falls through to the
// overall-risk default.
package classifier

import (
	"strings"

	"github.com/AleutianAI/AleutianSupply/services/supplychain/datatypes"
)

// Focus area labels.
const (
	FocusStockLevels    = "Stock Levels"
	FocusQualityIssues  = "Quality Issues"
	FocusLeadTimeIssues = "Lead Time Issues"
	FocusOverallRisk    = "Overall Risk"
)

// Thresholds shared by the focus branches and the dataset-wide counts.
const (
	highRiskThreshold      = 0.6
	criticalStockThreshold = 0.5
	lowQualityThreshold    = 4.0
	longLeadTimeThreshold  = 20
	maxFocusItems          = 5
)

// Defaults substituted when the dataset carries no usable values.
const (
	defaultAvgLeadTime = 15.0
	defaultAvgQuality  = 4.2
)

// Classify analyzes the dataset in the context of the query.
//
// The high-risk and critical-stock counts and the two averages are always
// computed over the full dataset, independent of which focus branch the
// query matched.
func Classify(query string, ds *datatypes.Dataset) datatypes.FocusResult {
	highRisk := filter(ds, func(r datatypes.Record) bool { return r.OverallRisk > highRiskThreshold })
	criticalStock := filter(ds, func(r datatypes.Record) bool { return r.StockRisk > criticalStockThreshold })

	q := strings.ToLower(query)

	var focusArea string
	var focusData []datatypes.Record
	switch {
	case strings.Contains(q, "stock") || strings.Contains(q, "inventory"):
		focusArea = FocusStockLevels
		focusData = criticalStock
		if len(focusData) == 0 {
			focusData = highRisk
		}
	case strings.Contains(q, "quality"):
		focusArea = FocusQualityIssues
		focusData = filter(ds, func(r datatypes.Record) bool { return r.QualityRating < lowQualityThreshold })
	case strings.Contains(q, "delay") || strings.Contains(q, "lead time"):
		focusArea = FocusLeadTimeIssues
		focusData = filter(ds, func(r datatypes.Record) bool { return r.LeadTimeDays > longLeadTimeThreshold })
	default:
		focusArea = FocusOverallRisk
		focusData = highRisk
	}

	return datatypes.FocusResult{
		FocusArea:          focusArea,
		TotalItems:         ds.Len(),
		HighRiskCount:      len(highRisk),
		CriticalStockCount: len(criticalStock),
		AvgLeadTime:        avgLeadTime(ds),
		AvgQuality:         avgQuality(ds),
		FocusItems:         project(focusData, maxFocusItems),
	}
}

func filter(ds *datatypes.Dataset, keep func(datatypes.Record) bool) []datatypes.Record {
	if ds == nil {
		return nil
	}
	var out []datatypes.Record
	for _, r := range ds.Records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// project trims the candidate set to the first n records and keeps only the
// fields the prompt and dashboard need.
func project(records []datatypes.Record, n int) []datatypes.FocusItem {
	if len(records) > n {
		records = records[:n]
	}
	items := make([]datatypes.FocusItem, 0, len(records))
	for _, r := range records {
		items = append(items, datatypes.FocusItem{
			Supplier:    r.Supplier,
			Product:     r.Product,
			OverallRisk: r.OverallRisk,
			RiskLevel:   datatypes.RiskLevelFor(r.OverallRisk),
		})
	}
	return items
}

func avgLeadTime(ds *datatypes.Dataset) float64 {
	if ds.Len() == 0 {
		return defaultAvgLeadTime
	}
	var sum float64
	for _, r := range ds.Records {
		sum += float64(r.LeadTimeDays)
	}
	return sum / float64(ds.Len())
}

func avgQuality(ds *datatypes.Dataset) float64 {
	if ds.Len() == 0 {
		return defaultAvgQuality
	}
	var sum float64
	for _, r := range ds.Records {
		sum += r.QualityRating
	}
	return sum / float64(ds.Len())
}
