// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package risk computes the per-record risk sub-scores and the composite
// score. All functions are pure and total over the record field domains:
// they never return an error and never divide by zero.
//
// Sub-scores are deliberately NOT clamped to [0,1]. Out-of-range raw inputs
// produce values above 1 or below 0, and downstream thresholding depends on
// that behavior.
package risk

import "github.com/AleutianAI/AleutianSupply/services/supplychain/datatypes"

// Normalization divisors for lead-time risk. The two loader branches use
// different divisors; the asymmetry is inherited from the reference model
// and kept so scores stay comparable with historical output.
const (
	RemoteLeadTimeDivisor    = 25.0
	SyntheticLeadTimeDivisor = 40.0
)

// StockRisk measures how far current stock has fallen below the minimum.
// Zero when stock is at or above minimum. A minimum of zero means there is
// nothing to fall below, so the risk is zero rather than a division fault.
func StockRisk(currentStock int, minStock float64) float64 {
	if minStock <= 0 {
		return 0
	}
	if float64(currentStock) >= minStock {
		return 0
	}
	return (minStock - float64(currentStock)) / minStock
}

// LeadTimeRisk normalizes lead time against a 5-day baseline.
// Roughly in [0,1] for typical lead times; longer lead times exceed 1.
func LeadTimeRisk(leadTimeDays int, divisor float64) float64 {
	return (float64(leadTimeDays) - 5) / divisor
}

// QualityRisk maps a [0,5] quality rating onto a risk score where a perfect
// 5.0 rating is zero risk.
func QualityRisk(qualityRating float64) float64 {
	return (5.0 - qualityRating) / 2.0
}

// OverallRisk is the mean of the three sub-scores.
func OverallRisk(stockRisk, leadTimeRisk, qualityRisk float64) float64 {
	return (stockRisk + leadTimeRisk + qualityRisk) / 3.0
}

// Score recomputes all four risk fields on a record in place.
func Score(r *datatypes.Record, leadTimeDivisor float64) {
	r.StockRisk = StockRisk(r.CurrentStock, r.MinStock)
	r.LeadTimeRisk = LeadTimeRisk(r.LeadTimeDays, leadTimeDivisor)
	r.QualityRisk = QualityRisk(r.QualityRating)
	r.OverallRisk = OverallRisk(r.StockRisk, r.LeadTimeRisk, r.QualityRisk)
}

// Apply recomputes the risk fields for every record in the dataset.
// Derived fields supplied by a source are always overwritten.
func Apply(ds *datatypes.Dataset, leadTimeDivisor float64) {
	for i := range ds.Records {
		Score(&ds.Records[i], leadTimeDivisor)
	}
}
