// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package aggregate reduces a dataset to the numeric series the dashboard
// charts. No rendering happens here: clients get labels, values, and color
// hints and draw the charts themselves.
package aggregate

import (
	"sort"

	"github.com/AleutianAI/AleutianSupply/services/supplychain/datatypes"
)

// maxBarSuppliers caps the supplier bar so the chart stays readable.
const maxBarSuppliers = 8

// riskBucketColors are the display hints for the risk pie.
var riskBucketColors = map[string]string{
	"Low":    "#2E86AB",
	"Medium": "#FFA500",
	"High":   "#FF4444",
}

// Charts builds both chart series for the dataset.
func Charts(ds *datatypes.Dataset) datatypes.Charts {
	return datatypes.Charts{
		RiskPie:     RiskDistribution(ds),
		SupplierBar: SupplierRisk(ds),
	}
}

// RiskDistribution buckets overall risk into Low [0, 0.3), Medium [0.3, 0.6),
// High [0.6, 1.0]. Records with risk outside [0, 1] are skipped. An empty or
// missing dataset yields a fixed illustrative distribution.
func RiskDistribution(ds *datatypes.Dataset) datatypes.ChartData {
	if ds.Len() == 0 {
		return datatypes.ChartData{
			Title:  "Supply Chain Risk Distribution",
			Labels: []string{"Low", "Medium", "High"},
			Values: []float64{70, 25, 5},
			Colors: riskBucketColors,
		}
	}

	var low, medium, high float64
	for _, r := range ds.Records {
		switch risk := r.OverallRisk; {
		case risk < 0 || risk > 1:
			// Out-of-range derived values indicate an upstream bug;
			// leave them out of the distribution rather than distort it.
		case risk >= 0.6:
			high++
		case risk >= 0.3:
			medium++
		default:
			low++
		}
	}

	return datatypes.ChartData{
		Title:  "Supply Chain Risk Distribution (Real Data)",
		Labels: []string{"Low", "Medium", "High"},
		Values: []float64{low, medium, high},
		Colors: riskBucketColors,
	}
}

// SupplierRisk computes mean overall risk per supplier, ordered by supplier
// name and truncated to the first eight. An empty dataset yields a fixed
// illustrative series.
func SupplierRisk(ds *datatypes.Dataset) datatypes.ChartData {
	if ds.Len() == 0 {
		return datatypes.ChartData{
			Title:  "Supplier Risk Analysis",
			Labels: []string{"TechCorp", "EliteParts", "GlobalMfg", "AsiaTech", "EuroParts"},
			Values: []float64{0.3, 0.4, 0.2, 0.6, 0.35},
		}
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range ds.Records {
		sums[r.Supplier] += r.OverallRisk
		counts[r.Supplier]++
	}

	suppliers := make([]string, 0, len(sums))
	for s := range sums {
		suppliers = append(suppliers, s)
	}
	sort.Strings(suppliers)
	if len(suppliers) > maxBarSuppliers {
		suppliers = suppliers[:maxBarSuppliers]
	}

	values := make([]float64, len(suppliers))
	for i, s := range suppliers {
		values[i] = sums[s] / float64(counts[s])
	}

	return datatypes.ChartData{
		Title:  "Supplier Risk Analysis (Real Data)",
		Labels: suppliers,
		Values: values,
	}
}
