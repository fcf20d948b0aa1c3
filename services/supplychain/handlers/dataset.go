// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/AleutianSupply/services/supplychain/datatypes"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/engine"
)

// previewRows is how many records the dataset preview returns.
const previewRows = 5

// highRiskKPIThreshold marks an item high-risk for the dashboard KPI row.
const highRiskKPIThreshold = 0.6

// PreviewRecord is a record projected to the dashboard's preview columns.
type PreviewRecord struct {
	Supplier     string  `json:"Supplier"`
	Product      string  `json:"Product"`
	CurrentStock int     `json:"Current_Stock"`
	OverallRisk  float64 `json:"Overall_Risk"`
}

// DatasetPreviewResponse is the body of GET /v1/dataset/preview: the first
// few records plus the KPI row the dashboard renders above them.
type DatasetPreviewResponse struct {
	Source        datatypes.DataSource `json:"source"`
	TotalRecords  int                  `json:"total_records"`
	HighRiskItems int                  `json:"high_risk_items"`
	AvgLeadTime   float64              `json:"avg_lead_time"`
	Suppliers     int                  `json:"suppliers"`
	Records       []PreviewRecord      `json:"records"`
}

// HandleDatasetPreview returns the KPI summary and the first records of the
// loaded dataset.
func HandleDatasetPreview(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds := e.Store.Dataset()
		if ds.Len() == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": engine.ErrNoDataLoaded.Error()})
			return
		}

		highRisk := 0
		leadSum := 0
		for _, r := range ds.Records {
			if r.OverallRisk > highRiskKPIThreshold {
				highRisk++
			}
			leadSum += r.LeadTimeDays
		}

		n := previewRows
		if ds.Len() < n {
			n = ds.Len()
		}
		records := make([]PreviewRecord, n)
		for i := 0; i < n; i++ {
			r := ds.Records[i]
			records[i] = PreviewRecord{
				Supplier:     r.Supplier,
				Product:      r.Product,
				CurrentStock: r.CurrentStock,
				OverallRisk:  r.OverallRisk,
			}
		}

		c.JSON(http.StatusOK, DatasetPreviewResponse{
			Source:        ds.Source,
			TotalRecords:  ds.Len(),
			HighRiskItems: highRisk,
			AvgLeadTime:   float64(leadSum) / float64(ds.Len()),
			Suppliers:     ds.SupplierCount(),
			Records:       records,
		})
	}
}

// HandleDatasetReload re-runs the loader cascade and swaps in the fresh
// dataset.
func HandleDatasetReload(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds := e.LoadSupplyData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"source":  ds.Source,
			"records": ds.Len(),
		})
	}
}
