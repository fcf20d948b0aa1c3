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

	"github.com/AleutianAI/AleutianSupply/services/supplychain/engine"
)

// manualPreviewRunes is the size of the manual excerpt shown in the
// dashboard's policy panel.
const manualPreviewRunes = 300

// Scenarios are the predefined challenge queries the dashboard offers as
// one-click starting points.
var Scenarios = []string{
	"TechCorp Mexico experiencing delays. What are our alternatives?",
	"Stock levels critically low for Industrial Relays. Immediate action needed.",
	"Quality ratings dropping for AsiaTech suppliers. Risk assessment required.",
	"Lead times increased 30% from Asian suppliers. Strategic recommendations needed.",
}

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleManual returns a preview of the supplier policy manual.
func HandleManual(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		manual := e.Store.Manual()
		c.JSON(http.StatusOK, gin.H{
			"status":  "Policy Manual Integrated",
			"preview": manual.Excerpt(manualPreviewRunes) + "...",
			"length":  len(manual.Text()),
		})
	}
}

// HandleScenarios returns the predefined challenge scenarios.
func HandleScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenarios": Scenarios})
}
