// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/AleutianSupply/services/supplychain/engine"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/handlers"
)

func SetupRoutes(router *gin.Engine, e *engine.Engine) {

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		v1.POST("/analyze", handlers.HandleAnalyze(e))
		v1.GET("/manual", handlers.HandleManual(e))
		v1.GET("/scenarios", handlers.HandleScenarios)
		// Dataset routes
		dataset := v1.Group("/dataset")
		{
			dataset.GET("/preview", handlers.HandleDatasetPreview(e))
			dataset.POST("/reload", handlers.HandleDatasetReload(e))
		}
	}
}
