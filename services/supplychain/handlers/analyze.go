// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers exposes the decision engine over HTTP.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/AleutianAI/AleutianSupply/pkg/validation"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/datatypes"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/engine"
)

func init() {
	// Teach gin's validator the supported recommendation languages.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
			return datatypes.Language(fl.Field().String()).IsValid()
		})
	}
}

// AnalyzeRequest is the body of POST /v1/analyze. Language defaults to
// English when omitted.
type AnalyzeRequest struct {
	Query    string `json:"query" binding:"required"`
	Language string `json:"language" binding:"omitempty,language"`
}

// HandleAnalyze runs the analyze pipeline for one query.
func HandleAnalyze(e *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := uuid.New().String()

		var request AnalyzeRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			slog.Error("Failed to bind analyze request JSON", "error", err, "request_id", requestId)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		query, err := validation.SanitizeQuery(request.Query)
		if err != nil {
			slog.Warn("Rejected analyze query", "error", err, "request_id", requestId)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		language := datatypes.Language(request.Language)
		if request.Language == "" {
			language = datatypes.LanguageEnglish
		}

		slog.Info("Received analyze request", "request_id", requestId, "language", language)

		resp, err := e.Analyze(c.Request.Context(), query, language)
		if err != nil {
			if errors.Is(err, engine.ErrNoDataLoaded) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
				return
			}
			slog.Error("Analyze failed", "error", err, "request_id", requestId)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
