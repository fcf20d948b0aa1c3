// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package recommend turns a focus analysis into an actionable recommendation.
//
// When an LLM backend is configured the recommendation is generated live,
// grounded on the focus analysis and an excerpt of the supplier policy
// manual. Without a backend, or when generation fails, a static template is
// returned instead so the analysis pipeline always produces a usable answer.
package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AleutianAI/AleutianSupply/services/llm"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/datatypes"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/policy"
)

// Tier identifies how a recommendation was produced.
type Tier string

const (
	// TierLive means the text came back from the LLM backend.
	TierLive Tier = "live"
	// TierNoCredential means no backend was configured.
	TierNoCredential Tier = "no_credential"
	// TierGenerationError means the backend call failed.
	TierGenerationError Tier = "generation_error"
)

// recommendationMaxTokens caps the generated text; the prompt itself asks
// for under 80 words.
const recommendationMaxTokens = 120

const manualExcerptRunes = 500

// Generator produces recommendations from focus analyses. A nil Client is
// valid and forces the static no-credential template.
type Generator struct {
	Client llm.LLMClient
	Manual *policy.Manual
}

// New returns a Generator. client may be nil when no LLM backend is
// configured.
func New(client llm.LLMClient, manual *policy.Manual) *Generator {
	if manual == nil {
		manual = policy.NewManual()
	}
	return &Generator{Client: client, Manual: manual}
}

// Generate returns recommendation text for the analysis, plus the tier that
// produced it. It never returns an error: every failure path degrades to a
// template.
func (g *Generator) Generate(ctx context.Context, query string, analysis datatypes.FocusResult, language datatypes.Language) (string, Tier) {
	if g.Client == nil {
		return noCredentialTemplate(analysis.FocusArea), TierNoCredential
	}

	prompt := g.buildPrompt(query, analysis, language)

	maxTokens := recommendationMaxTokens
	text, err := g.Client.Generate(ctx, prompt, llm.GenerationParams{MaxTokens: &maxTokens})
	if err != nil {
		slog.Warn("Recommendation generation failed, returning static fallback", "error", err)
		return generationErrorTemplate(), TierGenerationError
	}
	return text, TierLive
}

// buildPrompt assembles the grounded recommendation prompt. The layout is
// part of the product surface: operators read raw prompts when debugging
// model output, so keep it stable.
func (g *Generator) buildPrompt(query string, analysis datatypes.FocusResult, language datatypes.Language) string {
	var concerns strings.Builder
	for i, item := range analysis.FocusItems {
		if i > 0 {
			concerns.WriteString("\n")
		}
		fmt.Fprintf(&concerns, "• %s from %s (Risk: %.2f)", item.Product, item.Supplier, item.OverallRisk)
	}

	instruction := "Respond in English"
	if language == datatypes.LanguageSpanish {
		instruction = "Respond in Spanish"
	}

	return fmt.Sprintf(`You are an Enterprise Supply Chain AI Assistant using REAL supply chain data.

CURRENT SITUATION:
- Total Items: %d
- High Risk Items: %d
- Focus Area: %s
- Average Lead Time: %.1f days
- Average Quality Rating: %.1f/5.0

TOP CONCERN ITEMS:
%s

SUPPLIER MANUAL GUIDANCE:
%s...

QUESTION: %s

Instructions:
%s

Provide a specific recommendation in this format:
**RECOMMENDATION:** [Specific action]
**PRIORITY:** [High/Medium/Low]
**EXPECTED IMPACT:** [Business impact]
**NEXT STEPS:** [1-2 immediate actions]

Keep response under 80 words but be actionable.`,
		analysis.TotalItems,
		analysis.HighRiskCount,
		analysis.FocusArea,
		analysis.AvgLeadTime,
		analysis.AvgQuality,
		concerns.String(),
		g.Manual.Excerpt(manualExcerptRunes),
		query,
		instruction,
	)
}

func noCredentialTemplate(focusArea string) string {
	return fmt.Sprintf(`**RECOMMENDATION:** Address %s issues immediately
**PRIORITY:** High
**EXPECTED IMPACT:** Reduce supply chain disruption by 25%%
**NEXT STEPS:** 1) Contact alternative suppliers 2) Review safety stock levels`, focusArea)
}

func generationErrorTemplate() string {
	return "**RECOMMENDATION:** Review supplier performance data\n" +
		"**PRIORITY:** Medium\n" +
		"**EXPECTED IMPACT:** Improved supply chain reliability\n" +
		"**NEXT STEPS:** 1) Analyze trends 2) Contact suppliers"
}
