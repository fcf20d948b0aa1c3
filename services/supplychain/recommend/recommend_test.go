// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package recommend

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianSupply/services/llm"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/datatypes"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/policy"
)

type mockLLM struct {
	lastPrompt string
	lastParams llm.GenerationParams
	reply      string
	err        error
}

func (m *mockLLM) Generate(_ context.Context, prompt string, params llm.GenerationParams) (string, error) {
	m.lastPrompt = prompt
	m.lastParams = params
	return m.reply, m.err
}

func sampleAnalysis() datatypes.FocusResult {
	return datatypes.FocusResult{
		FocusArea:     "Stock Levels",
		TotalItems:    42,
		HighRiskCount: 7,
		AvgLeadTime:   18.25,
		AvgQuality:    4.12,
		FocusItems: []datatypes.FocusItem{
			{Supplier: "TechCorp Global", Product: "Circuit Breaker", OverallRisk: 0.91, RiskLevel: datatypes.RiskLevelHigh},
			{Supplier: "EuroParts", Product: "Motor Drive", OverallRisk: 0.655, RiskLevel: datatypes.RiskLevelMedium},
		},
	}
}

func TestGenerate_NilClientUsesFocusTemplate(t *testing.T) {
	g := New(nil, policy.NewManual())

	text, tier := g.Generate(context.Background(), "what should I do?", sampleAnalysis(), datatypes.LanguageEnglish)

	assert.Equal(t, TierNoCredential, tier)
	assert.Contains(t, text, "Address Stock Levels issues immediately")
	assert.Contains(t, text, "**PRIORITY:** High")
	assert.Contains(t, text, "Reduce supply chain disruption by 25%")
}

func TestGenerate_ClientErrorUsesGenericTemplate(t *testing.T) {
	mock := &mockLLM{err: fmt.Errorf("upstream 529")}
	g := New(mock, policy.NewManual())

	text, tier := g.Generate(context.Background(), "q", sampleAnalysis(), datatypes.LanguageEnglish)

	assert.Equal(t, TierGenerationError, tier)
	assert.Contains(t, text, "Review supplier performance data")
	assert.Contains(t, text, "**PRIORITY:** Medium")
}

func TestGenerate_LiveResponsePassedThrough(t *testing.T) {
	mock := &mockLLM{reply: "**RECOMMENDATION:** Expedite TechCorp orders"}
	g := New(mock, policy.NewManual())

	text, tier := g.Generate(context.Background(), "q", sampleAnalysis(), datatypes.LanguageEnglish)

	assert.Equal(t, TierLive, tier)
	assert.Equal(t, "**RECOMMENDATION:** Expedite TechCorp orders", text)
	require.NotNil(t, mock.lastParams.MaxTokens)
	assert.Equal(t, 120, *mock.lastParams.MaxTokens)
}

func TestBuildPrompt_ContainsAnalysisAndManual(t *testing.T) {
	mock := &mockLLM{reply: "ok"}
	g := New(mock, policy.NewManual())

	_, _ = g.Generate(context.Background(), "How do I reduce stockouts?", sampleAnalysis(), datatypes.LanguageEnglish)

	prompt := mock.lastPrompt
	assert.Contains(t, prompt, "- Total Items: 42")
	assert.Contains(t, prompt, "- High Risk Items: 7")
	assert.Contains(t, prompt, "- Focus Area: Stock Levels")
	assert.Contains(t, prompt, "- Average Lead Time: 18.2 days")
	assert.Contains(t, prompt, "- Average Quality Rating: 4.1/5.0")
	assert.Contains(t, prompt, "• Circuit Breaker from TechCorp Global (Risk: 0.91)")
	assert.Contains(t, prompt, "• Motor Drive from EuroParts (Risk: 0.66)")
	assert.Contains(t, prompt, "QUESTION: How do I reduce stockouts?")
	assert.Contains(t, prompt, "Respond in English")
	assert.Contains(t, prompt, g.Manual.Excerpt(500)+"...")
	assert.Contains(t, prompt, "Keep response under 80 words but be actionable.")
}

func TestBuildPrompt_SpanishInstruction(t *testing.T) {
	mock := &mockLLM{reply: "ok"}
	g := New(mock, policy.NewManual())

	_, _ = g.Generate(context.Background(), "q", sampleAnalysis(), datatypes.LanguageSpanish)

	assert.Contains(t, mock.lastPrompt, "Respond in Spanish")
	assert.NotContains(t, mock.lastPrompt, "Respond in English")
}

func TestNew_NilManualDefaultsToSample(t *testing.T) {
	g := New(nil, nil)
	require.NotNil(t, g.Manual)
	assert.Contains(t, g.Manual.Text(), "ENTERPRISE SUPPLIER QUALITY MANUAL")
}
