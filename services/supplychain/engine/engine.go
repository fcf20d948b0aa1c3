// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package engine runs the supply-chain analyze pipeline: classify the query
// against the loaded dataset, generate a recommendation grounded on the
// policy manual, and bundle the chart aggregates into one response.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/AleutianAI/AleutianSupply/services/supplychain/aggregate"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/classifier"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/datatypes"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/loader"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/observability"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/policy"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/recommend"
)

// ErrNoDataLoaded is returned by Analyze when no dataset has been loaded.
// The message is part of the API surface: clients match on it.
var ErrNoDataLoaded = errors.New("No supply data loaded")

// Store holds the engine's shared state: the current dataset and the policy
// manual. Loading replaces the dataset wholesale; analyses in flight keep the
// snapshot they started with.
type Store struct {
	mu      sync.RWMutex
	dataset *datatypes.Dataset
	manual  *policy.Manual
}

// NewStore returns an empty store using the given manual. A nil manual
// defaults to the embedded sample.
func NewStore(manual *policy.Manual) *Store {
	if manual == nil {
		manual = policy.NewManual()
	}
	return &Store{manual: manual}
}

// Dataset returns the current dataset, or nil if none has been loaded.
func (s *Store) Dataset() *datatypes.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Manual returns the policy manual.
func (s *Store) Manual() *policy.Manual {
	return s.manual
}

// SetDataset replaces the current dataset.
func (s *Store) SetDataset(ds *datatypes.Dataset) {
	s.mu.Lock()
	s.dataset = ds
	s.mu.Unlock()
}

// Engine ties the loader, classifier, recommendation generator, and chart
// aggregation into the analyze pipeline.
type Engine struct {
	Store     *Store
	Loader    *loader.Loader
	Generator *recommend.Generator
	Metrics   *observability.EngineMetrics
}

// New returns an engine over the given collaborators. metrics may be nil to
// disable instrumentation (tests).
func New(store *Store, ld *loader.Loader, gen *recommend.Generator, metrics *observability.EngineMetrics) *Engine {
	return &Engine{Store: store, Loader: ld, Generator: gen, Metrics: metrics}
}

// LoadSupplyData runs the loader cascade and installs the resulting dataset.
// It never fails: the cascade bottoms out in synthetic data.
func (e *Engine) LoadSupplyData(ctx context.Context) *datatypes.Dataset {
	start := time.Now()
	ds := e.Loader.Load(ctx)
	e.Store.SetDataset(ds)
	if e.Metrics != nil {
		e.Metrics.RecordDatasetLoad(string(ds.Source), time.Since(start).Seconds())
	}
	slog.Info("Supply data loaded",
		"source", ds.Source,
		"records", ds.Len(),
		"suppliers", ds.SupplierCount())
	return ds
}

// Analyze runs the full pipeline for one query. Data must already be loaded;
// Analyze never triggers a load itself, so the caller controls when network
// traffic happens.
func (e *Engine) Analyze(ctx context.Context, query string, language datatypes.Language) (*datatypes.AnalysisResponse, error) {
	start := time.Now()

	ds := e.Store.Dataset()
	if ds.Len() == 0 {
		if e.Metrics != nil {
			e.Metrics.RecordAnalyze(observability.StatusNoData, time.Since(start).Seconds())
		}
		return nil, ErrNoDataLoaded
	}

	analysis := classifier.Classify(query, ds)

	recommendation, tier := e.Generator.Generate(ctx, query, analysis, language)
	if e.Metrics != nil {
		e.Metrics.RecordRecommendation(string(tier))
	}

	resp := &datatypes.AnalysisResponse{
		Recommendation: recommendation,
		Analysis:       analysis,
		Charts:         aggregate.Charts(ds),
	}

	if e.Metrics != nil {
		e.Metrics.RecordAnalyze(observability.StatusSuccess, time.Since(start).Seconds())
	}
	slog.Debug("Analyze complete",
		"focus_area", analysis.FocusArea,
		"tier", tier,
		"duration_ms", time.Since(start).Milliseconds())
	return resp, nil
}
