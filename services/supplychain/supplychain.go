// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package supplychain assembles the supply-chain decision engine service:
// dataset loader, query classifier, recommendation generator, and the HTTP
// surface that exposes them.
//
// # Description
//
// The service loads operational supply data at startup (public dataset
// first, synthetic fallback), keeps it in memory, and answers analyze
// requests against that snapshot. Construction wires every collaborator;
// Run() only starts the listener.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. Run() blocks and should
// only be called once per instance.
package supplychain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/AleutianSupply/services/llm"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/engine"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/loader"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/observability"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/policy"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/recommend"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/routes"
)

// Service is the narrow lifecycle surface of the decision engine.
type Service interface {
	// Run starts the HTTP server and blocks until shutdown or error.
	Run() error

	// Router returns the underlying Gin engine for testing.
	Router() *gin.Engine

	// Engine returns the analyze pipeline for embedding (CLI one-shot use).
	Engine() *engine.Engine

	// Close releases background resources (manual file watcher).
	Close()
}

// Config holds decision-engine configuration options. All fields have
// defaults applied by New(); populate from environment variables, a config
// file, or programmatically for testing.
type Config struct {
	// Port is the HTTP server port. Default: 12310
	Port int

	// LLMBackend specifies the LLM provider.
	// Valid values: "anthropic", "openai", "none"
	// Default: "anthropic"
	LLMBackend string

	// PrimaryURL overrides the primary dataset URL.
	PrimaryURL string

	// DataCoURL overrides the DataCo dataset URL.
	DataCoURL string

	// ManualPath points at a supplier policy manual file. When set, the
	// file replaces the embedded sample and is watched for changes.
	ManualPath string

	// EnableMetrics enables the Prometheus metrics endpoint.
	// Default: true
	EnableMetrics bool

	// GinMode sets the Gin framework mode.
	// Valid values: "debug", "release", "test"
	GinMode string

	// LoadTimeout bounds the startup dataset load. Default: 45s
	LoadTimeout time.Duration
}

type service struct {
	config  Config
	router  *gin.Engine
	engine  *engine.Engine
	manual  *policy.Manual
	metrics *observability.EngineMetrics
}

// New builds a fully wired service and performs the initial dataset load.
// A missing LLM credential is not fatal: the engine falls back to template
// recommendations.
func New(cfg Config) (Service, error) {
	s := &service{config: applyConfigDefaults(cfg)}

	if s.config.GinMode != "" {
		gin.SetMode(s.config.GinMode)
	}

	if s.config.EnableMetrics {
		s.metrics = observability.InitMetrics()
		slog.Info("Initialized Prometheus metrics for decision engine")
	}

	s.initManual()

	ld, err := loader.New(s.config.PrimaryURL, s.config.DataCoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dataset loader: %w", err)
	}

	llmClient := s.initLLMClient()
	store := engine.NewStore(s.manual)
	gen := recommend.New(llmClient, s.manual)
	s.engine = engine.New(store, ld, gen, s.metrics)

	ctx, cancel := context.WithTimeout(context.Background(), s.config.LoadTimeout)
	defer cancel()
	s.engine.LoadSupplyData(ctx)

	s.router = gin.Default()
	routes.SetupRoutes(s.router, s.engine)

	return s, nil
}

func (s *service) Run() error {
	defer s.Close()

	addr := fmt.Sprintf(":%d", s.config.Port)
	slog.Info("Starting decision engine server", "port", s.config.Port)

	return s.router.Run(addr)
}

func (s *service) Router() *gin.Engine {
	return s.router
}

func (s *service) Engine() *engine.Engine {
	return s.engine
}

func (s *service) Close() {
	if s.manual != nil {
		s.manual.Close()
	}
}

func applyConfigDefaults(cfg Config) Config {
	if cfg.Port == 0 {
		cfg.Port = 12310
	}
	if cfg.LLMBackend == "" {
		cfg.LLMBackend = "anthropic"
	}
	if cfg.PrimaryURL == "" {
		cfg.PrimaryURL = loader.DefaultPrimaryURL
	}
	if cfg.DataCoURL == "" {
		cfg.DataCoURL = loader.DefaultDataCoURL
	}
	if cfg.LoadTimeout == 0 {
		cfg.LoadTimeout = 45 * time.Second
	}
	return cfg
}

// initManual loads the policy manual and starts the file watch when a path
// is configured.
func (s *service) initManual() {
	if s.config.ManualPath == "" {
		s.manual = policy.NewManual()
		return
	}
	s.manual = policy.NewManualFromFile(s.config.ManualPath)
	if err := s.manual.Watch(s.config.ManualPath); err != nil {
		slog.Warn("Could not watch policy manual file", "path", s.config.ManualPath, "error", err)
	}
}

// initLLMClient builds the configured backend. Returns nil when no backend
// is available so recommendations degrade to templates.
func (s *service) initLLMClient() llm.LLMClient {
	switch s.config.LLMBackend {
	case "anthropic", "claude":
		client, err := llm.NewAnthropicClient()
		if err != nil {
			slog.Warn("Anthropic client unavailable, using template recommendations", "error", err)
			return nil
		}
		return client
	case "openai":
		client, err := llm.NewOpenAIClient()
		if err != nil {
			slog.Warn("OpenAI client unavailable, using template recommendations", "error", err)
			return nil
		}
		return client
	case "none":
		slog.Info("LLM backend disabled, using template recommendations")
		return nil
	default:
		slog.Warn("Unknown LLM backend, using template recommendations", "backend", s.config.LLMBackend)
		return nil
	}
}
