// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianSupply/services/supplychain"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/datatypes"
)

var (
	rootCmd = &cobra.Command{
		Use:   "supplychain",
		Short: "A CLI for the Aleutian supply-chain decision engine",
		Long: `Supplychain loads public supply-chain datasets, scores every item
for stock, lead-time, and quality risk, and generates grounded
recommendations for supply-chain challenges.`,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Starts the decision engine HTTP server",
		Long:  `Loads supply data, wires the analyze pipeline, and serves the REST API until interrupted.`,
		Run:   runServeCommand,
	}
	analyzeCmd = &cobra.Command{
		Use:   "analyze [query]",
		Short: "Runs one analysis and prints the result as JSON",
		Long:  `Loads supply data, runs the full analyze pipeline for the given query, and prints the recommendation, analysis, and chart aggregates.`,
		Args:  cobra.MinimumNArgs(1),
		Run:   runAnalyzeCommand,
	}
	datasetCmd = &cobra.Command{
		Use:   "dataset",
		Short: "Loads supply data and prints a summary",
		Run:   runDatasetCommand,
	}

	configPath string
	language   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	analyzeCmd.Flags().StringVar(&language, "language", "English", "Recommendation language (English or Español)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(datasetCmd)
}

func runServeCommand(cmd *cobra.Command, args []string) {
	svc, err := supplychain.New(config.ServiceConfig())
	if err != nil {
		log.Fatalf("Failed to create decision engine: %v", err)
	}
	if err := svc.Run(); err != nil {
		log.Fatalf("Decision engine error: %v", err)
	}
}

func runAnalyzeCommand(cmd *cobra.Command, args []string) {
	lang := datatypes.Language(language)
	if !lang.IsValid() {
		log.Fatalf("Unsupported language %q (use English or Español)", language)
	}

	cfg := config.ServiceConfig()
	cfg.EnableMetrics = false

	svc, err := supplychain.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create decision engine: %v", err)
	}
	defer svc.Close()

	query := strings.Join(args, " ")
	resp, err := svc.Engine().Analyze(context.Background(), query, lang)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode response: %v", err)
	}
	fmt.Println(string(out))
}

func runDatasetCommand(cmd *cobra.Command, args []string) {
	cfg := config.ServiceConfig()
	cfg.EnableMetrics = false

	svc, err := supplychain.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create decision engine: %v", err)
	}
	defer svc.Close()

	ds := svc.Engine().Store.Dataset()
	fmt.Printf("Source:    %s\n", ds.Source)
	fmt.Printf("Records:   %d\n", ds.Len())
	fmt.Printf("Suppliers: %d\n", ds.SupplierCount())

	n := 5
	if ds.Len() < n {
		n = ds.Len()
	}
	fmt.Println("\nPreview:")
	for _, r := range ds.Records[:n] {
		fmt.Printf("  %-25s %-20s stock=%-4d risk=%.2f\n", r.Supplier, r.Product, r.CurrentStock, r.OverallRisk)
	}
}
