// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command supplychain runs the supply-chain decision engine.
//
// # Environment Variables
//
//   - SUPPLY_PORT: HTTP server port (default: 12310)
//   - LLM_BACKEND_TYPE: LLM provider - anthropic, openai, none (default: anthropic)
//   - ANTHROPIC_API_KEY / OPENAI_API_KEY: backend credentials
//   - SUPPLY_PRIMARY_URL: override for the primary dataset URL
//   - SUPPLY_DATACO_URL: override for the DataCo dataset URL
//   - SUPPLY_MANUAL_PATH: path to a supplier policy manual file
//
// # Usage
//
//	# Build
//	go build -o supplychain ./cmd/supplychain
//
//	# Start the HTTP server
//	./supplychain serve
//
//	# One-shot analysis from the terminal
//	./supplychain analyze "Stock levels critically low. Immediate action needed."
//
//	# Inspect the loaded dataset
//	./supplychain dataset
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var config Config

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Execute the root command. Cobra handles parsing the arguments.
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Error loading configuration: %v", err)
		}
		config = cfg
	}
}
