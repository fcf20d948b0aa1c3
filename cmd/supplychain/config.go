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
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/AleutianSupply/services/supplychain"
)

// Config is the CLI configuration, read from an optional config.yaml and
// overridden by environment variables.
type Config struct {
	Server struct {
		Port    int    `yaml:"port"`
		GinMode string `yaml:"gin_mode"`
	} `yaml:"server"`
	LLM struct {
		Backend string `yaml:"backend"`
	} `yaml:"llm"`
	Data struct {
		PrimaryURL string `yaml:"primary_url"`
		DataCoURL  string `yaml:"dataco_url"`
		ManualPath string `yaml:"manual_path"`
	} `yaml:"data"`
}

// LoadConfig reads the YAML file at path if it exists, then applies
// environment overrides. A missing file is not an error: the defaults plus
// environment are enough to run.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	yamlFile, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
			return cfg, fmt.Errorf("error parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("error reading %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SUPPLY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LLM_BACKEND_TYPE"); v != "" {
		cfg.LLM.Backend = v
	}
	if v := os.Getenv("SUPPLY_PRIMARY_URL"); v != "" {
		cfg.Data.PrimaryURL = v
	}
	if v := os.Getenv("SUPPLY_DATACO_URL"); v != "" {
		cfg.Data.DataCoURL = v
	}
	if v := os.Getenv("SUPPLY_MANUAL_PATH"); v != "" {
		cfg.Data.ManualPath = v
	}
}

// ServiceConfig converts the CLI configuration into the service's form.
func (c Config) ServiceConfig() supplychain.Config {
	return supplychain.Config{
		Port:          c.Server.Port,
		LLMBackend:    c.LLM.Backend,
		PrimaryURL:    c.Data.PrimaryURL,
		DataCoURL:     c.Data.DataCoURL,
		ManualPath:    c.Data.ManualPath,
		GinMode:       c.Server.GinMode,
		EnableMetrics: true,
	}
}
