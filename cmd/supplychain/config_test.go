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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileIsFine(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Server.Port)
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9999
  gin_mode: release
llm:
  backend: openai
data:
  manual_path: /etc/supply/manual.txt
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "openai", cfg.LLM.Backend)
	assert.Equal(t, "/etc/supply/manual.txt", cfg.Data.ManualPath)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SUPPLY_PORT", "8123")
	t.Setenv("LLM_BACKEND_TYPE", "none")
	t.Setenv("SUPPLY_MANUAL_PATH", "/tmp/manual.txt")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8123, cfg.Server.Port)
	assert.Equal(t, "none", cfg.LLM.Backend)
	assert.Equal(t, "/tmp/manual.txt", cfg.Data.ManualPath)
}

func TestServiceConfig_Mapping(t *testing.T) {
	var cfg Config
	cfg.Server.Port = 7000
	cfg.LLM.Backend = "anthropic"
	cfg.Data.PrimaryURL = "http://example.com/a.csv"

	sc := cfg.ServiceConfig()
	assert.Equal(t, 7000, sc.Port)
	assert.Equal(t, "anthropic", sc.LLMBackend)
	assert.Equal(t, "http://example.com/a.csv", sc.PrimaryURL)
	assert.True(t, sc.EnableMetrics)
}
