// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

/*
Package schema bakes the dataset mapping tables into the compiled binary via
the Go embed package. The tables describe how remote source columns map onto
the canonical supply schema and which vocabularies the synthetic generator
draws from. Baking them in keeps the loader deterministic and free of
runtime file dependencies.
*/
package schema

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SupplySourceMappings holds the raw byte content of the
// 'supply_source_mappings.yaml' file, populated at compile time.
//
//go:embed supply_source_mappings.yaml
var SupplySourceMappings []byte

// SyntheticVocabulary lists the fixed value pools the synthetic fallback
// generator samples from.
type SyntheticVocabulary struct {
	Suppliers []string `yaml:"suppliers"`
	Products  []string `yaml:"products"`
	Locations []string `yaml:"locations"`
}

// Mappings is the parsed form of the embedded YAML.
type Mappings struct {
	ColumnMappings   map[string]string   `yaml:"column_mappings"`
	MarkerColumn     string              `yaml:"marker_column"`
	CategoryColumn   string              `yaml:"category_column"`
	SupplierMappings map[string]string   `yaml:"supplier_mappings"`
	DefaultSupplier  string              `yaml:"default_supplier"`
	UnknownSupplier  string              `yaml:"unknown_supplier"`
	NetworkSupplier  string              `yaml:"network_supplier"`
	Synthetic        SyntheticVocabulary `yaml:"synthetic"`
}

// Load parses the embedded mapping tables.
//
// Returns an error only if the embedded YAML is malformed, which indicates
// a build problem rather than a runtime condition.
func Load() (*Mappings, error) {
	var m Mappings
	if err := yaml.Unmarshal(SupplySourceMappings, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal the embedded mapping file: %w", err)
	}
	if m.MarkerColumn == "" {
		return nil, fmt.Errorf("embedded mapping file is missing marker_column")
	}
	return &m, nil
}

// SupplierFor resolves a category name to a supplier, falling back to the
// generic supplier for unmapped categories and the unknown supplier for
// empty ones.
func (m *Mappings) SupplierFor(category string) string {
	if category == "" {
		return m.UnknownSupplier
	}
	if supplier, ok := m.SupplierMappings[category]; ok {
		return supplier
	}
	return m.DefaultSupplier
}
