// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package loader resolves one usable supply-chain dataset from an ordered
// cascade of remote CSV sources, normalizes it into the canonical schema,
// and computes the derived risk fields.
//
// Load never fails: when every remote source is unreachable or structurally
// invalid, a deterministic synthetic dataset is generated instead. Source
// failures are logged and swallowed; they are a routine condition, not an
// error the caller has to handle.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AleutianAI/AleutianSupply/services/supplychain/datatypes"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/loader/schema"
	"github.com/AleutianAI/AleutianSupply/services/supplychain/risk"
)

const (
	// DefaultPrimaryURL is the curated supply-chain dataset tried first.
	DefaultPrimaryURL = "https://raw.githubusercontent.com/datasets/supply-chain-analysis/main/supply_chain_data.csv"

	// DefaultDataCoURL is the larger public DataCo dataset tried second.
	DefaultDataCoURL = "https://raw.githubusercontent.com/shashwatwork/DataCo-Smart-Supply-Chain-for-Big-Data-Analysis/master/DataCoSupplyChainDataset.csv"

	primaryTimeout = 10 * time.Second
	dataCoTimeout  = 15 * time.Second

	// syntheticSeed keeps the fully synthetic fallback dataset stable
	// between runs so demos and tests see consistent data.
	syntheticSeed = 42
)

// HTTPClient allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Loader fetches and normalizes supply datasets.
type Loader struct {
	PrimaryURL string
	DataCoURL  string
	HTTPClient HTTPClient

	mappings *schema.Mappings
	rng      *rand.Rand
}

// New creates a Loader with the embedded mapping tables. Empty URLs fall
// back to the public dataset defaults.
//
// Returns an error only if the embedded mapping YAML is malformed.
func New(primaryURL, dataCoURL string) (*Loader, error) {
	mappings, err := schema.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load source mappings: %w", err)
	}
	if primaryURL == "" {
		primaryURL = DefaultPrimaryURL
	}
	if dataCoURL == "" {
		dataCoURL = DefaultDataCoURL
	}
	return &Loader{
		PrimaryURL: primaryURL,
		DataCoURL:  dataCoURL,
		HTTPClient: &http.Client{Timeout: dataCoTimeout},
		mappings:   mappings,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// sourceAttempt is one step of the fallback cascade. fetch returns a tagged
// result: a dataset on success, or the reason the source was unusable.
type sourceAttempt struct {
	name  datatypes.DataSource
	fetch func(ctx context.Context) (*datatypes.Dataset, error)
}

// Load resolves a dataset from the cascade. It always returns a non-empty
// dataset of at most datatypes.MaxDatasetRecords records.
func (l *Loader) Load(ctx context.Context) *datatypes.Dataset {
	attempts := []sourceAttempt{
		{name: datatypes.SourcePrimary, fetch: l.fetchPrimary},
		{name: datatypes.SourceDataCo, fetch: l.fetchDataCo},
	}

	for _, attempt := range attempts {
		ds, err := attempt.fetch(ctx)
		if err != nil {
			slog.Warn("Supply data source unusable, falling through",
				"source", attempt.name, "error", err)
			continue
		}
		slog.Info("Loaded supply data", "source", attempt.name, "records", ds.Len())
		return ds
	}

	slog.Warn("All remote supply data sources failed, generating synthetic data")
	ds := l.Synthetic()
	slog.Info("Loaded supply data", "source", ds.Source, "records", ds.Len())
	return ds
}

// fetchPrimary attempts the curated dataset, which already carries the
// canonical column names. Rows are scored with the remote divisor.
func (l *Loader) fetchPrimary(ctx context.Context) (*datatypes.Dataset, error) {
	header, rows, err := l.fetchCSV(ctx, l.PrimaryURL, primaryTimeout)
	if err != nil {
		return nil, err
	}

	cols := indexColumns(header, nil)
	if _, ok := cols["Product"]; !ok {
		return nil, fmt.Errorf("dataset structure not compatible: missing Product column")
	}

	ds := &datatypes.Dataset{Source: datatypes.SourcePrimary}
	for _, row := range rows {
		r := datatypes.Record{
			Supplier:      cell(row, cols, "Supplier"),
			Product:       cell(row, cols, "Product"),
			Location:      cell(row, cols, "Location"),
			CurrentStock:  cellInt(row, cols, "Current_Stock", 0),
			MinStock:      cellFloat(row, cols, "Min_Stock", 0),
			LeadTimeDays:  cellInt(row, cols, "Lead_Time_Days", 0),
			CostPerUnit:   cellFloat(row, cols, "Cost_Per_Unit", 0),
			QualityRating: cellFloat(row, cols, "Quality_Rating", 0),
			LastDelivery:  datatypes.DeliveryStatus(cell(row, cols, "Last_Delivery")),
		}
		ds.Records = append(ds.Records, r)
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("primary dataset contained no rows")
	}

	risk.Apply(ds, risk.RemoteLeadTimeDivisor)
	return ds, nil
}

// fetchDataCo attempts the DataCo dataset and remaps it onto the canonical
// schema. The marker column must be present; everything else is optional and
// synthesized by the documented default rules when missing.
func (l *Loader) fetchDataCo(ctx context.Context) (*datatypes.Dataset, error) {
	header, rows, err := l.fetchCSV(ctx, l.DataCoURL, dataCoTimeout)
	if err != nil {
		return nil, err
	}

	if !containsColumn(header, l.mappings.MarkerColumn) {
		return nil, fmt.Errorf("dataset structure not compatible: missing %q column", l.mappings.MarkerColumn)
	}

	cols := indexColumns(header, l.mappings.ColumnMappings)
	categoryIdx, hasCategory := columnIndex(header, l.mappings.CategoryColumn)
	_, hasStock := cols["Current_Stock"]
	_, hasLeadTime := cols["Lead_Time_Days"]
	_, hasProxy := cols["Late_Delivery_Risk"]

	ds := &datatypes.Dataset{Source: datatypes.SourceDataCo}
	for _, row := range rows {
		r := datatypes.Record{
			Product:     cell(row, cols, "Product"),
			Location:    cell(row, cols, "Location"),
			CostPerUnit: cellFloat(row, cols, "Cost_Per_Unit", 0),
		}

		if hasCategory {
			r.Supplier = l.mappings.SupplierFor(strings.TrimSpace(value(row, categoryIdx)))
		} else {
			r.Supplier = l.mappings.NetworkSupplier
		}

		if hasStock {
			r.CurrentStock = cellInt(row, cols, "Current_Stock", 0)
		} else {
			r.CurrentStock = l.randInt(50, 500)
		}

		if hasLeadTime {
			r.LeadTimeDays = cellInt(row, cols, "Lead_Time_Days", 0)
		} else {
			r.LeadTimeDays = l.randInt(5, 30)
		}

		r.MinStock = 0.3 * float64(r.CurrentStock)

		if hasProxy {
			// Invert the late-delivery risk to approximate a quality rating.
			proxy := cellFloat(row, cols, "Late_Delivery_Risk", 0)
			r.QualityRating = clip(5.0-proxy*2, 3.0, 5.0)
		} else {
			r.QualityRating = l.randFloat(3.5, 5.0)
		}

		r.LastDelivery = l.weightedDelivery()

		ds.Records = append(ds.Records, r)
		if ds.Len() >= datatypes.MaxDatasetRecords {
			break
		}
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("dataco dataset contained no rows")
	}

	risk.Apply(ds, risk.RemoteLeadTimeDivisor)
	return ds, nil
}

// Synthetic generates the deterministic fallback dataset: 200 records drawn
// from the fixed vocabularies with a fixed seed, scored with the synthetic
// divisor.
func (l *Loader) Synthetic() *datatypes.Dataset {
	rng := rand.New(rand.NewSource(syntheticSeed))
	vocab := l.mappings.Synthetic

	ds := &datatypes.Dataset{Source: datatypes.SourceSynthetic}
	for i := 0; i < datatypes.MaxDatasetRecords; i++ {
		r := datatypes.Record{
			Supplier:      pick(rng, vocab.Suppliers),
			Product:       pick(rng, vocab.Products),
			Location:      pick(rng, vocab.Locations),
			CurrentStock:  randIntIn(rng, 10, 500),
			MinStock:      float64(randIntIn(rng, 50, 200)),
			LeadTimeDays:  randIntIn(rng, 5, 45),
			CostPerUnit:   randFloatIn(rng, 10, 500),
			QualityRating: randFloatIn(rng, 3.0, 5.0),
			LastDelivery:  weightedDeliveryIn(rng),
		}
		ds.Records = append(ds.Records, r)
	}

	risk.Apply(ds, risk.SyntheticLeadTimeDivisor)
	return ds
}

// fetchCSV performs one time-bounded GET and parses the body as CSV.
// At most MaxDatasetRecords data rows are read; the rest of the body is
// never consumed.
func (l *Loader) fetchCSV(ctx context.Context, url string, timeout time.Duration) ([]string, [][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "AleutianSupply/1.0")

	resp, err := l.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("dataset source returned status %s", resp.Status)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows [][]string
	for len(rows) < datatypes.MaxDatasetRecords {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// =============================================================================
// Column helpers
// =============================================================================

// indexColumns maps canonical column names to their positions, applying the
// rename dictionary to columns that exist in the source. Columns absent from
// the dictionary keep their source name.
func indexColumns(header []string, renames map[string]string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if renamed, ok := renames[h]; ok {
			name = renamed
		}
		cols[name] = i
	}
	return cols
}

func containsColumn(header []string, name string) bool {
	_, ok := columnIndex(header, name)
	return ok
}

func columnIndex(header []string, name string) (int, bool) {
	for i, h := range header {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

func value(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok {
		return ""
	}
	return strings.TrimSpace(value(row, idx))
}

func cellInt(row []string, cols map[string]int, name string, fallback int) int {
	s := cell(row, cols, name)
	if s == "" {
		return fallback
	}
	// Some sources format integer quantities as floats ("3.0").
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int(v)
	}
	return fallback
}

func cellFloat(row []string, cols map[string]int, name string, fallback float64) float64 {
	s := cell(row, cols, name)
	if s == "" {
		return fallback
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return fallback
}

// =============================================================================
// Random draw helpers
// =============================================================================

func (l *Loader) randInt(low, high int) int { return randIntIn(l.rng, low, high) }

func (l *Loader) randFloat(low, high float64) float64 { return randFloatIn(l.rng, low, high) }

func (l *Loader) weightedDelivery() datatypes.DeliveryStatus { return weightedDeliveryIn(l.rng) }

// randIntIn draws uniformly from [low, high).
func randIntIn(rng *rand.Rand, low, high int) int {
	return low + rng.Intn(high-low)
}

func randFloatIn(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}

// weightedDeliveryIn draws a delivery status with the fixed weights
// {On Time: 0.7, Delayed: 0.2, Early: 0.1}.
func weightedDeliveryIn(rng *rand.Rand) datatypes.DeliveryStatus {
	v := rng.Float64()
	switch {
	case v < 0.7:
		return datatypes.DeliveryOnTime
	case v < 0.9:
		return datatypes.DeliveryDelayed
	default:
		return datatypes.DeliveryEarly
	}
}

func clip(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func pick(rng *rand.Rand, values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[rng.Intn(len(values))]
}
