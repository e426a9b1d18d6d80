package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tagus/canto-bench/pkg/aggregate"
	"github.com/tagus/canto-bench/pkg/mcq"
)

// writeJSON marshals a value as indented JSON, creating parent
// directories as needed.
func writeJSON(path string, value interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteRecords writes the aggregated person records
func WriteRecords(path string, records []aggregate.PersonRecord) error {
	return writeJSON(path, records)
}

// ReadRecords reads person records written by WriteRecords
func ReadRecords(path string) ([]aggregate.PersonRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read person records: %w", err)
	}

	var records []aggregate.PersonRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse person records: %w", err)
	}
	return records, nil
}

// MissReport lists entity IDs that resolved to no localized name
type MissReport struct {
	Total    int      `json:"total"`
	Entities []string `json:"entities"`
}

// WriteMissReport writes the unresolved-name diagnostics
func WriteMissReport(path string, misses []string) error {
	if misses == nil {
		misses = []string{}
	}
	return writeJSON(path, MissReport{Total: len(misses), Entities: misses})
}

// WriteDataset writes one question dataset
func WriteDataset(path string, dataset mcq.Dataset) error {
	return writeJSON(path, dataset)
}
