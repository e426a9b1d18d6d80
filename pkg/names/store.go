package names

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Table is a resolved-name dataset keyed by entity ID, persisted between
// pipeline stages so later stages never re-resolve.
type Table map[string]Resolution

// WriteTable writes a resolved-name table as indented JSON, creating
// parent directories as needed.
func WriteTable(path string, table Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal name table: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write name table: %w", err)
	}
	return nil
}

// ReadTable reads a resolved-name table written by WriteTable
func ReadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read name table: %w", err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse name table: %w", err)
	}
	return table, nil
}
