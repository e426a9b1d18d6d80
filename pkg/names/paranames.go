package names

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ParaNamesProvider serves labels loaded from a ParaNames TSV dump.
// Only rows in the requested languages are kept in memory; the dump has
// hundreds of millions of rows across all languages.
type ParaNamesProvider struct {
	labels map[string]map[string]string
}

// NewParaNamesProvider parses a ParaNames TSV stream. The file carries a
// header row naming at least wikidata_id, language and label columns.
// The first label seen for an (entity, language) pair wins so repeated
// loads stay deterministic.
func NewParaNamesProvider(r io.Reader, keepLangs ...string) (*ParaNamesProvider, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read ParaNames header: %w", err)
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[name] = i
	}
	idCol, idOK := columns["wikidata_id"]
	langCol, langOK := columns["language"]
	labelCol, labelOK := columns["label"]
	if !idOK || !langOK || !labelOK {
		return nil, fmt.Errorf("ParaNames header missing required columns: %v", header)
	}

	keep := map[string]bool{}
	for _, lang := range keepLangs {
		keep[lang] = true
	}

	provider := &ParaNamesProvider{labels: make(map[string]map[string]string)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ParaNames row: %w", err)
		}
		if len(record) <= idCol || len(record) <= langCol || len(record) <= labelCol {
			continue
		}

		lang := record[langCol]
		if len(keep) > 0 && !keep[lang] {
			continue
		}
		entityID, label := record[idCol], record[labelCol]
		if entityID == "" || label == "" {
			continue
		}

		byLang := provider.labels[entityID]
		if byLang == nil {
			byLang = make(map[string]string)
			provider.labels[entityID] = byLang
		}
		if _, exists := byLang[lang]; !exists {
			byLang[lang] = label
		}
	}

	return provider, nil
}

// LoadParaNamesFile opens and parses a ParaNames TSV file
func LoadParaNamesFile(path string, keepLangs ...string) (*ParaNamesProvider, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ParaNames file: %w", err)
	}
	defer file.Close()
	return NewParaNamesProvider(file, keepLangs...)
}

// Name returns the provider's name for diagnostics
func (p *ParaNamesProvider) Name() string {
	return "paranames"
}

// Lookup returns the label for the entity in the given language code
func (p *ParaNamesProvider) Lookup(entityID, lang string) (string, bool) {
	label, ok := p.labels[entityID][lang]
	return label, ok
}

// Len returns the number of entities with at least one label
func (p *ParaNamesProvider) Len() int {
	return len(p.labels)
}
