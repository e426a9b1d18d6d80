package names

import "github.com/tagus/canto-bench/pkg/wikidata"

// LabelProvider serves labels harvested from fetched entity documents
type LabelProvider struct {
	labels map[string]map[string]string
}

// NewLabelProvider creates an empty label provider
func NewLabelProvider() *LabelProvider {
	return &LabelProvider{labels: make(map[string]map[string]string)}
}

// AddDocument indexes every entity label in the document. Existing
// entries are kept so earlier documents win on conflict.
func (p *LabelProvider) AddDocument(doc *wikidata.Document) {
	for _, node := range doc.Graph {
		entityID := node.EntityID()
		if entityID == "" {
			continue
		}
		for _, lv := range node.LangValues("label") {
			if lv.Lang == "" {
				continue
			}
			byLang := p.labels[entityID]
			if byLang == nil {
				byLang = make(map[string]string)
				p.labels[entityID] = byLang
			}
			if _, exists := byLang[lv.Lang]; !exists {
				byLang[lv.Lang] = lv.Value
			}
		}
	}
}

// Name returns the provider's name for diagnostics
func (p *LabelProvider) Name() string {
	return "wikidata-labels"
}

// Lookup returns the label for the entity in the given language code
func (p *LabelProvider) Lookup(entityID, lang string) (string, bool) {
	label, ok := p.labels[entityID][lang]
	return label, ok
}
