package names

// StaticProvider serves a fixed in-memory label table. Used for
// hand-curated overrides and in tests.
type StaticProvider struct {
	name   string
	labels map[string]map[string]string
}

// NewStaticProvider creates a provider over a fixed entity/language table
func NewStaticProvider(name string, labels map[string]map[string]string) *StaticProvider {
	return &StaticProvider{name: name, labels: labels}
}

// Name returns the provider's name for diagnostics
func (p *StaticProvider) Name() string {
	return p.name
}

// Lookup returns the label for the entity in the given language code
func (p *StaticProvider) Lookup(entityID, lang string) (string, bool) {
	label, ok := p.labels[entityID][lang]
	return label, ok
}
