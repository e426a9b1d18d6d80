// Package interfaces defines the shared contracts between pipeline stages.
package interfaces

import "context"

// NameProvider supplies candidate localized names for entity IDs. A provider
// returns the name for the requested language code and whether it has one;
// providers are consulted in a fixed priority order by the resolver.
type NameProvider interface {
	// Name returns the provider's name for diagnostics
	Name() string

	// Lookup returns the label for the entity in the given language code
	Lookup(entityID, lang string) (string, bool)
}

// EntityCache stores fetched knowledge-base documents keyed by entity ID.
// Passed explicitly into clients so tests can substitute a fixed in-memory map.
type EntityCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
