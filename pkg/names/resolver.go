// Package names resolves entity IDs to Cantonese display names by
// consulting an ordered chain of providers.
package names

import (
	"context"
	"sort"

	"github.com/tagus/canto-bench/pkg/config"
	"github.com/tagus/canto-bench/pkg/interfaces"
	"github.com/tagus/canto-bench/pkg/logging"
)

// Resolver looks up localized names across providers. Each provider is
// exhausted across the language priority list before the next one is
// consulted, so an earlier provider's fallback-language hit beats a
// later provider's primary-language hit.
type Resolver struct {
	providers []interfaces.NameProvider
	languages []string
	logger    logging.Logger
}

// ResolverOption configures the resolver
type ResolverOption func(*Resolver)

// WithLanguages sets the language codes tried in priority order
func WithLanguages(languages ...string) ResolverOption {
	return func(r *Resolver) {
		r.languages = languages
	}
}

// WithResolverLogger sets the logger
func WithResolverLogger(logger logging.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a resolver over the given provider chain. Providers
// earlier in the slice win ties within the same language.
func NewResolver(providers []interfaces.NameProvider, options ...ResolverOption) *Resolver {
	cfg := config.Get()
	resolver := &Resolver{
		providers: providers,
		languages: []string{cfg.Languages.Primary, cfg.Languages.Secondary},
		logger:    logging.New(),
	}

	for _, option := range options {
		option(resolver)
	}

	return resolver
}

// Resolve returns the localized name for an entity, along with the
// provider and language that supplied it.
func (r *Resolver) Resolve(entityID string) (Resolution, bool) {
	for _, provider := range r.providers {
		for _, lang := range r.languages {
			if name, ok := provider.Lookup(entityID, lang); ok && name != "" {
				return Resolution{
					EntityID: entityID,
					Name:     name,
					Lang:     lang,
					Source:   provider.Name(),
				}, true
			}
		}
	}
	return Resolution{}, false
}

// Resolution records where a resolved name came from
type Resolution struct {
	EntityID string `json:"entity_id"`
	Name     string `json:"name"`
	Lang     string `json:"lang"`
	Source   string `json:"source"`
}

// ResolveAll resolves a batch of entity IDs. Unresolved IDs are returned
// sorted in the miss list; they never produce blank names.
func (r *Resolver) ResolveAll(ctx context.Context, entityIDs []string) (map[string]Resolution, []string) {
	resolved := make(map[string]Resolution)
	var missed []string

	for _, id := range entityIDs {
		if _, done := resolved[id]; done {
			continue
		}
		resolution, ok := r.Resolve(id)
		if !ok {
			missed = append(missed, id)
			continue
		}
		resolved[id] = resolution
	}

	sort.Strings(missed)
	missed = dedupeSorted(missed)

	if len(missed) > 0 {
		r.logger.Warn(ctx, "Some entities have no localized name", map[string]interface{}{
			"missed":   len(missed),
			"resolved": len(resolved),
		})
	}

	return resolved, missed
}

func dedupeSorted(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := values[:1]
	for _, v := range values[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
