package registry

import (
	"fmt"
	"sort"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/contracts"
)

// Registry manages available shot providers
type Registry struct {
	providers map[string]contracts.ShotProvider
}

// New creates a registry holding the given providers
func New(providers ...contracts.ShotProvider) *Registry {
	r := &Registry{
		providers: make(map[string]contracts.ShotProvider),
	}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds a provider, replacing any provider with the same key
func (r *Registry) Register(provider contracts.ShotProvider) {
	r.providers[provider.GetProviderKey()] = provider
}

// GetProvider retrieves a provider by key
func (r *Registry) GetProvider(key string) (contracts.ShotProvider, error) {
	provider, ok := r.providers[key]
	if !ok {
		return nil, fmt.Errorf("shot provider not found: %s", key)
	}
	return provider, nil
}

// Keys returns all registered provider keys, sorted
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.providers))
	for key := range r.providers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
