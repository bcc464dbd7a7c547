package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
	domainRepos "github.com/rios0rios0/releasewatch/internal/domain/repositories"
)

// StateFactory opens a StateRepository rooted at the given path.
type StateFactory func(path string) (domainRepos.StateRepository, error)

// CatalogFactory creates a CatalogRepository for the given portal settings.
type CatalogFactory func(cfg entities.PortalConfig) (domainRepos.CatalogRepository, error)

// StateRegistry manages all registered storage backends.
type StateRegistry struct {
	backends map[string]StateFactory
}

// NewStateRegistry creates an empty state registry.
func NewStateRegistry() *StateRegistry {
	return &StateRegistry{
		backends: make(map[string]StateFactory),
	}
}

// Register adds a backend factory under the given name (e.g. "badger").
func (r *StateRegistry) Register(name string, factory StateFactory) {
	r.backends[name] = factory
}

// Open returns an opened repository for the configured backend.
func (r *StateRegistry) Open(cfg entities.StorageConfig) (domainRepos.StateRepository, error) {
	factory, ok := r.backends[cfg.Backend]
	if !ok {
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
	repo, err := factory(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage at %q: %w", cfg.Backend, cfg.Path, err)
	}
	return repo, nil
}

// Names returns the registered backend names, sorted.
func (r *StateRegistry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
