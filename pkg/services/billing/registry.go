package billing

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// ProviderFactory creates a Provider for one kind of event source.
type ProviderFactory func(ctx context.Context) (Provider, error)

// Registry manages event source factories
type Registry interface {
	// Register adds a new event source factory
	Register(source string, factory ProviderFactory) error
	// Create instantiates the provider for the given source
	Create(ctx context.Context, source string) (Provider, error)
	// ListSources returns the registered sources, sorted
	ListSources() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

// NewRegistry creates a registry pre-populated with factories
func NewRegistry(factories map[string]ProviderFactory) Registry {
	r := &registry{
		factories: make(map[string]ProviderFactory, len(factories)),
	}
	for source, factory := range factories {
		r.factories[source] = factory
	}
	return r
}

func (r *registry) Register(source string, factory ProviderFactory) error {
	if source == "" {
		return fmt.Errorf("source name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[source]; exists {
		return fmt.Errorf("source %q is already registered", source)
	}

	r.factories[source] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, source string) (Provider, error) {
	r.mu.RLock()
	factory, exists := r.factories[source]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("source %q is not registered", source)
	}

	return factory(ctx)
}

func (r *registry) ListSources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]string, 0, len(r.factories))
	for source := range r.factories {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}
