package featuremgr

import (
	"fmt"
	"sync"
)

// FactoryFunc builds a FeatureManager from a structured, keyword=value
// configuration map. Replacing a free-form "feature manager expression"
// with a named registry plus config map removes the code-evaluation
// injection vector spec.md §9 Design Notes flags, mirroring the
// Registry/FactoryFunc shape go-gavel uses for its evaluation units.
type FactoryFunc func(config map[string]any) (FeatureManager, error)

// Registry maps names to FeatureManager factories. The zero value is not
// usable; use NewRegistry.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FactoryFunc
}

// NewRegistry returns an empty registry. Call RegisterBuiltins to add the
// manager kinds this package ships.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]FactoryFunc)}
}

// Register adds a factory under name. It panics if name is already
// registered — a duplicate registration is a programming error that should
// fail fast during initialization, not surface as a runtime surprise later.
func (r *Registry) Register(name string, factory FactoryFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("featuremgr: %q already registered", name))
	}
	r.factories[name] = factory
}

// Create builds a FeatureManager by name. Returns ErrUnknownFeatureManager
// if name has no registered factory.
func (r *Registry) Create(name string, config map[string]any) (FeatureManager, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeatureManager, name)
	}
	return factory(config)
}

// Names returns the currently registered factory names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	return names
}

// RegisterBuiltins registers "moments" and "histogram". "histogram" accepts
// an optional "num_bins" integer config key (default 32).
func (r *Registry) RegisterBuiltins() {
	r.Register("moments", func(config map[string]any) (FeatureManager, error) {
		return NewMomentsManager(), nil
	})
	r.Register("histogram", func(config map[string]any) (FeatureManager, error) {
		numBins := 32
		if v, ok := config["num_bins"]; ok {
			n, ok := toInt(v)
			if !ok {
				return nil, fmt.Errorf("featuremgr: histogram num_bins must be an integer, got %T", v)
			}
			numBins = n
		}
		return NewHistogramManager(numBins), nil
	})
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
