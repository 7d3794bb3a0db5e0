package backend

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/gp"
)

// Well-known backend names.
const (
	// Native is the GPU backend in gp/backend/native.
	Native = "native"
	// Recording is the call-recording backend in gp/recording.
	Recording = "recording"
)

// Common registry errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Factory creates a new backend instance.
type Factory func() (gp.Backend, error)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for Default (first that succeeds wins).
	backendPriority = []string{Native, Recording}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
// Register panics if factory is nil.
func Register(name string, factory Factory) {
	if factory == nil {
		panic("backend: Register factory is nil")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the sorted names of registered backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get creates a backend by name.
func Get(name string) (gp.Backend, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	b, err := factory()
	if err != nil {
		return nil, fmt.Errorf("backend: create %q: %w", name, err)
	}
	return b, nil
}

// Default returns the first backend in priority order whose factory
// succeeds, then any other registered backend. Factory errors are logged
// and skipped.
func Default() (gp.Backend, error) {
	registryMu.RLock()
	names := make([]string, 0, len(factories))
	for _, name := range backendPriority {
		if _, ok := factories[name]; ok {
			names = append(names, name)
		}
	}
	rest := make([]string, 0, len(factories))
	for name := range factories {
		if !isPriority(name) {
			rest = append(rest, name)
		}
	}
	registryMu.RUnlock()

	sort.Strings(rest)
	for _, name := range append(names, rest...) {
		b, err := Get(name)
		if err == nil && b != nil {
			gp.Logger().Debug("backend: selected", "name", name)
			return b, nil
		}
		gp.Logger().Debug("backend: unavailable", "name", name, "err", err)
	}
	return nil, ErrBackendNotAvailable
}

// MustDefault returns the default backend or panics.
func MustDefault() gp.Backend {
	b, err := Default()
	if err != nil {
		panic("backend: no backend available")
	}
	return b
}

func isPriority(name string) bool {
	for _, p := range backendPriority {
		if p == name {
			return true
		}
	}
	return false
}
