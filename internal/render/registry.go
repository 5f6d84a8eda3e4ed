package render

import (
	"fmt"
	"sort"
	"sync"
)

// TargetFactory creates a target of the given size.
type TargetFactory func(width, height int) Target

var (
	registryMu sync.RWMutex
	targets    = make(map[string]TargetFactory)
)

// Register makes a target available under name. It is meant to be called
// from the init function of a backend package.
//
// Register panics if factory is nil or name is already registered.
func Register(name string, factory TargetFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("render: Register factory is nil")
	}
	if _, dup := targets[name]; dup {
		panic("render: Register called twice for " + name)
	}
	targets[name] = factory
}

// Unregister removes a target. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(targets, name)
}

// NewTarget creates a target by name.
func NewTarget(name string, width, height int) (Target, error) {
	registryMu.RLock()
	factory, ok := targets[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("render: unknown target %q (forgotten import?)", name)
	}
	return factory(width, height), nil
}

// Targets returns the registered target names, sorted.
func Targets() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
