// Package registry provides a global registry of snake rulesets (variants).
// Variants register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// DefaultVariant is the ID of the baseline ruleset.
const DefaultVariant = "classic"

// ErrUnknownVariant is returned when a variant ID is not registered.
var ErrUnknownVariant = errors.New("registry: unknown variant")

// Variant is a named ruleset.
type Variant struct {
	ID          string
	Title       string
	Description string
	Rules       core.Rules
}

// Factory builds a fresh Variant value.
type Factory func() Variant

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a variant factory to the registry.
// Typically called from an init() function.
// Panics if a variant with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}
	factories[id] = f
}

// List returns all registered variants, sorted by ID.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Variant, 0, len(factories))
	for _, f := range factories {
		result = append(result, f())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get instantiates a variant by its ID.
func Get(id string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return Variant{}, fmt.Errorf("%w %q", ErrUnknownVariant, id)
	}
	return f(), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
