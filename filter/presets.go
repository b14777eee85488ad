package filter

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Presets holds named, pre-compiled filter expressions
type Presets struct {
	mu      sync.RWMutex
	filters map[string]*TagFilter
}

// NewPresets creates an empty preset registry
func NewPresets() *Presets {
	return &Presets{
		filters: make(map[string]*TagFilter),
	}
}

// Register compiles and stores a preset, replacing any previous one
func (p *Presets) Register(name, expression string) error {
	filter, err := Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile preset '%s': %w", name, err)
	}

	p.mu.Lock()
	p.filters[name] = filter
	p.mu.Unlock()

	return nil
}

// RegisterAll compiles and stores several presets. Nothing is stored
// unless every expression compiles.
func (p *Presets) RegisterAll(presets map[string]string) error {
	compiled := make(map[string]*TagFilter, len(presets))

	// Compile all presets first
	for name, expression := range presets {
		filter, err := Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	p.mu.Lock()
	maps.Copy(p.filters, compiled)
	p.mu.Unlock()

	return nil
}

// Get returns a preset by name
func (p *Presets) Get(name string) (*TagFilter, bool) {
	p.mu.RLock()
	filter, exists := p.filters[name]
	p.mu.RUnlock()
	return filter, exists
}

// Names returns all registered preset names, sorted
func (p *Presets) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.filters))
	for name := range p.filters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
