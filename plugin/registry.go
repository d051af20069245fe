package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Registry is a thread-safe collection of named plugins.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	logger  *slog.Logger
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
		logger:  slog.Default(),
	}
}

// Register adds a plugin under its own name.
// Returns ErrNilPlugin for nil and ErrDuplicatePlugin if the name is taken.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return ErrNilPlugin
	}
	name := p.Name()
	if name == "" {
		return ErrEmptyPluginName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePlugin, name)
	}
	r.plugins[name] = p
	return nil
}

// Get returns the plugin registered under name.
// Returns ErrPluginNotFound if no such plugin exists.
func (r *Registry) Get(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, name)
	}
	return p, nil
}

// Names returns the registered plugin names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CaptureAvailable captures state from every available plugin.
// Unavailable plugins are skipped; a capture failure is logged and
// skipped rather than aborting the whole pass.
func (r *Registry) CaptureAvailable(ctx context.Context) ([]*PluginData, error) {
	names := r.Names()

	r.mu.RLock()
	plugins := make([]Plugin, 0, len(names))
	for _, name := range names {
		if p, ok := r.plugins[name]; ok {
			plugins = append(plugins, p)
		}
	}
	r.mu.RUnlock()

	captures := make([]*PluginData, 0, len(plugins))
	for _, p := range plugins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !p.IsAvailable() {
			continue
		}
		data, err := p.Capture(ctx)
		if err != nil {
			r.logger.Warn("plugin capture failed", "plugin", p.Name(), "err", err)
			continue
		}
		captures = append(captures, data)
	}
	return captures, nil
}

// Restore routes data back to the plugin named by its Kind, validating
// it first.
func (r *Registry) Restore(ctx context.Context, data *PluginData) error {
	if data == nil {
		return ErrNilPluginData
	}

	p, err := r.Get(data.Kind)
	if err != nil {
		return err
	}
	if !p.Validate(data) {
		return fmt.Errorf("%w: %s", ErrInvalidPluginData, data.Kind)
	}
	return p.Restore(ctx, data)
}
