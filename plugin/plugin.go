package plugin

import (
	"context"
	"time"
)

// PluginData is an opaque captured payload plus descriptive metadata.
// The payload format is private to the plugin that produced it; the
// registry and any storage layer treat it as a byte blob.
type PluginData struct {
	// Kind names the producing plugin so the payload can be routed back
	// to it for restore.
	Kind string

	// Payload is the opaque captured state.
	Payload []byte

	// Metadata carries plugin-specific descriptive fields.
	Metadata map[string]string

	// References lists links to external artifacts (commit URLs,
	// notebook paths) associated with the capture.
	References []string

	// CapturedAt is when the capture was taken.
	CapturedAt time.Time
}

// Plugin captures and restores the state of one external system.
// Implementations must be safe for concurrent use.
type Plugin interface {
	// Name returns the stable registry name of the plugin. It must match
	// the Kind of any PluginData the plugin produces.
	Name() string

	// IsAvailable reports whether the external system is reachable and
	// the plugin can currently capture or restore.
	IsAvailable() bool

	// Capture snapshots the external system's current state.
	Capture(ctx context.Context) (*PluginData, error)

	// Restore applies a previously captured state to the external system.
	Restore(ctx context.Context, data *PluginData) error

	// Validate reports whether the given data is well-formed for this
	// plugin, without touching the external system.
	Validate(data *PluginData) bool
}
