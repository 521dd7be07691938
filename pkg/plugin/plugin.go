// Package plugin defines the in-process plugin contract: the interface a
// statically linked plugin implements, the metadata it declares, and a Base
// implementation carrying the default method bodies.
package plugin

import (
	"errors"

	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/behavior"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/port"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/process"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/schema"
)

// PluginID identifies one plugin instance within a host session. IDs are
// never reused while the instance they name is alive.
type PluginID uint64

// ErrProcessingFailed is the single recoverable failure kind reported by a
// processing step or input lifecycle hook. Concrete failures wrap it.
var ErrProcessingFailed = errors.New("plugin: processing failed")

// ErrUnknownInput is returned when a value is pushed to an input name the
// instance does not have. The instance's state is left unchanged.
var ErrUnknownInput = errors.New("plugin: unknown input")

// ErrUnknownOutput is returned when a value is written to an output name
// the instance does not have.
var ErrUnknownOutput = errors.New("plugin: unknown output")

// Plugin is the contract a host drives. One caller at a time drives a given
// instance; the contract defines no internal locking.
//
// Embed Base to get the default method bodies; a concrete plugin then only
// implements Process and whatever it overrides.
type Plugin interface {
	// ID returns the instance identifier assigned at creation.
	ID() PluginID

	// Meta returns the plugin's descriptive record. It does not change
	// across ticks.
	Meta() *Meta

	// Inputs returns the ordered input ports.
	Inputs() []port.Port

	// Outputs returns the ordered output ports.
	Outputs() []port.Port

	// Process advances the instance by exactly one scheduling step, using
	// the context as the authoritative timing source. The context is
	// borrowed for the duration of the call.
	Process(ctx *process.Context) error

	// UISchema returns the plugin's configuration schema, or nil when it
	// has none.
	UISchema() *schema.UISchema

	// Behavior returns the plugin's lifecycle capabilities.
	Behavior() behavior.PluginBehavior

	// ConnectionBehavior returns the plugin's connection-graph flags.
	ConnectionBehavior() behavior.ConnectionBehavior

	// OnInputAdded is invoked when the host extends the input set.
	OnInputAdded(name string) error

	// OnInputRemoved is invoked when the host shrinks the input set.
	OnInputRemoved(name string) error

	// SetInput pushes one scalar sample to a named input. An unknown name
	// is rejected with ErrUnknownInput and leaves state unchanged.
	SetInput(name string, value float64) error

	// Output returns the current scalar value of a named output. An
	// unknown name returns 0, never a value from a different output.
	Output(name string) float64
}

// Configurable is implemented by plugins that accept host-supplied
// configuration. ApplyConfig either applies the whole object or rejects it
// with an error, leaving previously applied configuration intact.
type Configurable interface {
	ApplyConfig(values map[string]any) error
}

// DeviceDriver is a plugin backed by an external device.
type DeviceDriver interface {
	Plugin
	Open() error
	Close() error
}

// ProcessingUnit is a plugin that transforms input samples into output
// samples.
type ProcessingUnit interface {
	Plugin
}

// EventLogger is a plugin that records events and can be flushed on demand.
type EventLogger interface {
	Plugin
	Flush() error
}
