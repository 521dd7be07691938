package plugin

import (
	"fmt"

	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/behavior"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/port"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/schema"
)

// Base carries the contract's default method bodies and the port and sample
// bookkeeping every plugin needs. Embed it and implement Process.
//
// Base does no locking: the contract confines each instance to one caller
// at a time.
type Base struct {
	id   PluginID
	meta Meta

	inputs  *port.List
	outputs *port.List

	inValues  map[port.ID]float64
	outValues map[port.ID]float64
}

// NewBase creates the common plugin state with the given ports in order.
func NewBase(id PluginID, meta Meta, inputs, outputs []port.ID) *Base {
	b := &Base{
		id:        id,
		meta:      meta,
		inputs:    port.NewList(inputs...),
		outputs:   port.NewList(outputs...),
		inValues:  make(map[port.ID]float64, len(inputs)),
		outValues: make(map[port.ID]float64, len(outputs)),
	}
	for _, id := range inputs {
		b.inValues[id] = 0
	}
	for _, id := range outputs {
		b.outValues[id] = 0
	}
	return b
}

// ID returns the instance identifier.
func (b *Base) ID() PluginID { return b.id }

// Meta returns the descriptive record.
func (b *Base) Meta() *Meta { return &b.meta }

// Inputs returns the ordered input ports.
func (b *Base) Inputs() []port.Port { return b.inputs.Ports() }

// Outputs returns the ordered output ports.
func (b *Base) Outputs() []port.Port { return b.outputs.Ports() }

// UISchema returns nil: no configuration schema by default.
func (b *Base) UISchema() *schema.UISchema { return nil }

// Behavior returns the documented defaults.
func (b *Base) Behavior() behavior.PluginBehavior { return behavior.DefaultPlugin() }

// ConnectionBehavior returns the documented default.
func (b *Base) ConnectionBehavior() behavior.ConnectionBehavior {
	return behavior.DefaultConnection()
}

// OnInputAdded appends a named input with a zero current value.
func (b *Base) OnInputAdded(name string) error {
	id := port.ID(name)
	if err := b.inputs.Add(id); err != nil {
		return fmt.Errorf("%w: add input %q: %v", ErrProcessingFailed, name, err)
	}
	b.inValues[id] = 0
	return nil
}

// OnInputRemoved removes a named input, preserving the order of the rest.
func (b *Base) OnInputRemoved(name string) error {
	id := port.ID(name)
	if !b.inputs.Remove(id) {
		return fmt.Errorf("%w: remove input %q: not present", ErrProcessingFailed, name)
	}
	delete(b.inValues, id)
	return nil
}

// SetInput stores one scalar sample. Unknown names are rejected and leave
// state unchanged.
func (b *Base) SetInput(name string, value float64) error {
	id := port.ID(name)
	if !b.inputs.Contains(id) {
		return fmt.Errorf("%w: %q", ErrUnknownInput, name)
	}
	b.inValues[id] = value
	return nil
}

// Input returns the current value of a named input, 0 when unknown.
func (b *Base) Input(name string) float64 {
	return b.inValues[port.ID(name)]
}

// SetOutput stores one scalar result for later Output queries. Unknown
// names are rejected.
func (b *Base) SetOutput(name string, value float64) error {
	id := port.ID(name)
	if !b.outputs.Contains(id) {
		return fmt.Errorf("%w: %q", ErrUnknownOutput, name)
	}
	b.outValues[id] = value
	return nil
}

// Output returns the current value of a named output. Unknown names return
// the 0 sentinel; this query has no error channel across the boundary.
func (b *Base) Output(name string) float64 {
	return b.outValues[port.ID(name)]
}
