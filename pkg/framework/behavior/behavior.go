// Package behavior declares what a plugin supports, as small value types
// with a stable JSON encoding. The host is the sole interpreter of these
// flags; this package only guarantees defaults and round-trippable wire
// shapes.
package behavior

import (
	"encoding/json"
	"fmt"
)

// PluginBehavior declares a plugin's lifecycle capabilities.
type PluginBehavior struct {
	SupportsStartStop bool             `json:"supports_start_stop"`
	SupportsRestart   bool             `json:"supports_restart"`
	ExtendableInputs  ExtendableInputs `json:"extendable_inputs"`
	LoadsStarted      bool             `json:"loads_started"`
}

// DefaultPlugin returns the documented defaults: start/stop and restart
// supported, no dynamic inputs, loads started.
func DefaultPlugin() PluginBehavior {
	return PluginBehavior{
		SupportsStartStop: true,
		SupportsRestart:   true,
		ExtendableInputs:  NoExtendableInputs(),
		LoadsStarted:      true,
	}
}

// ExtendableKind discriminates how a plugin's input set may grow.
type ExtendableKind string

const (
	// ExtendableNone means the input set is fixed.
	ExtendableNone ExtendableKind = "none"
	// ExtendableManual means the host may add and remove named inputs
	// through the lifecycle hooks.
	ExtendableManual ExtendableKind = "manual"
	// ExtendableAuto means the plugin derives new input names from a
	// template pattern when extension is triggered.
	ExtendableAuto ExtendableKind = "auto"
)

// ExtendableInputs describes dynamic input extension. Pattern is meaningful
// only for the auto kind, where it is a template such as "in_{}".
type ExtendableInputs struct {
	Kind    ExtendableKind
	Pattern string
}

// NoExtendableInputs returns the fixed-input-set variant.
func NoExtendableInputs() ExtendableInputs {
	return ExtendableInputs{Kind: ExtendableNone}
}

// ManualInputs returns the host-managed variant.
func ManualInputs() ExtendableInputs {
	return ExtendableInputs{Kind: ExtendableManual}
}

// AutoInputs returns the pattern-derived variant.
func AutoInputs(pattern string) ExtendableInputs {
	return ExtendableInputs{Kind: ExtendableAuto, Pattern: pattern}
}

type extendableJSON struct {
	Type    ExtendableKind `json:"type"`
	Pattern string         `json:"pattern,omitempty"`
}

// MarshalJSON encodes the variant as a tagged object. The pattern field
// appears only for the auto kind.
func (e ExtendableInputs) MarshalJSON() ([]byte, error) {
	out := extendableJSON{Type: e.Kind}
	if e.Kind == ExtendableAuto {
		out.Pattern = e.Pattern
	}
	switch e.Kind {
	case ExtendableNone, ExtendableManual, ExtendableAuto:
		return json.Marshal(out)
	}
	return nil, fmt.Errorf("behavior: unknown extendable-inputs kind %q", e.Kind)
}

// UnmarshalJSON decodes the tagged object, rejecting unknown kinds.
func (e *ExtendableInputs) UnmarshalJSON(data []byte) error {
	var raw extendableJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case ExtendableNone, ExtendableManual:
		*e = ExtendableInputs{Kind: raw.Type}
	case ExtendableAuto:
		*e = ExtendableInputs{Kind: ExtendableAuto, Pattern: raw.Pattern}
	default:
		return fmt.Errorf("behavior: unknown extendable-inputs kind %q", raw.Type)
	}
	return nil
}

// ConnectionBehavior declares whether a plugin's validity depends on having
// an upstream connection. The host's connection-graph validation consumes
// it.
type ConnectionBehavior struct {
	Dependent bool `json:"dependent"`
}

// DefaultConnection returns the documented default: not dependent.
func DefaultConnection() ConnectionBehavior {
	return ConnectionBehavior{Dependent: false}
}

// DisplaySchema names which outputs, inputs and variables a host should
// surface in its display layer.
type DisplaySchema struct {
	Outputs   []string `json:"outputs"`
	Inputs    []string `json:"inputs"`
	Variables []string `json:"variables"`
}
