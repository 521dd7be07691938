package abi

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/debug"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/port"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/process"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/plugin"
)

var log = debug.New("abi")

// Factory constructs one plugin instance for the given identifier.
type Factory func(id plugin.PluginID) plugin.Plugin

type bindConfig struct {
	behavior bool
	uiSchema bool
}

// BindOption configures which optional capability slots a bound table
// populates.
type BindOption func(*bindConfig)

// WithBehavior populates the BehaviorJSON slot. Leave it off when the
// plugin keeps the default behavior; the host then falls back to defaults
// itself.
func WithBehavior() BindOption {
	return func(c *bindConfig) { c.behavior = true }
}

// WithUISchema populates the UISchemaJSON slot.
func WithUISchema() BindOption {
	return func(c *bindConfig) { c.uiSchema = true }
}

// Bind builds a capability table dispatching into instances produced by
// factory. A plugin module assigns the result to its exported APISymbol
// variable.
func Bind(factory Factory, opts ...BindOption) *API {
	var cfg bindConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	api := &API{
		Create: func(id uint64) Handle {
			p := factory(plugin.PluginID(id))
			if p == nil {
				// No recoverable error path exists at this boundary.
				log.Fatalf("create: factory returned no instance for plugin %d", id)
			}
			inst := &instance{
				id:   plugin.PluginID(id),
				plug: p,
				log:  log.WithField("plugin", id),
			}
			h := registerInstance(inst)
			inst.log.Debug("instance created")
			return h
		},

		Destroy: func(h Handle) {
			if inst := unregisterInstance(h); inst != nil {
				inst.log.Debug("instance destroyed")
			}
		},

		MetaJSON: func(h Handle) *String {
			inst := lookupInstance(h)
			if inst == nil {
				return nil
			}
			return encodeBuffer(inst, inst.plug.Meta())
		},

		InputsJSON: func(h Handle) *String {
			inst := lookupInstance(h)
			if inst == nil {
				return nil
			}
			return encodeBuffer(inst, nonNilPorts(inst.plug.Inputs()))
		},

		OutputsJSON: func(h Handle) *String {
			inst := lookupInstance(h)
			if inst == nil {
				return nil
			}
			return encodeBuffer(inst, nonNilPorts(inst.plug.Outputs()))
		},

		SetConfigJSON: func(h Handle, data []byte) {
			inst := lookupInstance(h)
			if inst == nil {
				return
			}
			applyConfig(inst, data)
		},

		SetInput: func(h Handle, name string, value float64) {
			inst := lookupInstance(h)
			if inst == nil {
				return
			}
			if err := inst.plug.SetInput(name, value); err != nil {
				inst.log.WithError(err).Debug("input rejected")
			}
		},

		Process: func(h Handle, tick uint64, periodSeconds float64) {
			inst := lookupInstance(h)
			if inst == nil {
				return
			}
			if inst.ticked && tick < inst.lastTick {
				inst.log.WithField("tick", tick).Warn("tick went backwards")
			}
			ctx := process.Context{Tick: tick, PeriodSeconds: periodSeconds}
			if err := inst.plug.Process(&ctx); err != nil {
				inst.log.WithError(err).WithField("tick", tick).Error("process failed")
			}
			inst.lastTick = tick
			inst.ticked = true
		},

		GetOutput: func(h Handle, name string) float64 {
			inst := lookupInstance(h)
			if inst == nil {
				return 0
			}
			return inst.plug.Output(name)
		},
	}

	if cfg.behavior {
		api.BehaviorJSON = func(h Handle) *String {
			inst := lookupInstance(h)
			if inst == nil {
				return nil
			}
			data, err := combinedBehaviorJSON(inst.plug)
			if err != nil {
				inst.log.WithError(err).Error("behavior encode failed")
				return nil
			}
			return FromOwnedBytes(data)
		}
	}

	if cfg.uiSchema {
		api.UISchemaJSON = func(h Handle) *String {
			inst := lookupInstance(h)
			if inst == nil {
				return nil
			}
			s := inst.plug.UISchema()
			if s == nil {
				return nil
			}
			return encodeBuffer(inst, s)
		}
	}

	return api
}

// encodeBuffer is one encode step: value to interchange text to transfer
// buffer. Encode failure yields the nil-buffer sentinel.
func encodeBuffer(inst *instance, v any) *String {
	data, err := json.Marshal(v)
	if err != nil {
		inst.log.WithError(err).Error("encode failed")
		return nil
	}
	return FromOwnedBytes(data)
}

func nonNilPorts(ports []port.Port) []port.Port {
	if ports == nil {
		return []port.Port{}
	}
	return ports
}

// applyConfig enforces atomic-or-rejected semantics: the payload is
// validated before the plugin sees any of it.
func applyConfig(inst *instance, data []byte) {
	if !gjson.ValidBytes(data) {
		inst.log.Warn("config rejected: malformed payload")
		return
	}
	if !gjson.ParseBytes(data).IsObject() {
		inst.log.Warn("config rejected: payload is not an object")
		return
	}
	c, ok := inst.plug.(plugin.Configurable)
	if !ok {
		inst.log.Debug("config ignored: plugin takes no configuration")
		return
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		inst.log.WithError(err).Warn("config rejected: undecodable payload")
		return
	}
	if err := c.ApplyConfig(values); err != nil {
		inst.log.WithError(err).Warn("config rejected by plugin")
	}
}

// combinedBehaviorJSON assembles the combined behavior query result.
func combinedBehaviorJSON(p plugin.Plugin) ([]byte, error) {
	raw, err := json.Marshal(p.Behavior())
	if err != nil {
		return nil, err
	}
	out, err := sjson.SetRawBytes([]byte(`{}`), "behavior", raw)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(out, "connection_dependent", p.ConnectionBehavior().Dependent)
}
