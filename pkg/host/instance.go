package host

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rtsyn-dev/rtsyn-plugin/pkg/abi"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/behavior"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/port"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/schema"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/plugin"
)

// BehaviorInfo is the decoded combined behavior query result.
type BehaviorInfo struct {
	Behavior            behavior.PluginBehavior `json:"behavior"`
	ConnectionDependent bool                    `json:"connection_dependent"`
}

// Instance is one live plugin driven through the session's capability
// table. It owns the monotonic tick counter for the instance; drive it from
// a single goroutine, matching the boundary's calling discipline.
type Instance struct {
	session *Session
	id      plugin.PluginID
	handle  abi.Handle
	log     *logrus.Entry

	tick   uint64
	closed bool
}

// ID returns the instance identifier.
func (i *Instance) ID() plugin.PluginID {
	return i.id
}

// decode drains a transfer buffer into v, releasing the buffer exactly
// once.
func decode(buf *abi.String, what string, v any) error {
	if buf.IsNil() {
		return fmt.Errorf("host: %s unavailable", what)
	}
	if err := json.Unmarshal([]byte(buf.IntoString()), v); err != nil {
		return fmt.Errorf("host: decode %s: %w", what, err)
	}
	return nil
}

// Meta returns the plugin's descriptive record.
func (i *Instance) Meta() (*plugin.Meta, error) {
	var m plugin.Meta
	if err := decode(i.session.api.MetaJSON(i.handle), "meta", &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Inputs returns the ordered input ports.
func (i *Instance) Inputs() ([]port.Port, error) {
	var ports []port.Port
	if err := decode(i.session.api.InputsJSON(i.handle), "inputs", &ports); err != nil {
		return nil, err
	}
	return ports, nil
}

// Outputs returns the ordered output ports.
func (i *Instance) Outputs() ([]port.Port, error) {
	var ports []port.Port
	if err := decode(i.session.api.OutputsJSON(i.handle), "outputs", &ports); err != nil {
		return nil, err
	}
	return ports, nil
}

// Behavior returns the plugin's declared behavior. ok is false when the
// plugin does not populate the optional slot; callers then fall back to the
// documented defaults.
func (i *Instance) Behavior() (info *BehaviorInfo, ok bool, err error) {
	if i.session.api.BehaviorJSON == nil {
		return nil, false, nil
	}
	var b BehaviorInfo
	if err := decode(i.session.api.BehaviorJSON(i.handle), "behavior", &b); err != nil {
		return nil, true, err
	}
	return &b, true, nil
}

// Schema returns the plugin's configuration schema. ok is false when the
// plugin does not populate the optional slot or reports no schema.
func (i *Instance) Schema() (s *schema.UISchema, ok bool, err error) {
	if i.session.api.UISchemaJSON == nil {
		return nil, false, nil
	}
	buf := i.session.api.UISchemaJSON(i.handle)
	if buf.IsNil() {
		return nil, false, nil
	}
	var out schema.UISchema
	if err := decode(buf, "schema", &out); err != nil {
		return nil, true, err
	}
	return &out, true, nil
}

// SetConfig applies a configuration object to the instance.
func (i *Instance) SetConfig(values map[string]any) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("host: encode config: %w", err)
	}
	i.session.api.SetConfigJSON(i.handle, data)
	return nil
}

// SetInput pushes one scalar sample to a named input.
func (i *Instance) SetInput(name string, value float64) {
	i.session.api.SetInput(i.handle, name, value)
}

// Tick advances the instance by one scheduling step. The instance observes
// the session's tick counter, which only ever grows.
func (i *Instance) Tick(period time.Duration) {
	i.session.api.Process(i.handle, i.tick, period.Seconds())
	i.tick++
}

// Output returns the current value of a named output, 0 for unknown names.
func (i *Instance) Output(name string) float64 {
	return i.session.api.GetOutput(i.handle, name)
}

// Close destroys the instance. The wrapper must not be used afterwards;
// closing twice is a no-op.
func (i *Instance) Close() {
	if i.closed {
		return
	}
	i.closed = true
	i.session.api.Destroy(i.handle)
	i.session.forget(i.id)
	i.log.Debug("instance destroyed")
}
