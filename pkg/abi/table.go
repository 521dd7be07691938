// Package abi is the plugin boundary layer: the transfer buffer that moves
// owned bytes across it, the opaque handle and capability table a host
// dispatches through, and the adapter functions that marshal between the
// typed world and the boundary.
//
// The boundary has no structured error channel. Operations that can fail
// either return the nil-buffer sentinel (encode failure), a documented
// scalar sentinel (unknown output name), or are process-fatal (allocation
// failure in Create). Diagnostic detail stays on the in-process side.
package abi

// APISymbol is the well-known exported symbol name by which a host locates
// a plugin module's capability table.
const APISymbol = "RTSynPluginAPI"

// API is the capability table for one plugin type: a fixed-order record of
// functions through which a host creates, destroys, configures, drives and
// queries instances without knowing their concrete type.
//
// The first nine slots are mandatory. BehaviorJSON and UISchemaJSON are
// optional: a nil slot is the explicit absent sentinel, and callers must
// check it before invoking.
//
// One caller at a time drives a given handle; concurrent calls into the
// same handle are undefined. Different handles are independent.
type API struct {
	// Create allocates a new instance and returns its handle. Allocation
	// failure is process-fatal; there is no recoverable error path here.
	Create func(id uint64) Handle

	// Destroy releases everything the instance owns and invalidates the
	// handle. The caller must not use the handle afterwards.
	Destroy func(h Handle)

	// MetaJSON returns the instance's metadata as interchange-format text
	// in a transfer buffer the caller must release. Nil on encode failure.
	MetaJSON func(h Handle) *String

	// InputsJSON returns the ordered input ports as interchange text.
	InputsJSON func(h Handle) *String

	// OutputsJSON returns the ordered output ports as interchange text.
	OutputsJSON func(h Handle) *String

	// SetConfigJSON applies a serialized configuration object. Malformed
	// or unrecognized input is rejected without corrupting previously
	// applied configuration.
	SetConfigJSON func(h Handle, data []byte)

	// SetInput pushes one scalar sample by input name. Unknown names leave
	// instance state unchanged.
	SetInput func(h Handle, name string, value float64)

	// Process advances the instance by one scheduling step. tick and
	// periodSeconds are the authoritative timing source for the call.
	Process func(h Handle, tick uint64, periodSeconds float64)

	// GetOutput returns the current value of a named output, 0 when the
	// name is unknown.
	GetOutput func(h Handle, name string) float64

	// BehaviorJSON, when present, returns the combined behavior query
	// result {"behavior":...,"connection_dependent":...}.
	BehaviorJSON func(h Handle) *String

	// UISchemaJSON, when present, returns the configuration schema.
	UISchemaJSON func(h Handle) *String
}
