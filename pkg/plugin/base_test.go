package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/behavior"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/port"
)

func newTestBase(t *testing.T) *Base {
	t.Helper()
	meta := Meta{Name: "mixer", FixedVars: []Var{NewVar("channels", 2)}}
	return NewBase(7, meta, []port.ID{"in_0", "in_1"}, []port.ID{"out"})
}

func portIDs(ports []port.Port) []port.ID {
	ids := make([]port.ID, len(ports))
	for i, p := range ports {
		ids[i] = p.ID
	}
	return ids
}

func TestBaseAccessors(t *testing.T) {
	b := newTestBase(t)

	assert.Equal(t, PluginID(7), b.ID())
	assert.Equal(t, "mixer", b.Meta().Name)
	assert.Equal(t, []port.ID{"in_0", "in_1"}, portIDs(b.Inputs()))
	assert.Equal(t, []port.ID{"out"}, portIDs(b.Outputs()))
	assert.Nil(t, b.UISchema())
	assert.Equal(t, behavior.DefaultPlugin(), b.Behavior())
	assert.Equal(t, behavior.DefaultConnection(), b.ConnectionBehavior())
}

func TestBaseInputLifecycle(t *testing.T) {
	b := newTestBase(t)

	require.NoError(t, b.OnInputAdded("in_2"))
	assert.Equal(t, []port.ID{"in_0", "in_1", "in_2"}, portIDs(b.Inputs()))

	require.NoError(t, b.OnInputRemoved("in_1"))
	assert.Equal(t, []port.ID{"in_0", "in_2"}, portIDs(b.Inputs()))

	err := b.OnInputAdded("in_0")
	require.ErrorIs(t, err, ErrProcessingFailed)

	err = b.OnInputRemoved("in_1")
	require.ErrorIs(t, err, ErrProcessingFailed)
	assert.Equal(t, []port.ID{"in_0", "in_2"}, portIDs(b.Inputs()))
}

func TestBaseSetInput(t *testing.T) {
	b := newTestBase(t)

	require.NoError(t, b.SetInput("in_0", 0.5))
	assert.Equal(t, 0.5, b.Input("in_0"))

	err := b.SetInput("ghost", 1.0)
	require.ErrorIs(t, err, ErrUnknownInput)
	assert.Contains(t, err.Error(), "ghost")
	assert.Equal(t, 0.5, b.Input("in_0"))
	assert.Zero(t, b.Input("ghost"))
}

func TestBaseRemovedInputNoLongerSettable(t *testing.T) {
	b := newTestBase(t)

	require.NoError(t, b.SetInput("in_1", 3.0))
	require.NoError(t, b.OnInputRemoved("in_1"))

	err := b.SetInput("in_1", 4.0)
	require.ErrorIs(t, err, ErrUnknownInput)
	assert.Zero(t, b.Input("in_1"))
}

func TestBaseOutputs(t *testing.T) {
	b := newTestBase(t)

	require.NoError(t, b.SetOutput("out", 2.5))
	assert.Equal(t, 2.5, b.Output("out"))

	err := b.SetOutput("missing", 1.0)
	require.ErrorIs(t, err, ErrUnknownOutput)

	// Unknown output queries report the zero sentinel, not an error.
	assert.Zero(t, b.Output("missing"))
}

func TestBaseInputsStartZeroed(t *testing.T) {
	b := newTestBase(t)
	assert.Zero(t, b.Input("in_0"))
	assert.Zero(t, b.Input("in_1"))
	assert.Zero(t, b.Output("out"))
}
