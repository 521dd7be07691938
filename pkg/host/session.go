// Package host provides a typed, host-side binding over a plugin
// capability table. It decodes boundary JSON into contract values and keeps
// the transfer-buffer release discipline in one place; plugin discovery and
// module loading stay with the embedding application.
package host

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rtsyn-dev/rtsyn-plugin/pkg/abi"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/framework/debug"
	"github.com/rtsyn-dev/rtsyn-plugin/pkg/plugin"
)

// Session drives instances of one plugin type through its capability table.
// Instance identifiers are unique within a session and never reused while
// the instance they name is alive.
type Session struct {
	id  uuid.UUID
	api *abi.API
	log *logrus.Entry

	mu        sync.Mutex
	instances map[plugin.PluginID]*Instance
}

// NewSession validates the table's mandatory slots and wraps it. A table
// with a missing mandatory slot is rejected; optional slots may be nil.
func NewSession(api *abi.API) (*Session, error) {
	if api == nil {
		return nil, fmt.Errorf("host: nil capability table")
	}
	missing := ""
	switch {
	case api.Create == nil:
		missing = "create"
	case api.Destroy == nil:
		missing = "destroy"
	case api.MetaJSON == nil:
		missing = "meta_json"
	case api.InputsJSON == nil:
		missing = "inputs_json"
	case api.OutputsJSON == nil:
		missing = "outputs_json"
	case api.SetConfigJSON == nil:
		missing = "set_config_json"
	case api.SetInput == nil:
		missing = "set_input"
	case api.Process == nil:
		missing = "process"
	case api.GetOutput == nil:
		missing = "get_output"
	}
	if missing != "" {
		return nil, fmt.Errorf("host: capability table missing mandatory slot %s", missing)
	}

	id := uuid.New()
	return &Session{
		id:        id,
		api:       api,
		log:       debug.New("host").WithField("session", id.String()),
		instances: make(map[plugin.PluginID]*Instance),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Create obtains a new instance with the given identifier. Reusing a live
// identifier within the session is an error.
func (s *Session) Create(id plugin.PluginID) (*Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, live := s.instances[id]; live {
		return nil, fmt.Errorf("host: plugin id %d is still alive in this session", id)
	}
	h := s.api.Create(uint64(id))
	if h == 0 {
		return nil, fmt.Errorf("host: create returned an invalid handle for plugin %d", id)
	}
	inst := &Instance{
		session: s,
		id:      id,
		handle:  h,
		log:     s.log.WithField("plugin", id),
	}
	s.instances[id] = inst
	inst.log.Debug("instance created")
	return inst, nil
}

// Close destroys every live instance in the session.
func (s *Session) Close() {
	s.mu.Lock()
	live := make([]*Instance, 0, len(s.instances))
	for _, inst := range s.instances {
		live = append(live, inst)
	}
	s.mu.Unlock()

	for _, inst := range live {
		inst.Close()
	}
}

func (s *Session) forget(id plugin.PluginID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.instances, id)
}
