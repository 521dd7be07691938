package abi

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rtsyn-dev/rtsyn-plugin/pkg/plugin"
)

// Handle is the opaque reference to one live plugin instance, usable only
// through the capability table. Created by the table's Create, invalidated
// by Destroy; use after Destroy is undefined and is not guarded against.
// Zero is never a valid handle.
type Handle uintptr

// instance is the boundary-side state for one live plugin.
type instance struct {
	id       plugin.PluginID
	plug     plugin.Plugin
	lastTick uint64
	ticked   bool
	log      *logrus.Entry
}

var (
	instancesMu sync.RWMutex
	instances   = make(map[Handle]*instance)
	nextHandle  Handle = 1
)

func registerInstance(inst *instance) Handle {
	instancesMu.Lock()
	defer instancesMu.Unlock()

	h := nextHandle
	nextHandle++
	instances[h] = inst
	return h
}

func lookupInstance(h Handle) *instance {
	instancesMu.RLock()
	defer instancesMu.RUnlock()

	return instances[h]
}

func unregisterInstance(h Handle) *instance {
	instancesMu.Lock()
	defer instancesMu.Unlock()

	inst := instances[h]
	delete(instances, h)
	return inst
}
