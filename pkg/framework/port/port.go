// Package port provides named input/output channels for plugins.
package port

import "fmt"

// ID names a single input or output channel. IDs are unique within the
// inputs (respectively outputs) of one plugin instance.
type ID string

// Port wraps a channel identifier.
type Port struct {
	ID ID `json:"id"`
}

// List is an ordered collection of ports. Insertion order is display order.
// Lists are mutated only through Add and Remove; callers get copies, never
// the backing slice.
type List struct {
	ports []Port
}

// NewList creates a list containing the given ports in order.
func NewList(ids ...ID) *List {
	l := &List{ports: make([]Port, 0, len(ids))}
	for _, id := range ids {
		l.ports = append(l.ports, Port{ID: id})
	}
	return l
}

// Add appends a port. Adding an ID that is already present is an error and
// leaves the list unchanged.
func (l *List) Add(id ID) error {
	if l.Contains(id) {
		return fmt.Errorf("port: duplicate id %q", id)
	}
	l.ports = append(l.ports, Port{ID: id})
	return nil
}

// Remove deletes the named port, preserving the order of the remaining
// ports. It reports whether the port was present.
func (l *List) Remove(id ID) bool {
	for i, p := range l.ports {
		if p.ID == id {
			l.ports = append(l.ports[:i], l.ports[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the named port is present.
func (l *List) Contains(id ID) bool {
	for _, p := range l.ports {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Ports returns the ports in order. The returned slice is a copy.
func (l *List) Ports() []Port {
	out := make([]Port, len(l.ports))
	copy(out, l.ports)
	return out
}

// Names returns the port IDs in order.
func (l *List) Names() []ID {
	out := make([]ID, len(l.ports))
	for i, p := range l.ports {
		out[i] = p.ID
	}
	return out
}

// Len returns the number of ports.
func (l *List) Len() int {
	return len(l.ports)
}
