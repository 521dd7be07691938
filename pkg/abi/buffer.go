package abi

import (
	"strings"
	"unsafe"
)

// noCopy flags String to go vet's copylocks check. A copied wrapper would
// alias the backing storage and break the single-release contract.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// String is an owned byte buffer handed across the plugin boundary. It
// carries the pointer, length and capacity of its backing storage; exactly
// one side owns it at any time, and the receiver must call Release exactly
// once. A nil pointer denotes "no buffer"; releasing it is a no-op.
//
// Release is the only sanctioned destructor. Do not copy a String: copies
// alias the same storage and each copy would claim the single release.
type String struct {
	noCopy noCopy

	ptr *byte
	len int
	cap int
}

// FromOwnedBytes takes exclusive ownership of a byte slice and packages it
// for the boundary without copying. The caller must not touch the slice
// afterwards; its pointer, length and capacity now belong to the buffer.
func FromOwnedBytes(b []byte) *String {
	return &String{ptr: unsafe.SliceData(b), len: len(b), cap: cap(b)}
}

// FromOwnedString packages a string's bytes for the boundary.
func FromOwnedString(s string) *String {
	return FromOwnedBytes([]byte(s))
}

// IsNil reports whether this is the "no buffer" sentinel.
func (s *String) IsNil() bool {
	return s == nil || s.ptr == nil
}

// Len returns the number of valid bytes. Readers must not assume cap == len.
func (s *String) Len() int {
	if s == nil {
		return 0
	}
	return s.len
}

// Cap returns the capacity of the backing storage.
func (s *String) Cap() int {
	if s == nil {
		return 0
	}
	return s.cap
}

// IntoString reconstructs an owned string from the buffer and releases it.
// Bytes that are not valid UTF-8 are decoded lossily; the call never fails.
// Boundary-internal: the far side of the boundary only ever sees Release.
func (s *String) IntoString() string {
	if s.IsNil() {
		return ""
	}
	out := strings.ToValidUTF8(string(unsafe.Slice(s.ptr, s.len)), "�")
	s.Release()
	return out
}

// Release reclaims the buffer. Releasing the nil sentinel is a no-op; the
// same wrapper may be released again only because Release nulls the pointer,
// turning later calls into sentinel no-ops. Releasing two copies of one
// wrapper is a double-release and is undefined.
func (s *String) Release() {
	if s.IsNil() {
		return
	}
	s.ptr = nil
	s.len = 0
	s.cap = 0
}
