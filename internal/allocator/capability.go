package allocator

import "strings"

// Capability is a single feature an allocator may offer for a handle.
type Capability uint8

const (
	// Reallocate allows a handle to be resized through Allocator.Reallocate.
	Reallocate Capability = 1 << iota
	// Zeroed guarantees freshly allocated words read as zero.
	Zeroed
	// LeakCheck tracks the handle so Allocator.Close can report it if it
	// was never released.
	LeakCheck
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{Reallocate, "reallocate"},
	{Zeroed, "zeroed"},
	{LeakCheck, "leak-check"},
}

// String returns the lower-case name of the capability.
func (c Capability) String() string {
	for _, n := range capabilityNames {
		if n.c == c {
			return n.name
		}
	}
	return "unknown"
}

// Capabilities is a set of Capability values.
type Capabilities uint8

// Caps builds a set from individual capabilities.
func Caps(cs ...Capability) Capabilities {
	var s Capabilities
	for _, c := range cs {
		s |= Capabilities(c)
	}
	return s
}

// Has reports whether c is in the set.
func (s Capabilities) Has(c Capability) bool { return s&Capabilities(c) != 0 }

// Contains reports whether every member of o is also in s.
func (s Capabilities) Contains(o Capabilities) bool { return s&o == o }

// With returns a copy of s extended with cs.
func (s Capabilities) With(cs ...Capability) Capabilities { return s | Caps(cs...) }

// Without returns a copy of s with cs removed.
func (s Capabilities) Without(cs ...Capability) Capabilities { return s &^ Caps(cs...) }

// String renders the set as names joined by '|', or "none".
func (s Capabilities) String() string {
	var parts []string
	for _, n := range capabilityNames {
		if s.Has(n.c) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
