// Package basename implements the BasenameRegistry component of spec
// §2.1/§4.1: the set of basenames a member is willing to sign against,
// grounded on original_source/epid/member/src/context.c's
// EpidRegisterBaseName (duplicate check, then delegate to an
// allowed-basenames set) and signbasic.c's IsBasenameAllowed gate before a
// name-based signature is produced.
package basename

import (
	"github.com/epid-go/member/epiderr"
)

// MaxEntries bounds the registry the way a fixed-size allocation would in
// the C SDK this is grounded on; spec §4.1 calls for rejecting further
// registration once the cap is hit rather than growing without bound.
const MaxEntries = 1000

// Registry is the set of basenames registered for name-based signing.
// The zero value is an empty registry capped at MaxEntries; NewWithCap
// lowers the cap to honor a caller's max_allowed_basenames configuration.
type Registry struct {
	names map[string]struct{}
	cap   int
}

// NewWithCap returns an empty registry that rejects registration past n
// entries (spec §4.9's max_allowed_basenames). n <= 0 falls back to
// MaxEntries.
func NewWithCap(n int) *Registry {
	if n <= 0 {
		n = MaxEntries
	}
	return &Registry{cap: n}
}

func (r *Registry) capacity() int {
	if r.cap <= 0 {
		return MaxEntries
	}
	return r.cap
}

// Register adds name to the registry. It rejects an empty name, a
// duplicate, and registration past capacity (spec §4.1, §8).
func (r *Registry) Register(name []byte) error {
	if len(name) == 0 {
		return epiderr.BadArgumentBasename
	}
	if r.names == nil {
		r.names = make(map[string]struct{})
	}
	key := string(name)
	if _, ok := r.names[key]; ok {
		return epiderr.Duplicate
	}
	if len(r.names) >= r.capacity() {
		return epiderr.BadArgument
	}
	r.names[key] = struct{}{}
	return nil
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name []byte) bool {
	if r.names == nil {
		return false
	}
	_, ok := r.names[string(name)]
	return ok
}

// Clear empties the registry (spec §4.1's "a member may forget every
// name it previously allowed and start over").
func (r *Registry) Clear() {
	r.names = nil
}

// Len returns the number of registered basenames.
func (r *Registry) Len() int {
	return len(r.names)
}
