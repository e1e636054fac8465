// Package nvslot implements the NV slot external collaborator of spec
// §5/§9: a process-wide, index-keyed byte store a member context can use
// to persist GroupPubKey‖MembershipCredential across restarts.
//
// Grounded on original_source/epid/member/src/context.c's
// EpidNVReadXX/EpidNVWriteXX call sites, which treat the NV slot purely
// as an opaque byte sink/source the member never inspects, and on spec
// §9's explicit instruction to "model it as an explicit external
// collaborator trait with define/undefine/read/write methods".
package nvslot

import (
	"github.com/epid-go/member/epiderr"
)

// Store is the NV slot collaborator interface. A real deployment might
// back this with a TPM NV index or a sealed file; tests and the in-memory
// default back it with a map.
type Store interface {
	// Define allocates size bytes at index. Defining an already-defined
	// index is an error; the caller must Undefine first.
	Define(index uint32, size int) error
	// Undefine releases index. Undefining an index that was never
	// defined is a no-op.
	Undefine(index uint32)
	// Write stores data at index, which must already be defined and
	// exactly data's length wide. Write-after-write at the same index is
	// allowed (spec §9).
	Write(index uint32, data []byte) error
	// Read returns the bytes stored at index. It fails if index was
	// never defined or was defined but never written.
	Read(index uint32) ([]byte, error)
}

type slot struct {
	size    int
	written bool
	data    []byte
}

// Memory is the in-process default Store: a single process keeps its
// slots in ordinary Go memory rather than a true OS-level global, per
// spec §9's "the in-process back-end can hold its storage in
// caller-provided state rather than a true global".
type Memory struct {
	slots map[uint32]*slot
}

// NewMemory returns an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[uint32]*slot)}
}

func (m *Memory) Define(index uint32, size int) error {
	if size <= 0 {
		return epiderr.BadArgument
	}
	if _, exists := m.slots[index]; exists {
		return epiderr.Duplicate
	}
	m.slots[index] = &slot{size: size}
	return nil
}

func (m *Memory) Undefine(index uint32) {
	delete(m.slots, index)
}

func (m *Memory) Write(index uint32, data []byte) error {
	s, exists := m.slots[index]
	if !exists {
		return epiderr.BadArgument
	}
	if len(data) != s.size {
		return epiderr.BadArgument
	}
	s.data = append([]byte(nil), data...)
	s.written = true
	return nil
}

func (m *Memory) Read(index uint32) ([]byte, error) {
	s, exists := m.slots[index]
	if !exists || !s.written {
		return nil, epiderr.BadArgument
	}
	return append([]byte(nil), s.data...), nil
}
