package epidtypes

import (
	"github.com/epid-go/member/codec"
	"github.com/epid-go/member/epiderr"
	"github.com/epid-go/member/field"
)

// SigRLEntrySize is the fixed wire width of one SigRL entry (spec §6):
// B_i(64) + K_i(64) = 128.
const SigRLEntrySize = 2 * field.G1Size

// SigRLEntry is one (B_i, K_i) pair a signer must prove not to match
// (spec §3, GLOSSARY).
type SigRLEntry struct {
	B field.G1
	K field.G1
}

// SigRLHeaderSize is the fixed wire width of a SigRL's header (spec §6):
// gid(16) + version(4) + n2(4) = 24.
const SigRLHeaderSize = GroupIDSize + 4 + 4

// SigRL is a signature-based revocation list. It is always a borrow in
// this package (spec §3: "Borrowed, never copied; caller guarantees
// lifetime") — member code stores a *SigRL, never a value, and never
// mutates it.
type SigRL struct {
	Gid     GroupID
	Version uint32
	Entries []SigRLEntry
}

func (r *SigRL) N2() uint32 { return uint32(len(r.Entries)) }

// Encode is provided for completeness/tests (the core only ever receives
// a SigRL, it never has to emit one — that is the issuer's job).
func (r *SigRL) Encode() []byte {
	out := make([]byte, SigRLHeaderSize+len(r.Entries)*SigRLEntrySize)
	off := copy(out, r.Gid[:])
	codec.PutUint32(out[off:], r.Version)
	off += 4
	codec.PutUint32(out[off:], r.N2())
	off += 4
	for _, e := range r.Entries {
		b := e.B.Bytes()
		off += copy(out[off:], b[:])
		k := e.K.Bytes()
		off += copy(out[off:], k[:])
	}
	return out
}

func DecodeSigRL(buf []byte) (*SigRL, error) {
	if len(buf) < SigRLHeaderSize {
		return nil, epiderr.BadArgumentSigRl
	}
	var r SigRL
	off := copy(r.Gid[:], buf[:GroupIDSize])
	r.Version = codec.Uint32(buf[off : off+4])
	off += 4
	n2 := codec.Uint32(buf[off : off+4])
	off += 4

	if len(buf) != SigRLHeaderSize+int(n2)*SigRLEntrySize {
		return nil, epiderr.BadArgumentSigRl
	}

	r.Entries = make([]SigRLEntry, n2)
	for i := uint32(0); i < n2; i++ {
		var bb, kb [field.G1Size]byte
		copy(bb[:], buf[off:off+field.G1Size])
		off += field.G1Size
		copy(kb[:], buf[off:off+field.G1Size])
		off += field.G1Size

		b, err := field.G1FromBytes(bb)
		if err != nil {
			return nil, epiderr.BadArgumentRlEntry
		}
		k, err := field.G1FromBytes(kb)
		if err != nil {
			return nil, epiderr.BadArgumentRlEntry
		}
		r.Entries[i] = SigRLEntry{B: b, K: k}
	}
	return &r, nil
}
