package epidtypes

import (
	"github.com/epid-go/member/codec"
	"github.com/epid-go/member/epiderr"
	"github.com/epid-go/member/field"
)

// BasicSignatureSize is the fixed wire width of a BasicSignature (spec §6):
// B(64)+K(64)+T(64) + c(32)+sx(32)+sf(32)+sa(32)+sb(32) = 352.
const BasicSignatureSize = 3*field.G1Size + 5*field.FpSize

// BasicSignature is sigma0, the core EPID signature before any
// non-revoked proofs are appended (spec §3, §4.8).
type BasicSignature struct {
	B  field.G1
	K  field.G1
	T  field.G1
	C  field.Fp
	Sx field.Fp
	Sf field.Fp
	Sa field.Fp
	Sb field.Fp
}

func (s BasicSignature) Encode() [BasicSignatureSize]byte {
	var out [BasicSignatureSize]byte
	off := 0
	for _, g := range []field.G1{s.B, s.K, s.T} {
		b := g.Bytes()
		off += copy(out[off:], b[:])
	}
	for _, f := range []field.Fp{s.C, s.Sx, s.Sf, s.Sa, s.Sb} {
		b := f.Bytes()
		off += copy(out[off:], b[:])
	}
	return out
}

func DecodeBasicSignature(b [BasicSignatureSize]byte) (BasicSignature, error) {
	var s BasicSignature
	off := 0

	points := make([]*field.G1, 3)
	points[0], points[1], points[2] = &s.B, &s.K, &s.T
	for _, p := range points {
		var gb [field.G1Size]byte
		copy(gb[:], b[off:off+field.G1Size])
		off += field.G1Size
		g, err := field.G1FromBytes(gb)
		if err != nil {
			return BasicSignature{}, epiderr.BadArgumentSignature
		}
		*p = g
	}
	if s.B.IsIdentity() {
		return BasicSignature{}, epiderr.BadArgumentSignature
	}

	scalars := make([]*field.Fp, 5)
	scalars[0], scalars[1], scalars[2], scalars[3], scalars[4] = &s.C, &s.Sx, &s.Sf, &s.Sa, &s.Sb
	for _, p := range scalars {
		var fb [field.FpSize]byte
		copy(fb[:], b[off:off+field.FpSize])
		off += field.FpSize
		f, err := field.FpFromBytes(fb)
		if err != nil {
			return BasicSignature{}, epiderr.BadArgumentSignature
		}
		*p = f
	}
	return s, nil
}

// NrProofSize is the fixed wire width of an NrProof (spec §6):
// T(64) + c(32) + smu(32) + snu(32) = 160.
const NrProofSize = field.G1Size + 3*field.FpSize

// NrProof is one per-SigRL-entry non-revoked proof (spec §3, §4.8). T
// being the curve identity signals a revocation match; it is still a
// well-formed record on the wire.
type NrProof struct {
	T   field.G1
	C   field.Fp
	Smu field.Fp
	Snu field.Fp
}

func (p NrProof) Encode() [NrProofSize]byte {
	var out [NrProofSize]byte
	off := 0
	t := p.T.Bytes()
	off += copy(out[off:], t[:])
	for _, f := range []field.Fp{p.C, p.Smu, p.Snu} {
		b := f.Bytes()
		off += copy(out[off:], b[:])
	}
	return out
}

func DecodeNrProof(b [NrProofSize]byte) (NrProof, error) {
	var p NrProof
	off := 0

	var tb [field.G1Size]byte
	copy(tb[:], b[off:off+field.G1Size])
	off += field.G1Size
	t, err := field.G1FromBytes(tb)
	if err != nil {
		return NrProof{}, epiderr.BadArgument
	}
	p.T = t

	scalars := []*field.Fp{&p.C, &p.Smu, &p.Snu}
	for _, s := range scalars {
		var fb [field.FpSize]byte
		copy(fb[:], b[off:off+field.FpSize])
		off += field.FpSize
		f, err := field.FpFromBytes(fb)
		if err != nil {
			return NrProof{}, epiderr.BadArgument
		}
		*s = f
	}
	return p, nil
}

// EpidSignatureHeaderSize is the 8-byte (rl_ver, n2) header preceding a
// BasicSignature and its NrProof entries (spec §3, §6).
const EpidSignatureHeaderSize = 8

// EpidSignature is the full wire signature: a BasicSignature plus one
// NrProof per active SigRL entry (spec §3).
type EpidSignature struct {
	RlVer    uint32
	Sigma0   BasicSignature
	NrProofs []NrProof
}

// Size returns the exact encoded length, per spec §4.8's "sign entry
// point ... MUST reject any length other than this exact value".
func (s EpidSignature) Size() int {
	return EpidSignatureHeaderSize + BasicSignatureSize + len(s.NrProofs)*NrProofSize
}

func (s EpidSignature) Encode() []byte {
	out := make([]byte, s.Size())
	off := 0
	codec.PutUint32(out[off:], s.RlVer)
	off += 4
	codec.PutUint32(out[off:], uint32(len(s.NrProofs)))
	off += 4
	sig := s.Sigma0.Encode()
	off += copy(out[off:], sig[:])
	for _, nr := range s.NrProofs {
		b := nr.Encode()
		off += copy(out[off:], b[:])
	}
	return out
}

// DecodeEpidSignature parses a full EpidSignature. It returns
// epiderr.BadArgumentSignature if buf's length does not exactly match
// the length implied by its own header, per spec §4.8.
func DecodeEpidSignature(buf []byte) (EpidSignature, error) {
	if len(buf) < EpidSignatureHeaderSize+BasicSignatureSize {
		return EpidSignature{}, epiderr.BadArgumentSignature
	}
	rlVer := codec.Uint32(buf[0:4])
	n2 := codec.Uint32(buf[4:8])

	expected := EpidSignatureHeaderSize + BasicSignatureSize + int(n2)*NrProofSize
	if len(buf) != expected {
		return EpidSignature{}, epiderr.BadArgumentSignature
	}

	off := EpidSignatureHeaderSize
	var sigArr [BasicSignatureSize]byte
	copy(sigArr[:], buf[off:off+BasicSignatureSize])
	off += BasicSignatureSize
	sigma0, err := DecodeBasicSignature(sigArr)
	if err != nil {
		return EpidSignature{}, err
	}

	proofs := make([]NrProof, n2)
	for i := uint32(0); i < n2; i++ {
		var pb [NrProofSize]byte
		copy(pb[:], buf[off:off+NrProofSize])
		off += NrProofSize
		p, err := DecodeNrProof(pb)
		if err != nil {
			return EpidSignature{}, err
		}
		proofs[i] = p
	}

	return EpidSignature{RlVer: rlVer, Sigma0: sigma0, NrProofs: proofs}, nil
}
