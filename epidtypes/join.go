package epidtypes

import (
	"github.com/epid-go/member/epiderr"
	"github.com/epid-go/member/field"
)

// IssuerNonceSize is the fixed wire width of an IssuerNonce (spec §6).
const IssuerNonceSize = 32

// IssuerNonce is the opaque, single-use nonce an issuer supplies for a
// join (spec §3).
type IssuerNonce [IssuerNonceSize]byte

// JoinRequestSize is the fixed wire width of a JoinRequest (spec §6):
// F(64) + c(32) + s(32).
const JoinRequestSize = field.G1Size + field.FpSize + field.FpSize

// JoinRequest is the Sigma-protocol proof of knowledge of f emitted by
// JoinProtocol (spec §3, §4.7).
type JoinRequest struct {
	F field.G1
	C field.Fp
	S field.Fp
}

func (r JoinRequest) Encode() [JoinRequestSize]byte {
	var out [JoinRequestSize]byte
	off := 0
	f := r.F.Bytes()
	off += copy(out[off:], f[:])
	c := r.C.Bytes()
	off += copy(out[off:], c[:])
	s := r.S.Bytes()
	copy(out[off:], s[:])
	return out
}

func DecodeJoinRequest(b [JoinRequestSize]byte) (JoinRequest, error) {
	var r JoinRequest
	off := 0

	var fb [field.G1Size]byte
	copy(fb[:], b[off:off+field.G1Size])
	off += field.G1Size
	f, err := field.G1FromBytes(fb)
	if err != nil {
		return JoinRequest{}, epiderr.BadArgument
	}

	var cb [field.FpSize]byte
	copy(cb[:], b[off:off+field.FpSize])
	off += field.FpSize
	c, err := field.FpFromBytes(cb)
	if err != nil {
		return JoinRequest{}, epiderr.BadArgument
	}

	var sb [field.FpSize]byte
	copy(sb[:], b[off:off+field.FpSize])
	s, err := field.FpFromBytes(sb)
	if err != nil {
		return JoinRequest{}, epiderr.BadArgument
	}

	r.F, r.C, r.S = f, c, s
	return r, nil
}
