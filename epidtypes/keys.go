package epidtypes

import (
	"github.com/epid-go/member/epiderr"
	"github.com/epid-go/member/field"
)

// GroupPubKeySize is the fixed wire width of a GroupPubKey (spec §6):
// gid(16) + h1(64) + h2(64) + w(128).
const GroupPubKeySize = GroupIDSize + field.G1Size + field.G1Size + field.G2Size

// GroupPubKey is the group's public key (spec §3).
type GroupPubKey struct {
	Gid GroupID
	H1  field.G1
	H2  field.G1
	W   field.G2
}

// Encode serializes the key to its fixed-width wire form.
func (k GroupPubKey) Encode() [GroupPubKeySize]byte {
	var out [GroupPubKeySize]byte
	off := 0
	off += copy(out[off:], k.Gid[:])
	h1 := k.H1.Bytes()
	off += copy(out[off:], h1[:])
	h2 := k.H2.Bytes()
	off += copy(out[off:], h2[:])
	w := k.W.Bytes()
	copy(out[off:], w[:])
	return out
}

// DecodeGroupPubKey parses and validates a GroupPubKey: h1 and h2 must be
// non-identity points of G1, w must be a valid G2 point (spec §3).
func DecodeGroupPubKey(b [GroupPubKeySize]byte) (GroupPubKey, error) {
	var k GroupPubKey
	off := 0
	copy(k.Gid[:], b[off:off+GroupIDSize])
	off += GroupIDSize

	var h1b [field.G1Size]byte
	copy(h1b[:], b[off:off+field.G1Size])
	off += field.G1Size
	h1, err := field.G1FromBytes(h1b)
	if err != nil {
		return GroupPubKey{}, epiderr.BadArgumentGroupPubKey
	}
	if h1.IsIdentity() {
		return GroupPubKey{}, epiderr.BadArgumentGroupPubKey
	}

	var h2b [field.G1Size]byte
	copy(h2b[:], b[off:off+field.G1Size])
	off += field.G1Size
	h2, err := field.G1FromBytes(h2b)
	if err != nil {
		return GroupPubKey{}, epiderr.BadArgumentGroupPubKey
	}
	if h2.IsIdentity() {
		return GroupPubKey{}, epiderr.BadArgumentGroupPubKey
	}

	var wb [field.G2Size]byte
	copy(wb[:], b[off:off+field.G2Size])
	w, err := field.G2FromBytes(wb)
	if err != nil {
		return GroupPubKey{}, epiderr.BadArgumentGroupPubKey
	}

	k.H1, k.H2, k.W = h1, h2, w
	return k, nil
}

// PrivKeySize is the fixed wire width of a PrivKey (spec §6):
// gid(16) + A(64) + x(32) + f(32).
const PrivKeySize = GroupIDSize + field.G1Size + field.FpSize + field.FpSize

// PrivKey is a member's full, uncompressed private key (spec §3).
type PrivKey struct {
	Gid GroupID
	A   field.G1
	X   field.Fp
	F   field.Fp
}

func (k PrivKey) Encode() [PrivKeySize]byte {
	var out [PrivKeySize]byte
	off := 0
	off += copy(out[off:], k.Gid[:])
	a := k.A.Bytes()
	off += copy(out[off:], a[:])
	x := k.X.Bytes()
	off += copy(out[off:], x[:])
	f := k.F.Bytes()
	copy(out[off:], f[:])
	return out
}

func DecodePrivKey(b [PrivKeySize]byte) (PrivKey, error) {
	var k PrivKey
	off := 0
	copy(k.Gid[:], b[off:off+GroupIDSize])
	off += GroupIDSize

	var ab [field.G1Size]byte
	copy(ab[:], b[off:off+field.G1Size])
	off += field.G1Size
	a, err := field.G1FromBytes(ab)
	if err != nil {
		return PrivKey{}, epiderr.BadArgumentPrivKey
	}
	if a.IsIdentity() {
		return PrivKey{}, epiderr.BadArgumentPrivKey
	}

	var xb [field.FpSize]byte
	copy(xb[:], b[off:off+field.FpSize])
	off += field.FpSize
	x, err := field.FpFromBytes(xb)
	if err != nil {
		return PrivKey{}, epiderr.BadArgumentPrivKey
	}

	var fb [field.FpSize]byte
	copy(fb[:], b[off:off+field.FpSize])
	f, err := field.FpFromBytes(fb)
	if err != nil {
		return PrivKey{}, epiderr.BadArgumentPrivKey
	}

	k.A, k.X, k.F = a, x, f
	return k, nil
}

// CompressedPrivKeySize is the fixed wire width of a CompressedPrivKey
// (spec §6): gid(16) + Ax(32) + seed(32).
const CompressedPrivKeySize = GroupIDSize + field.FqSize + 32

// CompressedPrivKey carries only A's x-coordinate plus a seed; the
// custodian's decompress operation reconstructs A.y and f from it
// (spec §3, §4.1).
type CompressedPrivKey struct {
	Gid  GroupID
	Ax   field.Fq
	Seed [32]byte
}

func (k CompressedPrivKey) Encode() [CompressedPrivKeySize]byte {
	var out [CompressedPrivKeySize]byte
	off := 0
	off += copy(out[off:], k.Gid[:])
	ax := k.Ax.Bytes()
	off += copy(out[off:], ax[:])
	copy(out[off:], k.Seed[:])
	return out
}

func DecodeCompressedPrivKey(b [CompressedPrivKeySize]byte) (CompressedPrivKey, error) {
	var k CompressedPrivKey
	off := 0
	copy(k.Gid[:], b[off:off+GroupIDSize])
	off += GroupIDSize

	var axb [field.FqSize]byte
	copy(axb[:], b[off:off+field.FqSize])
	off += field.FqSize
	ax, err := field.FqFromBytes(axb)
	if err != nil {
		return CompressedPrivKey{}, epiderr.BadArgumentPrivKey
	}

	copy(k.Seed[:], b[off:])
	k.Ax = ax
	return k, nil
}

// MembershipCredentialSize is the fixed wire width of a
// MembershipCredential (spec §6): gid(16) + A(64) + x(32).
const MembershipCredentialSize = GroupIDSize + field.G1Size + field.FpSize

// MembershipCredential is the public portion of a member's key (spec §3,
// GLOSSARY). The matching secret f lives only in the custodian.
type MembershipCredential struct {
	Gid GroupID
	A   field.G1
	X   field.Fp
}

func (c MembershipCredential) Encode() [MembershipCredentialSize]byte {
	var out [MembershipCredentialSize]byte
	off := 0
	off += copy(out[off:], c.Gid[:])
	a := c.A.Bytes()
	off += copy(out[off:], a[:])
	x := c.X.Bytes()
	copy(out[off:], x[:])
	return out
}

func DecodeMembershipCredential(b [MembershipCredentialSize]byte) (MembershipCredential, error) {
	var c MembershipCredential
	off := 0
	copy(c.Gid[:], b[off:off+GroupIDSize])
	off += GroupIDSize

	var ab [field.G1Size]byte
	copy(ab[:], b[off:off+field.G1Size])
	off += field.G1Size
	a, err := field.G1FromBytes(ab)
	if err != nil {
		return MembershipCredential{}, epiderr.BadArgumentCredential
	}
	if a.IsIdentity() {
		return MembershipCredential{}, epiderr.BadArgumentCredential
	}

	var xb [field.FpSize]byte
	copy(xb[:], b[off:off+field.FpSize])
	x, err := field.FpFromBytes(xb)
	if err != nil {
		return MembershipCredential{}, epiderr.BadArgumentCredential
	}

	c.A, c.X = a, x
	return c, nil
}
