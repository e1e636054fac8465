// Package precomp implements the Precomp component of spec §2.1/§4.5: the
// four pairing values every sign and non-revoked-proof commitment reuses
// instead of recomputing a pairing per signature.
//
// original_source/epid/member/src/context.c allocates this exact quartet
// (e12, e22, e2w, ea2) alongside a member's key material and frees it with
// the context; the quartet's own assembly routine was filtered out of the
// retrieved source, so the derivation below is reconstructed from how
// tpm/src/presig.c's TpmComputePreSig consumes the four values (as the
// bases of its R2 multi-exponentiation: ea2^t1, e12^rf, e22^t2, e2w^ra).
package precomp

import (
	"github.com/epid-go/member/epiderr"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
)

// Cache holds the precomputed pairing quartet for one (GroupPubKey,
// MembershipCredential) pair. A member recomputes it whenever either the
// key material or the group it belongs to changes; it is otherwise immutable
// and safe to share across concurrent signs.
type Cache struct {
	Gid epidtypes.GroupID

	E12 field.GT // e(h1, g2)
	E22 field.GT // e(h2, g2)
	E2W field.GT // e(h2, w)
	Ea2 field.GT // e(A, g2)
}

// Compute derives the quartet from a group's public key and a member's
// credential A. x does not enter any of the four pairings (spec §4.6's
// membership check folds x into the G2 side as w*g2^x, which is formed at
// verification time, not precomputed here).
func Compute(pub epidtypes.GroupPubKey, credential epidtypes.MembershipCredential) (Cache, error) {
	g2 := field.G2Generator()

	e12, err := field.Pairing(pub.H1, g2)
	if err != nil {
		return Cache{}, err
	}
	e22, err := field.Pairing(pub.H2, g2)
	if err != nil {
		return Cache{}, err
	}
	e2w, err := field.Pairing(pub.H2, pub.W)
	if err != nil {
		return Cache{}, err
	}
	ea2, err := field.Pairing(credential.A, g2)
	if err != nil {
		return Cache{}, err
	}

	return Cache{
		Gid: pub.Gid,
		E12: e12,
		E22: e22,
		E2W: e2w,
		Ea2: ea2,
	}, nil
}

// Stale reports whether c was computed for a different group than gid and
// must be recomputed before use (spec §4.5: "a cache built against the
// wrong gid is a caller bug, never silently reused").
func (c Cache) Stale(gid epidtypes.GroupID) bool {
	return !c.Gid.Equal(gid)
}

// CacheSize is the fixed wire width of an exported Cache: gid(16) plus
// four GT elements (spec §6's wire discipline, extended to the one
// persistable artifact the member subsystem keeps outside a key).
const CacheSize = epidtypes.GroupIDSize + 4*field.GTSize

// Encode serializes c for the write_precomp operation (spec §4.5/§8): a
// caller may cache this blob and feed it back via Decode instead of
// recomputing the quartet, provided the key material has not changed.
func (c Cache) Encode() [CacheSize]byte {
	var out [CacheSize]byte
	off := copy(out[:], c.Gid[:])
	for _, g := range []field.GT{c.E12, c.E22, c.E2W, c.Ea2} {
		b := g.Bytes()
		off += copy(out[off:], b[:])
	}
	return out
}

// Decode parses a previously-exported Cache. It performs no pairing
// computation: it trusts the caller to have exported this blob from a
// Cache that was itself built with Compute.
func Decode(buf [CacheSize]byte) (Cache, error) {
	var c Cache
	off := copy(c.Gid[:], buf[:epidtypes.GroupIDSize])

	fields := make([]*field.GT, 4)
	fields[0], fields[1], fields[2], fields[3] = &c.E12, &c.E22, &c.E2W, &c.Ea2
	for _, p := range fields {
		var gb [field.GTSize]byte
		copy(gb[:], buf[off:off+field.GTSize])
		off += field.GTSize
		g, err := field.GTFromBytes(gb)
		if err != nil {
			return Cache{}, epiderr.BadArgument
		}
		*p = g
	}
	return c, nil
}

// Equal reports whether c and other are the byte-identical export, the
// property spec §8 calls "write_precomp is byte-for-byte deterministic":
// computing the same cache twice from the same inputs, or round-tripping
// through Encode/Decode, must produce indistinguishable results.
func (c Cache) Equal(other Cache) bool {
	return c.Gid.Equal(other.Gid) &&
		c.E12.Equal(other.E12) &&
		c.E22.Equal(other.E22) &&
		c.E2W.Equal(other.E2W) &&
		c.Ea2.Equal(other.Ea2)
}
