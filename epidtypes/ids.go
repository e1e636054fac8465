// Package epidtypes holds the byte-exact data model of spec §3: the
// fixed-width records the member subsystem reads from an issuer, writes
// for a verifier, or carries internally. Struct layouts mirror the
// teacher repo's plain-struct style for wire records
// (types/lightclient.go); (de)serialization follows the fixed-width
// big-endian rule throughout, built on the field and codec packages.
package epidtypes

import (
	"github.com/epid-go/member/epiderr"
	"github.com/epid-go/member/field"
)

// GroupIDSize is the width of a GroupId on the wire (spec §3/§6).
const GroupIDSize = 16

// GroupID is the 16-byte group identifier. Only the low nibble of byte 1
// is interpreted by the core (the selected hash algorithm); every other
// bit, including the high nibble of byte 1, is opaque and preserved
// round-trip (spec §9 open question).
type GroupID [GroupIDSize]byte

// HashAlg decodes the hash algorithm tag from byte 1's low nibble.
// Returns epiderr.HashAlgorithmNotSupported for reserved tags 4-15.
func (g GroupID) HashAlg() (field.HashAlg, error) {
	if len(g) < 2 {
		return 0, epiderr.BadArgument
	}
	return field.ParseHashAlg(g[1])
}

// Equal does a constant-shape memcmp, per spec §3's "must match ... via
// memcmp" requirement for gid comparisons.
func (g GroupID) Equal(other GroupID) bool {
	return g == other
}
