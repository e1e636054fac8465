// Package field implements the FieldMath component of spec §2.1: arithmetic
// in Fp (the prime field of the curve's group order), Fq (the curve's base
// field), G1, G2, and GT, plus the optimal ate pairing tying them together.
//
// The curve itself — a type-3 Barreto-Naehrig curve over a 256-bit prime,
// per spec §1 — is not reimplemented here: it is the bn254 curve from
// gnark-crypto, used the same way the teacher repo calls gnark-crypto's
// native (non-circuit) curve API directly against concrete points
// (types/lightclient.go, types/verify_bls_aggr_test.go).
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/epid-go/member/epiderr"
)

// HashAlg is the digest selected by the low nibble of byte 1 of a gid, per
// spec §6.
type HashAlg byte

const (
	SHA256 HashAlg = iota
	SHA384
	SHA512
	SHA512_256
)

// ParseHashAlg decodes the low nibble of a gid's second byte. Tags 4-15
// are reserved and MUST be rejected per spec §3/§6.
func ParseHashAlg(gidByte1 byte) (HashAlg, error) {
	switch gidByte1 & 0x0f {
	case byte(SHA256):
		return SHA256, nil
	case byte(SHA384):
		return SHA384, nil
	case byte(SHA512):
		return SHA512, nil
	case byte(SHA512_256):
		return SHA512_256, nil
	default:
		return 0, epiderr.HashAlgorithmNotSupported
	}
}

// Sizes of the fixed-width wire records defined in spec §6.
const (
	FpSize = 32
	FqSize = 32
	G1Size = 2 * FqSize  // 64
	G2Size = 4 * FqSize  // 128
	GTSize = 12 * FqSize // 384
)

// curveParams is the process-wide immutable singleton holding the BN254
// generators; the field moduli come from gnark-crypto's fr/fp packages
// (FrModulus, FqModulus below). original_source/epid/member/src/context.c
// keeps an analogous epid2params handle distinct from any particular
// member's public key; we mirror that by computing the generators once.
type curveParams struct {
	g1 bn254.G1Affine
	g2 bn254.G2Affine
}

var params = newCurveParams()

func newCurveParams() curveParams {
	_, _, g1, g2 := bn254.Generators()
	return curveParams{g1: g1, g2: g2}
}

// G1Generator returns g1, the canonical BN254 generator of G1.
func G1Generator() G1 {
	var j bn254.G1Jac
	j.FromAffine(&params.g1)
	return G1{p: j}
}

// G2Generator returns g2, the canonical BN254 generator of G2.
func G2Generator() G2 {
	var j bn254.G2Jac
	j.FromAffine(&params.g2)
	return G2{p: j}
}

// FrModulus returns p, the group order (spec's Fp modulus).
func FrModulus() *big.Int { return fr.Modulus() }

// FqModulus returns q, the curve base field modulus (spec's Fq modulus).
func FqModulus() *big.Int { return fp.Modulus() }

// FrModulusBytes encodes p itself (not an element reduced by it) as a
// canonical 32-byte big-endian string. The join, sign, and non-revoked
// proof transcripts (spec §4.7/§4.8) each open with this value as a
// domain separator shared by every group, distinct from any individual
// field element on the wire.
func FrModulusBytes() [FpSize]byte {
	var out [FpSize]byte
	FrModulus().FillBytes(out[:])
	return out
}
