package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/epid-go/member/epiderr"
)

// G1 is a point of the BN254 G1 group. Arithmetic is carried out in
// Jacobian coordinates (cheap repeated addition, the common case in the
// sign/non-revoked-proof commit equations); affine coordinates are used
// only at the I/O boundary (Bytes/FromBytes) and before a pairing call.
type G1 struct {
	p bn254.G1Jac
}

// G1Identity returns the point at infinity of G1.
func G1Identity() G1 {
	var g G1
	g.p.ScalarMultiplication(&G1Generator().p, bigZero())
	return g
}

func (g G1) Affine() bn254.G1Affine {
	var a bn254.G1Affine
	a.FromJacobian(&g.p)
	return a
}

func g1FromAffine(a bn254.G1Affine) G1 {
	var g G1
	g.p.FromAffine(&a)
	return g
}

// G1FromBytes deserializes an uncompressed, fixed-width (X||Y) OctStr, per
// spec §3/§6. It validates canonical field range, on-curve membership, and
// (since bn254's G1 cofactor is 1) prime-order subgroup membership.
func G1FromBytes(b [G1Size]byte) (G1, error) {
	var xb, yb [FqSize]byte
	copy(xb[:], b[:FqSize])
	copy(yb[:], b[FqSize:])

	x, err := FqFromBytes(xb)
	if err != nil {
		return G1{}, epiderr.BadArgument
	}
	y, err := FqFromBytes(yb)
	if err != nil {
		return G1{}, epiderr.BadArgument
	}

	a := bn254.G1Affine{X: x.v, Y: y.v}
	if x.IsZero() && y.IsZero() {
		return g1FromAffine(a), nil
	}
	if !a.IsOnCurve() {
		return G1{}, epiderr.BadArgument
	}
	if !a.IsInSubGroup() {
		return G1{}, epiderr.BadArgument
	}
	return g1FromAffine(a), nil
}

// Bytes serializes g as an uncompressed, fixed-width (X||Y) OctStr64.
func (g G1) Bytes() [G1Size]byte {
	a := g.Affine()
	var out [G1Size]byte
	xb := Fq{v: a.X}.Bytes()
	yb := Fq{v: a.Y}.Bytes()
	copy(out[:FqSize], xb[:])
	copy(out[FqSize:], yb[:])
	return out
}

func (g G1) Add(other G1) G1 {
	var r G1
	r.p.Add(&g.p, &other.p)
	return r
}

func (g G1) Neg() G1 {
	var r G1
	r.p.Neg(&g.p)
	return r
}

// ScalarMul computes g^s (additively, s*g).
func (g G1) ScalarMul(s Fp) G1 {
	var r G1
	r.p.ScalarMultiplication(&g.p, s.BigInt())
	return r
}

// MultiScalarMul computes the sum of gi^si. It is the naive double-and-add
// sum rather than a Pippenger-style batched multi-exponentiation: the
// member subsystem only ever combines a handful of points per signature
// (spec §4.8's transcripts have at most a few terms), so the asymptotic
// win of a dedicated multi-exp is not worth the extra surface.
func MultiScalarMul(points []G1, scalars []Fp) G1 {
	acc := G1Identity()
	for i := range points {
		acc = acc.Add(points[i].ScalarMul(scalars[i]))
	}
	return acc
}

func (g G1) IsIdentity() bool {
	return g.Affine().IsInfinity()
}

func (g G1) Equal(other G1) bool {
	return g.p.Equal(&other.p)
}

func bigZero() *big.Int {
	return new(big.Int)
}
