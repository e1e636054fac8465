package field

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/epid-go/member/epiderr"
)

// G2 is a point of the BN254 G2 group (the twist), stored in Jacobian
// coordinates for the same reasons as G1.
type G2 struct {
	p bn254.G2Jac
}

func G2Identity() G2 {
	var g G2
	g.p.ScalarMultiplication(&G2Generator().p, bigZero())
	return g
}

func (g G2) Affine() bn254.G2Affine {
	var a bn254.G2Affine
	a.FromJacobian(&g.p)
	return a
}

func g2FromAffine(a bn254.G2Affine) G2 {
	var g G2
	g.p.FromAffine(&a)
	return g
}

// G2FromBytes deserializes an uncompressed, fixed-width G2 record: two
// Fq2 coordinates, each itself two Fq elements (A0||A1), per spec §3/§6.
func G2FromBytes(b [G2Size]byte) (G2, error) {
	var xa0, xa1, ya0, ya1 [FqSize]byte
	copy(xa0[:], b[0*FqSize:1*FqSize])
	copy(xa1[:], b[1*FqSize:2*FqSize])
	copy(ya0[:], b[2*FqSize:3*FqSize])
	copy(ya1[:], b[3*FqSize:4*FqSize])

	fields := [][FqSize]byte{xa0, xa1, ya0, ya1}
	var parsed [4]Fq
	for i, fb := range fields {
		f, err := FqFromBytes(fb)
		if err != nil {
			return G2{}, epiderr.BadArgument
		}
		parsed[i] = f
	}

	a := bn254.G2Affine{
		X: bn254.E2{A0: parsed[0].v, A1: parsed[1].v},
		Y: bn254.E2{A0: parsed[2].v, A1: parsed[3].v},
	}

	if parsed[0].IsZero() && parsed[1].IsZero() && parsed[2].IsZero() && parsed[3].IsZero() {
		return g2FromAffine(a), nil
	}
	if !a.IsOnCurve() {
		return G2{}, epiderr.BadArgument
	}
	if !a.IsInSubGroup() {
		return G2{}, epiderr.BadArgument
	}
	return g2FromAffine(a), nil
}

func (g G2) Bytes() [G2Size]byte {
	a := g.Affine()
	var out [G2Size]byte
	xa0 := Fq{v: a.X.A0}.Bytes()
	xa1 := Fq{v: a.X.A1}.Bytes()
	ya0 := Fq{v: a.Y.A0}.Bytes()
	ya1 := Fq{v: a.Y.A1}.Bytes()
	copy(out[0*FqSize:], xa0[:])
	copy(out[1*FqSize:], xa1[:])
	copy(out[2*FqSize:], ya0[:])
	copy(out[3*FqSize:], ya1[:])
	return out
}

func (g G2) Add(other G2) G2 {
	var r G2
	r.p.Add(&g.p, &other.p)
	return r
}

func (g G2) Neg() G2 {
	var r G2
	r.p.Neg(&g.p)
	return r
}

func (g G2) ScalarMul(s Fp) G2 {
	var r G2
	r.p.ScalarMultiplication(&g.p, s.BigInt())
	return r
}

func (g G2) IsIdentity() bool {
	return g.Affine().IsInfinity()
}

func (g G2) Equal(other G2) bool {
	return g.p.Equal(&other.p)
}
