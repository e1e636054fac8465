package field

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"

	"github.com/epid-go/member/epiderr"
)

// fpElement is the base-field element type underlying every tower
// extension coordinate (E2.A0/A1, ... down to GT's 12 limbs).
type fpElement = fp.Element

// GT is an element of the degree-12 extension field the pairing lands in.
// gnark-crypto represents it as a sextic-over-quadratic tower (E12 = 2xE6,
// E6 = 3xE2, E2 = 2xFq): a GT element flattens to the 12-tuple of Fq the
// spec's wire format calls for (spec §3/§6, 384 bytes).
type GT struct {
	v bn254.GT
}

func GTOne() GT { var g GT; g.v.SetOne(); return g }

func (g GT) Mul(other GT) GT {
	var r GT
	r.v.Mul(&g.v, &other.v)
	return r
}

func (g GT) Inverse() (GT, error) {
	var r GT
	if g.v.IsZero() {
		return GT{}, epiderr.DivByZero
	}
	r.v.Inverse(&g.v)
	return r, nil
}

// Exp computes g^e via square-and-multiply. gnark-crypto's E12 exposes the
// field multiplication/squaring primitives this builds on directly; a
// bespoke exponentiation loop on top of them is the ordinary way every
// group in this package (Fp, G1, G2) ends up exponentiated, so GT is kept
// consistent rather than reaching for a different code path.
func (g GT) Exp(e Fp) GT {
	exponent := e.BigInt()
	result := GTOne()
	base := g
	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
	}
	return result
}

func (g GT) Equal(other GT) bool {
	return g.v.Equal(&other.v)
}

// Bytes serializes g as the 384-byte, 12-tuple-of-Fq big-endian record.
func (g GT) Bytes() [GTSize]byte {
	limbs := [12]bn254E{
		g.v.C0.B0.A0, g.v.C0.B0.A1,
		g.v.C0.B1.A0, g.v.C0.B1.A1,
		g.v.C0.B2.A0, g.v.C0.B2.A1,
		g.v.C1.B0.A0, g.v.C1.B0.A1,
		g.v.C1.B1.A0, g.v.C1.B1.A1,
		g.v.C1.B2.A0, g.v.C1.B2.A1,
	}
	var out [GTSize]byte
	for i, limb := range limbs {
		b := Fq{v: limb}.Bytes()
		copy(out[i*FqSize:], b[:])
	}
	return out
}

func GTFromBytes(b [GTSize]byte) (GT, error) {
	var limbs [12]Fq
	for i := 0; i < 12; i++ {
		var lb [FqSize]byte
		copy(lb[:], b[i*FqSize:(i+1)*FqSize])
		f, err := FqFromBytes(lb)
		if err != nil {
			return GT{}, epiderr.BadArgument
		}
		limbs[i] = f
	}
	var g GT
	g.v.C0.B0.A0, g.v.C0.B0.A1 = limbs[0].v, limbs[1].v
	g.v.C0.B1.A0, g.v.C0.B1.A1 = limbs[2].v, limbs[3].v
	g.v.C0.B2.A0, g.v.C0.B2.A1 = limbs[4].v, limbs[5].v
	g.v.C1.B0.A0, g.v.C1.B0.A1 = limbs[6].v, limbs[7].v
	g.v.C1.B1.A0, g.v.C1.B1.A1 = limbs[8].v, limbs[9].v
	g.v.C1.B2.A0, g.v.C1.B2.A1 = limbs[10].v, limbs[11].v
	return g, nil
}

// bn254E keeps the limbs literal above legible.
type bn254E = fpElement

// Pairing computes the optimal ate pairing e(p, q) : G1 x G2 -> GT.
func Pairing(p G1, q G2) (GT, error) {
	pa := p.Affine()
	qa := q.Affine()
	res, err := bn254.Pair([]bn254.G1Affine{pa}, []bn254.G2Affine{qa})
	if err != nil {
		return GT{}, epiderr.MathErr
	}
	return GT{v: res}, nil
}

// PairingProductEqualsOne checks whether prod_i e(p_i, q_i) == 1 without
// materializing the final exponentiation's target value, mirroring
// PairingCheck's purpose in gnark-crypto's own public API
// (types/verify_bls_aggr_test.go calls bls12381.PairingCheck the same
// way, with a negated first point to turn an equality into a product
// check).
func PairingProductEqualsOne(ps []G1, qs []G2) (bool, error) {
	affP := make([]bn254.G1Affine, len(ps))
	affQ := make([]bn254.G2Affine, len(qs))
	for i := range ps {
		affP[i] = ps[i].Affine()
		affQ[i] = qs[i].Affine()
	}
	ok, err := bn254.PairingCheck(affP, affQ)
	if err != nil {
		return false, epiderr.MathErr
	}
	return ok, nil
}
