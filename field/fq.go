package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"

	"github.com/epid-go/member/epiderr"
)

// Fq is an element of the curve's base field (spec's "Fq"), backed by
// gnark-crypto's bn254 base field. It is mostly an implementation detail
// of G1/G2 coordinates, but is exposed directly for HashToFp-over-Fq style
// use inside hash-to-curve (field/hash.go).
type Fq struct {
	v fp.Element
}

func FqFromUint64(v uint64) Fq {
	var f Fq
	f.v.SetUint64(v)
	return f
}

func FqFromBytes(b [FqSize]byte) (Fq, error) {
	var i big.Int
	i.SetBytes(b[:])
	if i.Cmp(FqModulus()) >= 0 {
		return Fq{}, epiderr.BadArgument
	}
	var f Fq
	f.v.SetBigInt(&i)
	return f, nil
}

func (f Fq) Bytes() [FqSize]byte { return f.v.Bytes() }

func (f Fq) Add(other Fq) Fq { var r Fq; r.v.Add(&f.v, &other.v); return r }
func (f Fq) Sub(other Fq) Fq { var r Fq; r.v.Sub(&f.v, &other.v); return r }
func (f Fq) Mul(other Fq) Fq { var r Fq; r.v.Mul(&f.v, &other.v); return r }
func (f Fq) Square() Fq      { var r Fq; r.v.Square(&f.v); return r }
func (f Fq) Neg() Fq         { var r Fq; r.v.Neg(&f.v); return r }

func (f Fq) IsZero() bool        { return f.v.IsZero() }
func (f Fq) Equal(other Fq) bool { return f.v.Equal(&other.v) }

// Sqrt returns a square root of f and true if f is a quadratic residue,
// or the zero value and false otherwise. Used by HashToG1's try-and-
// increment loop (spec §4.2).
func (f Fq) Sqrt() (Fq, bool) {
	var r Fq
	if r.v.Sqrt(&f.v) == nil {
		return Fq{}, false
	}
	return r, true
}
