package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/epid-go/member/epiderr"
)

// Fp is an element of the prime field of the curve's group order (spec's
// "Fp"), backed by gnark-crypto's bn254 scalar field.
type Fp struct {
	v fr.Element
}

// FpZero and FpOne are the additive and multiplicative identities.
func FpZero() Fp { var f Fp; f.v.SetZero(); return f }
func FpOne() Fp  { var f Fp; f.v.SetOne(); return f }

// FpFromUint64 lifts a small integer into Fp, for small constants such as
// the fixed challenges and offsets the tests use.
func FpFromUint64(v uint64) Fp {
	var f Fp
	f.v.SetUint64(v)
	return f
}

// FpFromBytes deserializes a canonical big-endian OctStr256, rejecting any
// value outside [0, p) per spec §4.2 ("deserialization validates that the
// value is in canonical range").
func FpFromBytes(b [FpSize]byte) (Fp, error) {
	var i big.Int
	i.SetBytes(b[:])
	if i.Cmp(FrModulus()) >= 0 {
		return Fp{}, epiderr.BadArgument
	}
	var f Fp
	f.v.SetBigInt(&i)
	return f, nil
}

// Bytes serializes f as a canonical big-endian OctStr256.
func (f Fp) Bytes() [FpSize]byte {
	return f.v.Bytes()
}

func (f Fp) Add(other Fp) Fp {
	var r Fp
	r.v.Add(&f.v, &other.v)
	return r
}

func (f Fp) Sub(other Fp) Fp {
	var r Fp
	r.v.Sub(&f.v, &other.v)
	return r
}

func (f Fp) Mul(other Fp) Fp {
	var r Fp
	r.v.Mul(&f.v, &other.v)
	return r
}

func (f Fp) Neg() Fp {
	var r Fp
	r.v.Neg(&f.v)
	return r
}

// Inverse returns f^-1. Returns epiderr.DivByZero if f is zero.
func (f Fp) Inverse() (Fp, error) {
	if f.v.IsZero() {
		return Fp{}, epiderr.DivByZero
	}
	var r Fp
	r.v.Inverse(&f.v)
	return r, nil
}

func (f Fp) IsZero() bool { return f.v.IsZero() }

func (f Fp) Equal(other Fp) bool { return f.v.Equal(&other.v) }

// BigInt returns the canonical representative of f in [0, p).
func (f Fp) BigInt() *big.Int {
	var i big.Int
	f.v.BigInt(&i)
	return &i
}

func (f Fp) String() string { return f.v.String() }
