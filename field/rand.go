package field

import (
	"math/big"

	"github.com/epid-go/member/bitsupplier"
	"github.com/epid-go/member/epiderr"
)

// maxRandIter bounds the rejection-sampling loop in RandomFp, per spec
// §4.1 ("after a configurable iteration cap the operation fails with
// RandMaxIter"). It is generous enough that a real random source never
// comes close (a uniform 256-bit draw lands in [1, p-1] with probability
// about 0.19, so 256 rejections in a row happen with probability below
// 2^-76), while
// still being finite so a degenerate supplier (spec §8: all-zero blocks)
// fails fast instead of spinning.
const maxRandIter = 256

// RandomFp draws a uniform element of [1, p-1] from bs, using rejection
// sampling: a canonical OctStr256 is drawn and accepted only if it encodes
// a nonzero value below p. Spec §4.1 permits either rejection sampling or
// oversample-and-reduce; rejection sampling is chosen because it is exact
// (oversample-and-reduce is marginally biased unless the oversample is
// wide enough to make the bias negligible).
func RandomFp(bs bitsupplier.BitSupplier, userCtx any) (Fp, error) {
	var buf [FpSize]byte
	for i := 0; i < maxRandIter; i++ {
		if err := bs.Call(buf[:], FpSize*8, userCtx); err != nil {
			return Fp{}, err
		}
		var v big.Int
		v.SetBytes(buf[:])
		if v.Sign() == 0 {
			continue
		}
		if v.Cmp(FrModulus()) >= 0 {
			continue
		}
		var f Fp
		f.v.SetBigInt(&v)
		return f, nil
	}
	return Fp{}, epiderr.RandMaxIter
}

// RandomG1 draws a uniform element of G1 by scalar-multiplying the
// generator with a uniform Fp exponent, mirroring
// original_source/epid/member/tpm/src/presig.c's EcGetRandom call for its
// B value: G1 has prime order p (spec's Fp), so a uniform exponent in
// [1, p-1] produces a uniform group element.
func RandomG1(bs bitsupplier.BitSupplier, userCtx any) (G1, error) {
	s, err := RandomFp(bs, userCtx)
	if err != nil {
		return G1{}, err
	}
	return G1Generator().ScalarMul(s), nil
}
