// Package presig implements the PresigPool component of spec §2.1/§4.4:
// a stack of precomputed signature blinding material a member can build up
// ahead of time so a later sign call is a handful of field operations
// instead of several random draws and a multi-exponentiation.
//
// Grounded on original_source/epid/member/tpm/src/presig.c's
// TpmComputePreSig/TpmAddPreSigs/TpmGetPreSig: every field name and
// computation step below follows that file line for line.
package presig

import (
	"github.com/epid-go/member/bitsupplier"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
	"github.com/epid-go/member/precomp"
)

// PreSig is one precomputed signature: the blinding commitment (B, K, T)
// a later sign call will finish, plus the secret exponents and the sign
// commitment's own (R1, R2) Fiat-Shamir commitment values.
type PreSig struct {
	B field.G1
	K field.G1
	T field.G1

	// Av, Bv are the secret rerandomization exponents a, b
	// (TpmComputePreSig steps 5-8: a random, b = a*x).
	Av field.Fp
	Bv field.Fp

	Rx field.Fp
	Rf field.Fp
	Ra field.Fp
	Rb field.Fp

	R1 field.G1
	R2 field.GT
}

// Compute derives one PreSig from a member's credential, join secret f,
// and the h2 generator plus the precomputed pairing quartet for its
// group, drawing fresh randomness from bs (TpmComputePreSig steps 3-13).
func Compute(credential epidtypes.MembershipCredential, f field.Fp, h2 field.G1, cache precomp.Cache, bs bitsupplier.BitSupplier, userCtx any) (PreSig, error) {
	var p PreSig

	b, err := field.RandomG1(bs, userCtx)
	if err != nil {
		return PreSig{}, err
	}
	p.B = b
	p.K = b.ScalarMul(f)

	a, err := field.RandomFp(bs, userCtx)
	if err != nil {
		return PreSig{}, err
	}
	p.Av = a
	p.T = h2.ScalarMul(a).Add(credential.A)
	p.Bv = a.Mul(credential.X)

	rx, err := field.RandomFp(bs, userCtx)
	if err != nil {
		return PreSig{}, err
	}
	rf, err := field.RandomFp(bs, userCtx)
	if err != nil {
		return PreSig{}, err
	}
	ra, err := field.RandomFp(bs, userCtx)
	if err != nil {
		return PreSig{}, err
	}
	rb, err := field.RandomFp(bs, userCtx)
	if err != nil {
		return PreSig{}, err
	}
	p.Rx, p.Rf, p.Ra, p.Rb = rx, rf, ra, rb

	p.R1 = b.ScalarMul(rf)

	t1 := rx.Neg()
	t2 := rb.Sub(a.Mul(rx))

	r2 := cache.Ea2.Exp(t1).
		Mul(cache.E12.Exp(rf)).
		Mul(cache.E22.Exp(t2)).
		Mul(cache.E2W.Exp(ra))
	p.R2 = r2

	return p, nil
}

// Pool is the stack of ready-to-consume PreSigs (spec §4.4): signatures
// are produced LIFO, and a sign call that finds the pool empty computes
// one on the spot rather than failing.
type Pool struct {
	stack []PreSig
}

// Add pushes n freshly-computed PreSigs. If any computation fails partway
// through, the entire batch is rolled back and the pool is left exactly as
// it was before the call, per spec §4.4's "add rolls back its own partial
// work on failure" guarantee.
func (p *Pool) Add(n int, credential epidtypes.MembershipCredential, f field.Fp, h2 field.G1, cache precomp.Cache, bs bitsupplier.BitSupplier, userCtx any) error {
	if n <= 0 {
		return nil
	}
	before := len(p.stack)
	for i := 0; i < n; i++ {
		ps, err := Compute(credential, f, h2, cache, bs, userCtx)
		if err != nil {
			p.stack = p.stack[:before]
			return err
		}
		p.stack = append(p.stack, ps)
	}
	return nil
}

// Num returns the number of PreSigs currently available without computing
// anything new.
func (p *Pool) Num() int {
	return len(p.stack)
}

// Top returns the PreSig a sign call would consume next. If the pool is
// empty it computes one and pushes it first, so a following Pop removes it.
func (p *Pool) Top(credential epidtypes.MembershipCredential, f field.Fp, h2 field.G1, cache precomp.Cache, bs bitsupplier.BitSupplier, userCtx any) (PreSig, error) {
	if len(p.stack) == 0 {
		ps, err := Compute(credential, f, h2, cache, bs, userCtx)
		if err != nil {
			return PreSig{}, err
		}
		p.stack = append(p.stack, ps)
	}
	return p.stack[len(p.stack)-1], nil
}

// Pop removes and discards the top PreSig, if any. Sign calls Pop after
// consuming Top's result so the same blinding material is never reused
// across two signatures.
func (p *Pool) Pop() {
	if len(p.stack) == 0 {
		return
	}
	p.stack = p.stack[:len(p.stack)-1]
}
