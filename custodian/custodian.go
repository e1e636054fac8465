// Package custodian implements the SecretCustodian component of spec
// §2.1/§4.1: the holder of a member's secret scalars (f, x, and the
// ephemeral per-protocol blinding values) and the only code in this
// module that ever multiplies them together.
//
// Every exported commit/response pair is grounded line-for-line on the
// matching TPM source file:
//   - JoinCommit/JoinResponse  -> tpm/src/join.c     (TpmJoinCommit/TpmJoin)
//   - SignCommit/SignResponse  -> tpm/src/sign.c     (TpmSignCommit/TpmSign)
//   - NrCommit/NrResponse      -> tpm/src/nrprove.c  (TpmNrProveCommit/TpmNrProve)
//
// Each protocol's commit/response pair is tracked by its own pending
// flag, mirroring the three independent booleans
// (join_pending/sign_pending/nrprove_pending) the TPM context keeps: a
// response call out of sequence with its commit fails with
// epiderr.OutOfSequence, and a protocol's secret scalars are zeroized the
// moment its response is produced (or the operation otherwise exits).
package custodian

import (
	"github.com/epid-go/member/bitsupplier"
	"github.com/epid-go/member/epiderr"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
	"github.com/epid-go/member/presig"
)

// Custodian holds a member's join secret f and, once assigned by the
// issuer, its private scalar x. Both are zero until provisioned; signing
// requires x in addition to f, while joining and non-revoked proving need
// only f.
type Custodian struct {
	hasF bool
	f    field.Fp

	hasX bool
	x    field.Fp

	joinPending bool
	r           field.Fp

	signPending bool
	signRx      field.Fp
	signRf      field.Fp
	signRa      field.Fp
	signRb      field.Fp

	nrPending bool
	mu        field.Fp
	nu        field.Fp
	rmu       field.Fp
	rnu       field.Fp
}

// New returns an unprovisioned custodian.
func New() *Custodian {
	return &Custodian{}
}

// ProvisionF sets the join secret f. This is the only secret a member
// needs to request to join a group (spec §4.7). It also doubles as the
// recovery path out of any stuck commit/response sequence: any pending
// commit is dropped and the custodian returns to Idle (spec §4.1), so a
// caller that hit OutOfSequence can retry cleanly after a fresh
// provision_f.
func (c *Custodian) ProvisionF(f field.Fp) {
	c.f = f
	c.hasF = true
	c.clearJoin()
	c.clearSign()
	c.clearNr()
}

// ProvisionX sets the private scalar x assigned by the issuer as part of
// a member's credential. SignCommit requires it; NrCommit does not.
func (c *Custodian) ProvisionX(x field.Fp) {
	c.x = x
	c.hasX = true
}

// HasF reports whether a join secret has been provisioned.
func (c *Custodian) HasF() bool { return c.hasF }

// PeekF returns the provisioned join secret f. It exists only for
// MemberContext-level operations (provision_credential's membership
// check, presig/sign orchestration) that legitimately need f outside of
// a commit/response pair; no Sigma-protocol math in this package itself
// calls it.
func (c *Custodian) PeekF() (field.Fp, error) {
	if err := c.requireF(); err != nil {
		return field.Fp{}, err
	}
	return c.f, nil
}

// HasKey reports whether both f and x are provisioned, the precondition
// for SignCommit.
func (c *Custodian) HasKey() bool { return c.hasF && c.hasX }

// Zeroize clears every secret and pending value the custodian holds. A
// caller tearing down a member context calls this as its last step,
// matching EpidMemberDelete's teardown discipline in context.c.
func (c *Custodian) Zeroize() {
	zero := field.FpZero()
	c.f, c.x = zero, zero
	c.hasF, c.hasX = false, false
	c.clearJoin()
	c.clearSign()
	c.clearNr()
}

func (c *Custodian) clearJoin() {
	c.r = field.FpZero()
	c.joinPending = false
}

func (c *Custodian) clearSign() {
	zero := field.FpZero()
	c.signRx, c.signRf, c.signRa, c.signRb = zero, zero, zero, zero
	c.signPending = false
}

func (c *Custodian) clearNr() {
	zero := field.FpZero()
	c.mu, c.nu, c.rmu, c.rnu = zero, zero, zero, zero
	c.nrPending = false
}

// requireF and requireKey guard every operation against use before
// provisioning, matching the TPM source's "ctx->secret.f must already be
// set" implicit precondition.
func (c *Custodian) requireF() error {
	if !c.hasF {
		return epiderr.BadArgumentPrivKey
	}
	return nil
}

func (c *Custodian) requireKey() error {
	if !c.hasF || !c.hasX {
		return epiderr.BadArgumentPrivKey
	}
	return nil
}

// JoinCommit is step 1-3 of the join protocol (tpm/src/join.c's
// TpmJoinCommit): F = h1^f, draw r, R = h1^r.
func (c *Custodian) JoinCommit(h1 field.G1, bs bitsupplier.BitSupplier, userCtx any) (F, R field.G1, err error) {
	if err := c.requireF(); err != nil {
		return field.G1{}, field.G1{}, err
	}
	if c.joinPending {
		return field.G1{}, field.G1{}, epiderr.OutOfSequence
	}

	F = h1.ScalarMul(c.f)

	r, err := field.RandomFp(bs, userCtx)
	if err != nil {
		return field.G1{}, field.G1{}, err
	}
	R = h1.ScalarMul(r)

	c.r = r
	c.joinPending = true
	return F, R, nil
}

// JoinResponse is step 5 of the join protocol (TpmJoin): s = r + c*f.
func (c *Custodian) JoinResponse(challenge field.Fp) (s field.Fp, err error) {
	if !c.joinPending {
		return field.Fp{}, epiderr.OutOfSequence
	}
	s = c.r.Add(challenge.Mul(c.f))
	c.clearJoin()
	return s, nil
}

// SignCommitOutput mirrors tpm/sign.h's SignCommitOutput: the values a
// sign commitment transcript hashes over.
type SignCommitOutput struct {
	B  field.G1
	K  field.G1
	T  field.G1
	R1 field.G1
	R2 field.GT
}

// SignCommit is TpmSignCommit: load (a, b, rx, rf, ra, rb, T, R2) from a
// presig, pick B (the supplied basename point, or the presig's own random
// B for name-unlinked signing), compute K = B^f and R1 = B^rf.
func (c *Custodian) SignCommit(ps presig.PreSig, basename *field.G1) (SignCommitOutput, error) {
	if err := c.requireKey(); err != nil {
		return SignCommitOutput{}, err
	}
	if c.signPending {
		return SignCommitOutput{}, epiderr.OutOfSequence
	}

	B := ps.B
	if basename != nil {
		B = *basename
	}

	out := SignCommitOutput{
		B:  B,
		K:  B.ScalarMul(c.f),
		T:  ps.T,
		R1: B.ScalarMul(ps.Rf),
		R2: ps.R2,
	}

	c.signRx, c.signRf, c.signRa, c.signRb = ps.Rx, ps.Rf, ps.Ra, ps.Rb
	c.signPending = true
	return out, nil
}

// SignResponse is TpmSign: sx=rx+c*x, sf=rf+c*f, sa=ra+c*a, sb=rb+c*b.
// a and b are supplied by the caller (they live on the PreSig, not the
// custodian) because they are not secret to the custodian specifically —
// they are per-presig blinding values already consumed once SignCommit
// read rx/rf/ra/rb out of the same PreSig.
func (c *Custodian) SignResponse(challenge field.Fp, a, b field.Fp) (sx, sf, sa, sb field.Fp, err error) {
	if !c.signPending {
		return field.Fp{}, field.Fp{}, field.Fp{}, field.Fp{}, epiderr.OutOfSequence
	}
	sx = c.signRx.Add(challenge.Mul(c.x))
	sf = c.signRf.Add(challenge.Mul(c.f))
	sa = c.signRa.Add(challenge.Mul(a))
	sb = c.signRb.Add(challenge.Mul(b))
	c.clearSign()
	return sx, sf, sa, sb, nil
}

// NrCommitOutput mirrors tpm/nrprove.h's NrProveCommitOutput.
type NrCommitOutput struct {
	T  field.G1
	R1 field.G1
	R2 field.G1
}

// NrCommit is TpmNrProveCommit: draw mu, set nu = -f*mu, draw rmu, rnu,
// then T = K'^mu . B'^nu against the SigRL entry's (B', K'), with R1, R2
// built from the signature's own (B, K).
func (c *Custodian) NrCommit(sigB, sigK field.G1, entry epidtypes.SigRLEntry, bs bitsupplier.BitSupplier, userCtx any) (NrCommitOutput, error) {
	if err := c.requireF(); err != nil {
		return NrCommitOutput{}, err
	}
	if c.nrPending {
		return NrCommitOutput{}, epiderr.OutOfSequence
	}

	mu, err := field.RandomFp(bs, userCtx)
	if err != nil {
		return NrCommitOutput{}, err
	}
	nu := mu.Mul(c.f).Neg()

	rmu, err := field.RandomFp(bs, userCtx)
	if err != nil {
		return NrCommitOutput{}, err
	}
	rnu, err := field.RandomFp(bs, userCtx)
	if err != nil {
		return NrCommitOutput{}, err
	}

	r1 := field.MultiScalarMul([]field.G1{sigK, sigB}, []field.Fp{rmu, rnu})
	t := field.MultiScalarMul([]field.G1{entry.K, entry.B}, []field.Fp{mu, nu})
	r2 := field.MultiScalarMul([]field.G1{entry.K, entry.B}, []field.Fp{rmu, rnu})

	c.mu, c.nu, c.rmu, c.rnu = mu, nu, rmu, rnu
	c.nrPending = true

	return NrCommitOutput{T: t, R1: r1, R2: r2}, nil
}

// NrResponse is TpmNrProve: smu = rmu + c*mu, snu = rnu + c*nu.
func (c *Custodian) NrResponse(challenge field.Fp) (smu, snu field.Fp, err error) {
	if !c.nrPending {
		return field.Fp{}, field.Fp{}, epiderr.OutOfSequence
	}
	smu = c.rmu.Add(challenge.Mul(c.mu))
	snu = c.rnu.Add(challenge.Mul(c.nu))
	c.clearNr()
	return smu, snu, nil
}
