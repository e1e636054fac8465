// Package sign implements the SignProtocol component of spec §2.1/§4.8:
// the Fiat-Shamir wrapper around custodian.SignCommit/SignResponse and
// custodian.NrCommit/NrResponse that produces a wire-ready EpidSignature.
//
// Grounded on original_source/epid/member/src/signbasic.c's EpidSignBasic
// and src/nrprove.c's EpidNrProve for the call sequence (commit, hash,
// respond, assemble); the exact transcript contents follow spec.md
// §4.8's T2/T3 formulas verbatim, since HashSignCommitment/
// HashNrProveCommitment's own byte layout was filtered from the
// retrieved source tree.
package sign

import (
	"github.com/epid-go/member/bitsupplier"
	"github.com/epid-go/member/codec"
	"github.com/epid-go/member/custodian"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
	"github.com/epid-go/member/precomp"
	"github.com/epid-go/member/presig"
)

// basicSign runs the core sigma0 protocol (spec §4.8 "Basic signature"
// steps 1-5). A non-nil basename selects whether B comes from HashToG1(basename)
// (and, if so, the winning counter it discovered) or from the consumed
// presig's own random B.
func basicSign(cust *custodian.Custodian, pool *presig.Pool, credential epidtypes.MembershipCredential, f field.Fp, h2 field.G1, cache precomp.Cache, pub epidtypes.GroupPubKey, basename []byte, msg []byte, hashAlg field.HashAlg, bs bitsupplier.BitSupplier, userCtx any) (epidtypes.BasicSignature, uint32, bool, error) {
	ps, err := pool.Top(credential, f, h2, cache, bs, userCtx)
	if err != nil {
		return epidtypes.BasicSignature{}, 0, false, err
	}

	var basenamePoint *field.G1
	var counter uint32
	var hasCounter bool
	if basename != nil {
		bp, cnt, err := field.HashToG1(basename, hashAlg)
		if err != nil {
			return epidtypes.BasicSignature{}, 0, false, err
		}
		basenamePoint = &bp
		counter = cnt
		hasCounter = true
	}

	commit, err := cust.SignCommit(ps, basenamePoint)
	if err != nil {
		return epidtypes.BasicSignature{}, 0, false, err
	}

	p := field.FrModulusBytes()
	transcript := codec.NewTranscriptWriter().
		WriteRaw(p[:]).
		WriteG1(field.G1Generator()).
		WriteG2(field.G2Generator()).
		WriteG1(pub.H1).
		WriteG1(pub.H2).
		WriteG2(pub.W).
		WriteG1(commit.B).
		WriteG1(commit.K).
		WriteG1(commit.T).
		WriteG1(commit.R1).
		WriteGT(commit.R2).
		WriteRaw(msg).
		Bytes()

	c, err := field.HashToFp(transcript, hashAlg)
	if err != nil {
		return epidtypes.BasicSignature{}, 0, false, err
	}

	sx, sf, sa, sb, err := cust.SignResponse(c, ps.Av, ps.Bv)
	if err != nil {
		return epidtypes.BasicSignature{}, 0, false, err
	}

	pool.Pop()

	sigma0 := epidtypes.BasicSignature{
		B: commit.B, K: commit.K, T: commit.T,
		C: c, Sx: sx, Sf: sf, Sa: sa, Sb: sb,
	}
	return sigma0, counter, hasCounter, nil
}

// nonRevokedProof runs one SigRL entry's non-revoked proof (spec §4.8
// "Non-revoked proof per SigRL entry"). It reports whether this entry's T
// landed on the curve identity, which signals a revocation match.
func nonRevokedProof(cust *custodian.Custodian, sigmaB, sigmaK field.G1, entry epidtypes.SigRLEntry, counter uint32, hasCounter bool, msg []byte, hashAlg field.HashAlg, bs bitsupplier.BitSupplier, userCtx any) (epidtypes.NrProof, bool, error) {
	nrc, err := cust.NrCommit(sigmaB, sigmaK, entry, bs, userCtx)
	if err != nil {
		return epidtypes.NrProof{}, false, err
	}

	p := field.FrModulusBytes()
	w := codec.NewTranscriptWriter().
		WriteRaw(p[:]).
		WriteG1(field.G1Generator()).
		WriteG1(sigmaB).
		WriteG1(sigmaK).
		WriteG1(entry.B).
		WriteG1(entry.K).
		WriteG1(nrc.T).
		WriteG1(nrc.R1).
		WriteG1(nrc.R2)
	if hasCounter {
		var cb [4]byte
		codec.PutUint32(cb[:], counter)
		w = w.WriteRaw(cb[:])
	}
	transcript := w.WriteRaw(msg).Bytes()

	c, err := field.HashToFp(transcript, hashAlg)
	if err != nil {
		return epidtypes.NrProof{}, false, err
	}

	smu, snu, err := cust.NrResponse(c)
	if err != nil {
		return epidtypes.NrProof{}, false, err
	}

	proof := epidtypes.NrProof{T: nrc.T, C: c, Smu: smu, Snu: snu}
	return proof, nrc.T.IsIdentity(), nil
}

// Sign produces a complete EpidSignature: a basic signature plus one
// non-revoked proof per entry of sigRL (nil or empty for no revocation
// list). The returned bool is true when any entry's proof revealed a
// revocation match, in which case the caller reports
// epiderr.SigRevokedInSigRl even though the signature bytes are
// well-formed (spec §4.8's closing paragraph).
func Sign(cust *custodian.Custodian, pool *presig.Pool, credential epidtypes.MembershipCredential, f field.Fp, h2 field.G1, cache precomp.Cache, pub epidtypes.GroupPubKey, sigRL *epidtypes.SigRL, basename []byte, msg []byte, hashAlg field.HashAlg, bs bitsupplier.BitSupplier, userCtx any) (epidtypes.EpidSignature, bool, error) {
	sigma0, counter, hasCounter, err := basicSign(cust, pool, credential, f, h2, cache, pub, basename, msg, hashAlg, bs, userCtx)
	if err != nil {
		return epidtypes.EpidSignature{}, false, err
	}

	var rlVer uint32
	var proofs []epidtypes.NrProof
	revoked := false

	if sigRL != nil {
		rlVer = sigRL.Version
		proofs = make([]epidtypes.NrProof, len(sigRL.Entries))
		for i, entry := range sigRL.Entries {
			proof, hit, err := nonRevokedProof(cust, sigma0.B, sigma0.K, entry, counter, hasCounter, msg, hashAlg, bs, userCtx)
			if err != nil {
				return epidtypes.EpidSignature{}, false, err
			}
			proofs[i] = proof
			if hit {
				revoked = true
			}
		}
	}

	sig := epidtypes.EpidSignature{RlVer: rlVer, Sigma0: sigma0, NrProofs: proofs}
	return sig, revoked, nil
}
