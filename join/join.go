// Package join implements the JoinProtocol component of spec §2.1/§4.7:
// the Fiat-Shamir wrapper around custodian.JoinCommit/JoinResponse that
// produces a wire-ready JoinRequest.
//
// Grounded on original_source/epid/member/src/join.c's EpidRequestJoin,
// which sequences exactly these three steps (commit, hash the
// commitment, respond) around the TPM calls custodian.go already
// mirrors; join_commitment.c's own transcript assembly was filtered from
// the retrieved source, so the transcript below follows spec.md §4.7's
// explicit T1 formula: p . g1 . g2 . h1 . h2 . w . F . R . ni.
package join

import (
	"github.com/epid-go/member/bitsupplier"
	"github.com/epid-go/member/codec"
	"github.com/epid-go/member/custodian"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
)

// CreateRequest runs the full join protocol against cust (which must
// already have its join secret f provisioned) and returns the
// (F, c, s) JoinRequest an issuer expects.
func CreateRequest(cust *custodian.Custodian, pub epidtypes.GroupPubKey, ni epidtypes.IssuerNonce, hashAlg field.HashAlg, bs bitsupplier.BitSupplier, userCtx any) (epidtypes.JoinRequest, error) {
	F, R, err := cust.JoinCommit(pub.H1, bs, userCtx)
	if err != nil {
		return epidtypes.JoinRequest{}, err
	}

	p := field.FrModulusBytes()
	transcript := codec.NewTranscriptWriter().
		WriteRaw(p[:]).
		WriteG1(field.G1Generator()).
		WriteG2(field.G2Generator()).
		WriteG1(pub.H1).
		WriteG1(pub.H2).
		WriteG2(pub.W).
		WriteG1(F).
		WriteG1(R).
		WriteRaw(ni[:]).
		Bytes()

	c, err := field.HashToFp(transcript, hashAlg)
	if err != nil {
		return epidtypes.JoinRequest{}, err
	}

	s, err := cust.JoinResponse(c)
	if err != nil {
		return epidtypes.JoinRequest{}, err
	}

	return epidtypes.JoinRequest{F: F, C: c, S: s}, nil
}
