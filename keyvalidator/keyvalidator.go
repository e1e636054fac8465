// Package keyvalidator implements the KeyValidator component of spec §2.1/
// §4.6: the membership-equation check a member runs over its own private
// key before trusting it, grounded on
// original_source/epid/member/src/assemble_privkey.c's
// EpidIsPrivKeyInGroup.
package keyvalidator

import (
	"github.com/epid-go/member/epiderr"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
)

// IsValid checks the EPID 2.0 membership equation of spec §4.6:
//
//	e(A, w * g2^x) == e(g1, g2) * e(h1, g2)^f * e(h2, g2)
//
// IsValid takes f explicitly so it can be run both by a custodian
// validating a just-joined key and by EpidAssemblePrivKey's caller
// validating credential+f together (assemble_privkey.c's
// EpidIsPrivKeyInGroup folds the same two steps: gid match, then this
// pairing check).
func IsValid(pub epidtypes.GroupPubKey, credential epidtypes.MembershipCredential, f field.Fp) (bool, error) {
	if !pub.Gid.Equal(credential.Gid) {
		return false, epiderr.GroupIdMismatch
	}
	if credential.A.IsIdentity() {
		return false, epiderr.BadArgumentCredential
	}

	g2 := field.G2Generator()
	g1 := field.G1Generator()

	wxg2 := pub.W.Add(g2.ScalarMul(credential.X))
	rhsPoint := g1.Add(pub.H1.ScalarMul(f)).Add(pub.H2).Neg()

	return field.PairingProductEqualsOne([]field.G1{credential.A, rhsPoint}, []field.G2{wxg2, g2})
}
