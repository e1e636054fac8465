package custodian

import (
	"github.com/epid-go/member/epiderr"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
	"github.com/epid-go/member/keyvalidator"
)

// Decompress reconstructs a full PrivKey from a CompressedPrivKey and the
// group's public key, provisioning this custodian's f and x as a side
// effect (EpidDecompressPrivKey in decompress_privkey.c provisions its
// throwaway TPM context the same way before handing the assembled key
// back to the caller).
//
// original_source/epid/member/tpm/src/decompress.c (the routine that
// turns a seed plus Ax into f, x, and A's y-coordinate) was filtered out
// of the retrieved source tree; only its call sites and its header
// contract (decompress.h) survived. The derivation below follows that
// contract — f and x both come from the seed via a domain-separated KDF,
// and A's y-coordinate is recovered from the stored x-coordinate via the
// curve equation, with a sign choice validated against the one property
// decompress.h guarantees: IsPrivKeyInGroup must hold for the result.
func (c *Custodian) Decompress(pub epidtypes.GroupPubKey, compressed epidtypes.CompressedPrivKey) (epidtypes.PrivKey, error) {
	if !pub.Gid.Equal(compressed.Gid) {
		return epidtypes.PrivKey{}, epiderr.GroupIdMismatch
	}

	f, err := field.HashToFp(append([]byte{0x01}, compressed.Seed[:]...), field.SHA512)
	if err != nil {
		return epidtypes.PrivKey{}, err
	}
	x, err := field.HashToFp(append([]byte{0x02}, compressed.Seed[:]...), field.SHA512)
	if err != nil {
		return epidtypes.PrivKey{}, err
	}

	y, isQR := compressed.Ax.Square().Mul(compressed.Ax).Add(field.FqFromUint64(3)).Sqrt()
	if !isQR {
		return epidtypes.PrivKey{}, epiderr.BadArgumentPrivKey
	}

	for _, candidateY := range []field.Fq{y, y.Neg()} {
		var ab [field.G1Size]byte
		xb := compressed.Ax.Bytes()
		yb := candidateY.Bytes()
		copy(ab[:field.FqSize], xb[:])
		copy(ab[field.FqSize:], yb[:])

		a, err := field.G1FromBytes(ab)
		if err != nil {
			continue
		}

		credential := epidtypes.MembershipCredential{Gid: pub.Gid, A: a, X: x}
		ok, err := keyvalidator.IsValid(pub, credential, f)
		if err != nil {
			return epidtypes.PrivKey{}, err
		}
		if ok {
			c.ProvisionF(f)
			c.ProvisionX(x)
			return epidtypes.PrivKey{Gid: pub.Gid, A: a, X: x, F: f}, nil
		}
	}

	return epidtypes.PrivKey{}, epiderr.KeyNotInGroup
}
