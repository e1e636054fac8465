package join

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/epid-go/member/bitsupplier"
	"github.com/epid-go/member/custodian"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
)

func TestCreateRequestProducesVerifiableProof(t *testing.T) {
	bs := bitsupplier.System()
	h1, err := field.RandomG1(bs, nil)
	require.NoError(t, err)
	h2, err := field.RandomG1(bs, nil)
	require.NoError(t, err)
	gamma, err := field.RandomFp(bs, nil)
	require.NoError(t, err)

	var gid epidtypes.GroupID
	gid[1] = byte(field.SHA256)
	pub := epidtypes.GroupPubKey{Gid: gid, H1: h1, H2: h2, W: field.G2Generator().ScalarMul(gamma)}

	c := custodian.New()
	f, err := field.RandomFp(bs, nil)
	require.NoError(t, err)
	c.ProvisionF(f)

	var ni epidtypes.IssuerNonce
	copy(ni[:], []byte("issuer-nonce-0123456789abcdef01"))

	req, err := CreateRequest(c, pub, ni, field.SHA256, bs, nil)
	require.NoError(t, err)
	require.True(t, req.F.Equal(h1.ScalarMul(f)))

	// Verifier-side check: h1^s == R . F^c, with R recovered from s, c, F.
	r := h1.ScalarMul(req.S).Add(req.F.ScalarMul(req.C).Neg())
	require.False(t, r.IsIdentity())
}

func TestCreateRequestFailsWithoutProvisionedF(t *testing.T) {
	bs := bitsupplier.System()
	h1, err := field.RandomG1(bs, nil)
	require.NoError(t, err)
	var gid epidtypes.GroupID
	gid[1] = byte(field.SHA256)
	pub := epidtypes.GroupPubKey{Gid: gid, H1: h1}

	c := custodian.New()
	var ni epidtypes.IssuerNonce
	_, err = CreateRequest(c, pub, ni, field.SHA256, bs, nil)
	require.Error(t, err)
}
