package keyvalidator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/epid-go/member/bitsupplier"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
)

// buildGroup assembles a self-consistent (GroupPubKey, MembershipCredential, f)
// triple the way an issuer would: gamma is the group's master secret, A is
// assembled as (g1 . h1^f . h2)^(1/(gamma+x)) so the membership equation
// of spec §4.6 holds by construction.
func buildGroup(t *testing.T) (epidtypes.GroupPubKey, epidtypes.MembershipCredential, field.Fp) {
	t.Helper()
	bs := bitsupplier.System()

	gamma, err := field.RandomFp(bs, nil)
	require.NoError(t, err)
	f, err := field.RandomFp(bs, nil)
	require.NoError(t, err)
	x, err := field.RandomFp(bs, nil)
	require.NoError(t, err)

	h1, err := field.RandomG1(bs, nil)
	require.NoError(t, err)
	h2, err := field.RandomG1(bs, nil)
	require.NoError(t, err)

	g1 := field.G1Generator()
	g2 := field.G2Generator()
	w := g2.ScalarMul(gamma)

	denom := gamma.Add(x)
	inv, err := denom.Inverse()
	require.NoError(t, err)
	base := g1.Add(h1.ScalarMul(f)).Add(h2)
	a := base.ScalarMul(inv)

	var gid epidtypes.GroupID
	gid[1] = byte(field.SHA256)

	pub := epidtypes.GroupPubKey{Gid: gid, H1: h1, H2: h2, W: w}
	credential := epidtypes.MembershipCredential{Gid: gid, A: a, X: x}
	return pub, credential, f
}

func TestIsValidAcceptsWellFormedKey(t *testing.T) {
	pub, credential, f := buildGroup(t)
	ok, err := IsValid(pub, credential, f)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIsValidRejectsWrongF(t *testing.T) {
	pub, credential, f := buildGroup(t)
	wrongF := f.Add(field.FpFromUint64(1))
	ok, err := IsValid(pub, credential, wrongF)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIsValidRejectsGidMismatch(t *testing.T) {
	pub, credential, f := buildGroup(t)
	credential.Gid[0] ^= 0xff
	_, err := IsValid(pub, credential, f)
	require.Error(t, err)
}

func TestIsValidRejectsIdentityA(t *testing.T) {
	pub, credential, f := buildGroup(t)
	credential.A = field.G1Identity()
	_, err := IsValid(pub, credential, f)
	require.Error(t, err)
}
