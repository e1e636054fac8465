package precomp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/epid-go/member/bitsupplier"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
)

func fixture(t *testing.T) (epidtypes.GroupPubKey, epidtypes.MembershipCredential) {
	t.Helper()
	bs := bitsupplier.System()
	h1, err := field.RandomG1(bs, nil)
	require.NoError(t, err)
	h2, err := field.RandomG1(bs, nil)
	require.NoError(t, err)
	gamma, err := field.RandomFp(bs, nil)
	require.NoError(t, err)
	a, err := field.RandomG1(bs, nil)
	require.NoError(t, err)

	var gid epidtypes.GroupID
	pub := epidtypes.GroupPubKey{Gid: gid, H1: h1, H2: h2, W: field.G2Generator().ScalarMul(gamma)}
	credential := epidtypes.MembershipCredential{Gid: gid, A: a}
	return pub, credential
}

func TestComputeIsDeterministic(t *testing.T) {
	pub, credential := fixture(t)
	c1, err := Compute(pub, credential)
	require.NoError(t, err)
	c2, err := Compute(pub, credential)
	require.NoError(t, err)
	require.True(t, c1.Equal(c2))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	pub, credential := fixture(t)
	c, err := Compute(pub, credential)
	require.NoError(t, err)

	buf := c.Encode()
	got, err := Decode(buf)
	require.NoError(t, err)
	require.True(t, c.Equal(got))
}

func TestStaleDetectsGidChange(t *testing.T) {
	pub, credential := fixture(t)
	c, err := Compute(pub, credential)
	require.NoError(t, err)

	require.False(t, c.Stale(pub.Gid))
	var other epidtypes.GroupID
	other[0] = 0xff
	require.True(t, c.Stale(other))
}
