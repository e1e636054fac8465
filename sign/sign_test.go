package sign

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/epid-go/member/bitsupplier"
	"github.com/epid-go/member/custodian"
	"github.com/epid-go/member/epiderr"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
	"github.com/epid-go/member/precomp"
	"github.com/epid-go/member/presig"
)

type fixture struct {
	pub        epidtypes.GroupPubKey
	credential epidtypes.MembershipCredential
	f          field.Fp
	cache      precomp.Cache
}

func buildFixture(t *testing.T) fixture {
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
	a := g1.Add(h1.ScalarMul(f)).Add(h2).ScalarMul(inv)

	var gid epidtypes.GroupID
	gid[1] = byte(field.SHA256)
	pub := epidtypes.GroupPubKey{Gid: gid, H1: h1, H2: h2, W: w}
	credential := epidtypes.MembershipCredential{Gid: gid, A: a, X: x}

	cache, err := precomp.Compute(pub, credential)
	require.NoError(t, err)

	return fixture{pub: pub, credential: credential, f: f, cache: cache}
}

func TestSignProducesWellFormedBasicSignature(t *testing.T) {
	fx := buildFixture(t)
	cust := custodian.New()
	cust.ProvisionF(fx.f)
	cust.ProvisionX(fx.credential.X)
	var pool presig.Pool

	sig, revoked, err := Sign(cust, &pool, fx.credential, fx.f, fx.pub.H2, fx.cache, fx.pub, nil, nil, []byte("test1"), field.SHA256, bitsupplier.System(), nil)
	require.NoError(t, err)
	require.False(t, revoked)
	require.False(t, sig.Sigma0.B.IsIdentity())
	require.True(t, sig.Sigma0.K.Equal(sig.Sigma0.B.ScalarMul(fx.f)))
	require.Empty(t, sig.NrProofs)
}

func TestSignWithBasenameIsDeterministicAcrossCalls(t *testing.T) {
	fx := buildFixture(t)
	cust := custodian.New()
	cust.ProvisionF(fx.f)
	cust.ProvisionX(fx.credential.X)
	var pool1, pool2 presig.Pool

	bsn := []byte("basename1")

	sig1, _, err := Sign(cust, &pool1, fx.credential, fx.f, fx.pub.H2, fx.cache, fx.pub, nil, bsn, []byte("msg0"), field.SHA256, bitsupplier.System(), nil)
	require.NoError(t, err)

	sig2, _, err := Sign(cust, &pool2, fx.credential, fx.f, fx.pub.H2, fx.cache, fx.pub, nil, bsn, []byte("msg0"), field.SHA256, bitsupplier.System(), nil)
	require.NoError(t, err)

	// K is deterministic for a fixed (gid, basename, f): B is derived purely
	// from HashToG1(basename), so K = B^f is identical across independent
	// signing sessions even though every other value is freshly randomized.
	require.True(t, sig1.Sigma0.B.Equal(sig2.Sigma0.B))
	require.True(t, sig1.Sigma0.K.Equal(sig2.Sigma0.K))
}

func TestSignDetectsRevokedEntry(t *testing.T) {
	fx := buildFixture(t)
	cust := custodian.New()
	cust.ProvisionF(fx.f)
	cust.ProvisionX(fx.credential.X)
	var pool presig.Pool

	bsn := []byte("bsn0")
	priorSig, _, err := Sign(cust, &pool, fx.credential, fx.f, fx.pub.H2, fx.cache, fx.pub, nil, bsn, []byte("earlier msg"), field.SHA256, bitsupplier.System(), nil)
	require.NoError(t, err)

	sigRL := &epidtypes.SigRL{
		Gid:     fx.pub.Gid,
		Version: 1,
		Entries: []epidtypes.SigRLEntry{{B: priorSig.Sigma0.B, K: priorSig.Sigma0.K}},
	}

	sig, revoked, err := Sign(cust, &pool, fx.credential, fx.f, fx.pub.H2, fx.cache, fx.pub, sigRL, bsn, []byte("test1"), field.SHA256, bitsupplier.System(), nil)
	require.NoError(t, err)
	require.True(t, revoked)
	require.Len(t, sig.NrProofs, 1)
	require.True(t, sig.NrProofs[0].T.IsIdentity())
}

func TestSignWithNonMatchingSigRLDoesNotFlagRevoked(t *testing.T) {
	fx := buildFixture(t)
	cust := custodian.New()
	cust.ProvisionF(fx.f)
	cust.ProvisionX(fx.credential.X)
	var pool presig.Pool

	entries := make([]epidtypes.SigRLEntry, 5)
	for i := range entries {
		b, err := field.RandomG1(bitsupplier.System(), nil)
		require.NoError(t, err)
		unrelatedF, err := field.RandomFp(bitsupplier.System(), nil)
		require.NoError(t, err)
		entries[i] = epidtypes.SigRLEntry{B: b, K: b.ScalarMul(unrelatedF)}
	}
	sigRL := &epidtypes.SigRL{Gid: fx.pub.Gid, Version: 1, Entries: entries}

	sig, revoked, err := Sign(cust, &pool, fx.credential, fx.f, fx.pub.H2, fx.cache, fx.pub, sigRL, []byte("basename1"), []byte("test1"), field.SHA256, bitsupplier.System(), nil)
	require.NoError(t, err)
	require.False(t, revoked)
	require.Len(t, sig.NrProofs, 5)

	encoded := sig.Encode()
	require.Equal(t, epidtypes.EpidSignatureHeaderSize+epidtypes.BasicSignatureSize+5*epidtypes.NrProofSize, len(encoded))
}

func TestSignFailsWithoutProvisionedKey(t *testing.T) {
	fx := buildFixture(t)
	cust := custodian.New()
	var pool presig.Pool

	_, _, err := Sign(cust, &pool, fx.credential, fx.f, fx.pub.H2, fx.cache, fx.pub, nil, nil, []byte("msg"), field.SHA256, bitsupplier.System(), nil)
	require.Equal(t, epiderr.BadArgumentPrivKey, err)
}
