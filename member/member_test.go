package member

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/epid-go/member/bitsupplier"
	"github.com/epid-go/member/epiderr"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
	"github.com/epid-go/member/nvslot"
)

type groupFixture struct {
	pub  epidtypes.GroupPubKey
	priv epidtypes.PrivKey
}

// buildGroupFixture issues a full private key the way a group authority
// would: A = (g1 . h1^f . h2)^(1/(gamma+x)), matching spec §4.6's
// membership equation.
func buildGroupFixture(t *testing.T) groupFixture {
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
	priv := epidtypes.PrivKey{Gid: gid, A: a, X: x, F: f}
	return groupFixture{pub: pub, priv: priv}
}

func newTestContext() *Context {
	return New(Params{Rng: bitsupplier.System()})
}

func TestProvisionKeyThenSign(t *testing.T) {
	fx := buildGroupFixture(t)
	ctx := newTestContext()

	require.NoError(t, ctx.ProvisionKey(fx.pub, fx.priv, nil))

	sig, status, err := ctx.Sign([]byte("test1"), nil)
	require.NoError(t, err)
	require.Equal(t, epiderr.Success, status)
	require.False(t, sig.Sigma0.B.IsIdentity())
	require.True(t, sig.Sigma0.K.Equal(sig.Sigma0.B.ScalarMul(fx.priv.F)))
}

func TestProvisionKeyRejectsKeyNotInGroup(t *testing.T) {
	fx := buildGroupFixture(t)
	ctx := newTestContext()

	fx.priv.F = fx.priv.F.Add(field.FpFromUint64(1))
	err := ctx.ProvisionKey(fx.pub, fx.priv, nil)
	require.Equal(t, epiderr.KeyNotInGroup, err)
}

func TestSignBeforeProvisionIsOutOfSequence(t *testing.T) {
	ctx := newTestContext()
	_, _, err := ctx.Sign([]byte("msg"), nil)
	require.Equal(t, epiderr.OutOfSequence, err)
}

func TestSignWithUnregisteredBasenameFails(t *testing.T) {
	fx := buildGroupFixture(t)
	ctx := newTestContext()
	require.NoError(t, ctx.ProvisionKey(fx.pub, fx.priv, nil))

	_, _, err := ctx.Sign([]byte("msg"), []byte("unregistered"))
	require.Equal(t, epiderr.BasenameNotRegistered, err)
}

func TestRegisterBasenameThenSignSucceeds(t *testing.T) {
	fx := buildGroupFixture(t)
	ctx := newTestContext()
	require.NoError(t, ctx.ProvisionKey(fx.pub, fx.priv, nil))
	require.NoError(t, ctx.RegisterBasename([]byte("basename1")))

	_, status, err := ctx.Sign([]byte("msg0"), []byte("basename1"))
	require.NoError(t, err)
	require.Equal(t, epiderr.Success, status)
}

func TestClearBasenamesThenReregister(t *testing.T) {
	ctx := newTestContext()
	require.NoError(t, ctx.RegisterBasename([]byte("bsn")))
	require.Error(t, ctx.RegisterBasename([]byte("bsn")))
	ctx.ClearBasenames()
	require.NoError(t, ctx.RegisterBasename([]byte("bsn")))
}

func TestAddPresigsThenSignConsumesOne(t *testing.T) {
	fx := buildGroupFixture(t)
	ctx := newTestContext()
	require.NoError(t, ctx.ProvisionKey(fx.pub, fx.priv, nil))

	require.NoError(t, ctx.AddPresigs(2))
	require.Equal(t, 2, ctx.NumPresigs())

	_, _, err := ctx.Sign([]byte("msg"), nil)
	require.NoError(t, err)
	require.Equal(t, 1, ctx.NumPresigs())
}

func TestCreateJoinRequestRequiresF(t *testing.T) {
	fx := buildGroupFixture(t)
	ctx := newTestContext()

	var ni epidtypes.IssuerNonce
	_, err := ctx.CreateJoinRequest(fx.pub, ni)
	require.Equal(t, epiderr.OutOfSequence, err)
}

func TestSetSigRLRejectsMismatchedGid(t *testing.T) {
	fx := buildGroupFixture(t)
	ctx := newTestContext()
	require.NoError(t, ctx.ProvisionKey(fx.pub, fx.priv, nil))

	var wrongGid epidtypes.GroupID
	wrongGid[0] = 0xaa
	err := ctx.SetSigRL(&epidtypes.SigRL{Gid: wrongGid, Version: 1})
	require.Equal(t, epiderr.GroupIdMismatch, err)
}

func TestSetSigRLRejectsStaleVersion(t *testing.T) {
	fx := buildGroupFixture(t)
	ctx := newTestContext()
	require.NoError(t, ctx.ProvisionKey(fx.pub, fx.priv, nil))

	require.NoError(t, ctx.SetSigRL(&epidtypes.SigRL{Gid: fx.pub.Gid, Version: 2}))
	err := ctx.SetSigRL(&epidtypes.SigRL{Gid: fx.pub.Gid, Version: 2})
	require.Equal(t, epiderr.VersionMismatch, err)
}

func TestSetHashAlgOnlyHonorsGidEncodedValue(t *testing.T) {
	fx := buildGroupFixture(t)
	ctx := newTestContext()
	require.NoError(t, ctx.ProvisionKey(fx.pub, fx.priv, nil))

	require.NoError(t, ctx.SetHashAlg(field.SHA256))
	err := ctx.SetHashAlg(field.SHA512)
	require.Equal(t, epiderr.OperationNotSupported, err)
}

func TestStartupFailsWithoutPriorState(t *testing.T) {
	ctx := newTestContext()
	err := ctx.Startup()
	require.Equal(t, epiderr.OutOfSequence, err)
}

func TestProvisionKeyPersistsAndStartupLoads(t *testing.T) {
	fx := buildGroupFixture(t)
	store := nvslot.NewMemory()
	ctx := New(Params{Rng: bitsupplier.System(), NVStore: store, NVIndex: 7})
	require.NoError(t, ctx.ProvisionKey(fx.pub, fx.priv, nil))

	// A fresh context only regains the public credential from the NV slot;
	// f itself is never persisted, so it still cannot sign until f is
	// reprovisioned (spec §3: f lives only in SecretCustodian).
	fresh := New(Params{Rng: bitsupplier.System(), NVStore: store, NVIndex: 7})
	require.NoError(t, fresh.Startup())

	_, _, err := fresh.Sign([]byte("msg"), nil)
	require.Equal(t, epiderr.OutOfSequence, err)
}

func TestDeinitZeroizesSecrets(t *testing.T) {
	fx := buildGroupFixture(t)
	ctx := newTestContext()
	require.NoError(t, ctx.ProvisionKey(fx.pub, fx.priv, nil))

	ctx.Deinit()
	_, _, err := ctx.Sign([]byte("msg"), nil)
	require.Equal(t, epiderr.OutOfSequence, err)
}

func TestWritePrecompIsDeterministic(t *testing.T) {
	fx := buildGroupFixture(t)
	ctx := newTestContext()
	credential := epidtypes.MembershipCredential{Gid: fx.priv.Gid, A: fx.priv.A, X: fx.priv.X}

	c1, err := ctx.WritePrecomp(fx.pub, credential)
	require.NoError(t, err)
	c2, err := ctx.WritePrecomp(fx.pub, credential)
	require.NoError(t, err)
	require.True(t, c1.Equal(c2))
}
