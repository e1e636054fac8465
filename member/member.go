// Package member implements the MemberContext component of spec
// §2.1/§4.9: the public orchestration layer that wires FieldMath, Codec,
// SecretCustodian, BasenameRegistry, PresigPool, Precomp, KeyValidator,
// JoinProtocol, and SignProtocol into the operations an embedder calls.
//
// Grounded on the teacher repo's orchestration-struct style
// (provers/relayer.go's Relayer, provers/listener.go's Listener): a
// single struct holding its collaborators as fields, constructed with a
// New* function, exposing plain methods that log each step through a
// zerolog logger, which New creates at zerolog.Disabled.
package member

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/epid-go/member/basename"
	"github.com/epid-go/member/bitsupplier"
	"github.com/epid-go/member/custodian"
	"github.com/epid-go/member/epiderr"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
	"github.com/epid-go/member/join"
	"github.com/epid-go/member/keyvalidator"
	"github.com/epid-go/member/nvslot"
	"github.com/epid-go/member/precomp"
	"github.com/epid-go/member/presig"
	"github.com/epid-go/member/sign"
)

// Params configures a new Context (spec §4.9 "Construction"). Rng is
// required unless a hardware-bound back-end supplies its own; RngUserCtx
// is passed through to every BitSupplier call unchanged.
type Params struct {
	Rng        bitsupplier.BitSupplier
	RngUserCtx any

	MaxSigRLEntries int
	MaxBasenames    int
	MaxPrecompSig   int

	// NVStore, if set, is used for startup/provision_key persistence.
	// Left nil, the context never persists state across restarts.
	NVStore nvslot.Store
	NVIndex uint32
}

// Context is the public orchestration layer a member-side application
// drives. It owns its SecretCustodian, BasenameRegistry, PresigPool, and
// Precomp cache exclusively; the SigRL it holds is a borrow (spec §3).
type Context struct {
	log zerolog.Logger

	params Params

	hasPubKey bool
	pubKey    epidtypes.GroupPubKey

	hasCredential bool
	credential    epidtypes.MembershipCredential

	hashAlg field.HashAlg

	cust    *custodian.Custodian
	names   *basename.Registry
	presigs *presig.Pool
	cache   precomp.Cache

	sigRL *epidtypes.SigRL
}

// New constructs an empty, unprovisioned Context, per spec §4.9:
// "Construction does not require a group; provisioning is a separate
// step."
func New(params Params) *Context {
	return &Context{
		log:     zerolog.New(os.Stderr).Level(zerolog.Disabled).With().Timestamp().Str("component", "member").Logger(),
		params:  params,
		cust:    custodian.New(),
		names:   basename.NewWithCap(params.MaxBasenames),
		presigs: &presig.Pool{},
	}
}

// provisionCommon runs the shared tail of every provision_* operation:
// validate the assembled key against the membership equation, adopt the
// group and credential, refresh the precomp cache, and persist to the NV
// slot if configured.
func (c *Context) provisionCommon(pub epidtypes.GroupPubKey, credential epidtypes.MembershipCredential, f field.Fp, precomputed *precomp.Cache) error {
	ok, err := keyvalidator.IsValid(pub, credential, f)
	if err != nil {
		return err
	}
	if !ok {
		c.log.Warn().Msg("provisioned key failed membership check")
		return epiderr.KeyNotInGroup
	}

	hashAlg, err := pub.Gid.HashAlg()
	if err != nil {
		return err
	}

	c.pubKey = pub
	c.hasPubKey = true
	c.credential = credential
	c.hasCredential = true
	c.hashAlg = hashAlg

	if precomputed != nil {
		c.cache = *precomputed
	} else {
		cache, err := precomp.Compute(pub, credential)
		if err != nil {
			return err
		}
		c.cache = cache
	}

	if c.params.NVStore != nil {
		if err := c.persist(); err != nil {
			return err
		}
	}

	c.log.Info().Msg("key provisioned")
	return nil
}

// persist writes pubKey||credential to the configured NV slot, defining
// it first if this is the first write (spec §5: "write-after-write at
// the same index is allowed").
func (c *Context) persist() error {
	pk := c.pubKey.Encode()
	cr := c.credential.Encode()
	buf := make([]byte, 0, len(pk)+len(cr))
	buf = append(buf, pk[:]...)
	buf = append(buf, cr[:]...)

	if err := c.params.NVStore.Define(c.params.NVIndex, len(buf)); err != nil && err != epiderr.Duplicate {
		return err
	}
	return c.params.NVStore.Write(c.params.NVIndex, buf)
}

// ProvisionKey validates and stores a full (uncompressed) private key
// (spec §4.9 provision_key).
func (c *Context) ProvisionKey(pub epidtypes.GroupPubKey, priv epidtypes.PrivKey, precomputed *precomp.Cache) error {
	if !pub.Gid.Equal(priv.Gid) {
		return epiderr.GroupIdMismatch
	}
	credential := epidtypes.MembershipCredential{Gid: priv.Gid, A: priv.A, X: priv.X}
	c.cust.ProvisionF(priv.F)
	c.cust.ProvisionX(priv.X)
	return c.provisionCommon(pub, credential, priv.F, precomputed)
}

// ProvisionCompressed decompresses cpriv via the custodian and then
// provisions it exactly as ProvisionKey (spec §4.9 provision_compressed).
func (c *Context) ProvisionCompressed(pub epidtypes.GroupPubKey, cpriv epidtypes.CompressedPrivKey, precomputed *precomp.Cache) error {
	priv, err := c.cust.Decompress(pub, cpriv)
	if err != nil {
		return err
	}
	credential := epidtypes.MembershipCredential{Gid: priv.Gid, A: priv.A, X: priv.X}
	return c.provisionCommon(pub, credential, priv.F, precomputed)
}

// ProvisionCredential validates credential against the custodian's
// already-present join secret f (spec §4.9 provision_credential).
func (c *Context) ProvisionCredential(pub epidtypes.GroupPubKey, credential epidtypes.MembershipCredential, precomputed *precomp.Cache) error {
	if !c.cust.HasF() {
		return epiderr.OutOfSequence
	}
	c.cust.ProvisionX(credential.X)
	f, err := c.cust.PeekF()
	if err != nil {
		return err
	}
	return c.provisionCommon(pub, credential, f, precomputed)
}

// Startup loads a previously persisted (GroupPubKey, MembershipCredential)
// pair from the NV slot if one is configured and has content (spec §4.9
// startup). It fails with OutOfSequence if neither the NV slot nor a
// prior provision call supplied a credential.
func (c *Context) Startup() error {
	if c.params.NVStore != nil {
		if raw, err := c.params.NVStore.Read(c.params.NVIndex); err == nil {
			if err := c.loadPersisted(raw); err != nil {
				return err
			}
			return nil
		}
	}
	if !c.hasCredential {
		return epiderr.OutOfSequence
	}
	return nil
}

func (c *Context) loadPersisted(raw []byte) error {
	if len(raw) != epidtypes.GroupPubKeySize+epidtypes.MembershipCredentialSize {
		return epiderr.BadArgumentContext
	}
	var pkb [epidtypes.GroupPubKeySize]byte
	copy(pkb[:], raw[:epidtypes.GroupPubKeySize])
	pub, err := epidtypes.DecodeGroupPubKey(pkb)
	if err != nil {
		return err
	}

	var crb [epidtypes.MembershipCredentialSize]byte
	copy(crb[:], raw[epidtypes.GroupPubKeySize:])
	credential, err := epidtypes.DecodeMembershipCredential(crb)
	if err != nil {
		return err
	}

	hashAlg, err := pub.Gid.HashAlg()
	if err != nil {
		return err
	}

	c.pubKey = pub
	c.hasPubKey = true
	c.credential = credential
	c.hasCredential = true
	c.hashAlg = hashAlg

	// x rides along with the persisted credential (spec §3's data model
	// lists it as part of MembershipCredential, not as custodian-only like
	// f), so it is safe to restore here; f itself was never written to the
	// NV slot and still needs a separate provisioning call before this
	// context can sign.
	c.cust.ProvisionX(credential.X)

	cache, err := precomp.Compute(pub, credential)
	if err != nil {
		return err
	}
	c.cache = cache
	return nil
}

// SetHashAlg honors H only if it matches the hash algorithm encoded in
// the active group's gid (spec §4.9 set_hash_alg).
func (c *Context) SetHashAlg(h field.HashAlg) error {
	if !c.hasPubKey {
		return epiderr.OutOfSequence
	}
	want, err := c.pubKey.Gid.HashAlg()
	if err != nil {
		return err
	}
	if h != want {
		return epiderr.OperationNotSupported
	}
	c.hashAlg = h
	return nil
}

// SetSigRL installs rl as the active (borrowed) revocation list, per spec
// §4.9 set_sig_rl / §5's SigRL borrow rules.
func (c *Context) SetSigRL(rl *epidtypes.SigRL) error {
	if !c.hasPubKey {
		return epiderr.OutOfSequence
	}
	if !rl.Gid.Equal(c.pubKey.Gid) {
		return epiderr.GroupIdMismatch
	}
	if c.params.MaxSigRLEntries > 0 && len(rl.Entries) > c.params.MaxSigRLEntries {
		return epiderr.MaxEntries
	}
	if c.sigRL != nil && rl.Version <= c.sigRL.Version {
		return epiderr.VersionMismatch
	}
	c.sigRL = rl
	return nil
}

// RegisterBasename adds bs to the registry (spec §4.9/§4.3).
func (c *Context) RegisterBasename(bs []byte) error {
	return c.names.Register(bs)
}

// ClearBasenames empties the registry (spec §4.9/§4.3).
func (c *Context) ClearBasenames() {
	c.names.Clear()
}

// AddPresigs computes and pushes n presignatures (spec §4.9/§4.4).
func (c *Context) AddPresigs(n int) error {
	if !c.cust.HasKey() {
		return epiderr.OutOfSequence
	}
	if c.params.MaxPrecompSig > 0 && c.presigs.Num()+n > c.params.MaxPrecompSig {
		return epiderr.MaxEntries
	}
	return c.presigs.Add(n, c.credential, c.mustF(), c.pubKey.H2, c.cache, c.params.Rng, c.params.RngUserCtx)
}

// NumPresigs reports how many presignatures are ready without computing
// any (spec §4.9/§4.4).
func (c *Context) NumPresigs() int {
	return c.presigs.Num()
}

func (c *Context) mustF() field.Fp {
	f, _ := c.cust.PeekF()
	return f
}

// CreateJoinRequest runs the join protocol against pub using ni, per spec
// §4.9/§4.7. A join for a group with a different hash algorithm does not
// disturb any already-provisioned credential.
func (c *Context) CreateJoinRequest(pub epidtypes.GroupPubKey, ni epidtypes.IssuerNonce) (epidtypes.JoinRequest, error) {
	if !c.cust.HasF() {
		return epidtypes.JoinRequest{}, epiderr.OutOfSequence
	}
	hashAlg, err := pub.Gid.HashAlg()
	if err != nil {
		return epidtypes.JoinRequest{}, err
	}
	return join.CreateRequest(c.cust, pub, ni, hashAlg, c.params.Rng, c.params.RngUserCtx)
}

// Sign produces a complete EpidSignature over msg, optionally under a
// registered basename, against the currently active SigRL (spec
// §4.9/§4.8). A non-nil basename that was not previously registered fails
// with BasenameNotRegistered.
func (c *Context) Sign(msg []byte, basenameBytes []byte) (epidtypes.EpidSignature, epiderr.Status, error) {
	if !c.hasCredential || !c.cust.HasKey() {
		return epidtypes.EpidSignature{}, 0, epiderr.OutOfSequence
	}
	if basenameBytes != nil && !c.names.Contains(basenameBytes) {
		return epidtypes.EpidSignature{}, 0, epiderr.BasenameNotRegistered
	}

	sig, revoked, err := sign.Sign(c.cust, c.presigs, c.credential, c.mustF(), c.pubKey.H2, c.cache, c.pubKey, c.sigRL, basenameBytes, msg, c.hashAlg, c.params.Rng, c.params.RngUserCtx)
	if err != nil {
		return epidtypes.EpidSignature{}, 0, err
	}
	if revoked {
		return sig, epiderr.SigRevokedInSigRl, nil
	}
	return sig, epiderr.Success, nil
}

// WritePrecomp exports the §4.5 pairing quartet for (pub, credential),
// recomputing it fresh rather than reusing the context's own cache, so a
// caller can export precomp for a key it has not provisioned into this
// context (spec §4.9 write_precomp).
func (c *Context) WritePrecomp(pub epidtypes.GroupPubKey, credential epidtypes.MembershipCredential) (precomp.Cache, error) {
	return precomp.Compute(pub, credential)
}

// Deinit zeroizes all secret state, per spec §4.9/§5's teardown discipline.
func (c *Context) Deinit() {
	c.cust.Zeroize()
	c.presigs = &presig.Pool{}
	c.names.Clear()
	c.hasPubKey = false
	c.hasCredential = false
	c.log.Info().Msg("context deinitialized")
}
