package main

import (
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"

	"github.com/epid-go/member/bitsupplier"
	"github.com/epid-go/member/epidtypes"
	"github.com/epid-go/member/field"
	"github.com/epid-go/member/member"
)

// issueTestGroup stands in for an issuer: it mints a fresh group and one
// member's private key the way original_source/epid/member/unittests'
// fixtures do, so this demo has something to provision without requiring
// a real issuer round-trip (issuer logic is explicitly out of scope, per
// spec §1).
func issueTestGroup(bs bitsupplier.BitSupplier) (epidtypes.GroupPubKey, epidtypes.PrivKey, error) {
	gamma, err := field.RandomFp(bs, nil)
	if err != nil {
		return epidtypes.GroupPubKey{}, epidtypes.PrivKey{}, err
	}
	f, err := field.RandomFp(bs, nil)
	if err != nil {
		return epidtypes.GroupPubKey{}, epidtypes.PrivKey{}, err
	}
	x, err := field.RandomFp(bs, nil)
	if err != nil {
		return epidtypes.GroupPubKey{}, epidtypes.PrivKey{}, err
	}
	h1, err := field.RandomG1(bs, nil)
	if err != nil {
		return epidtypes.GroupPubKey{}, epidtypes.PrivKey{}, err
	}
	h2, err := field.RandomG1(bs, nil)
	if err != nil {
		return epidtypes.GroupPubKey{}, epidtypes.PrivKey{}, err
	}

	g1 := field.G1Generator()
	g2 := field.G2Generator()
	w := g2.ScalarMul(gamma)

	denom := gamma.Add(x)
	inv, err := denom.Inverse()
	if err != nil {
		return epidtypes.GroupPubKey{}, epidtypes.PrivKey{}, err
	}
	a := g1.Add(h1.ScalarMul(f)).Add(h2).ScalarMul(inv)

	var gid epidtypes.GroupID
	gid[1] = byte(field.SHA256)

	pub := epidtypes.GroupPubKey{Gid: gid, H1: h1, H2: h2, W: w}
	priv := epidtypes.PrivKey{Gid: gid, A: a, X: x, F: f}
	return pub, priv, nil
}

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("cmd", "epidmember").Logger()
	config := NewConfig(os.Args[1:]...)

	bs := bitsupplier.System()
	pub, priv, err := issueTestGroup(bs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to issue test group")
	}

	ctx := member.New(member.Params{Rng: bs})
	if err := ctx.ProvisionKey(pub, priv, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to provision key")
	}

	var basename []byte
	if config.Basename != "" {
		basename = []byte(config.Basename)
		if err := ctx.RegisterBasename(basename); err != nil {
			log.Fatal().Err(err).Msg("failed to register basename")
		}
	}

	sig, status, err := ctx.Sign([]byte(config.Message), basename)
	if err != nil {
		log.Fatal().Err(err).Msg("sign failed")
	}

	log.Info().
		Str("status", status.String()).
		Str("signature", hexutil.Encode(sig.Encode())).
		Msg("produced EPID signature")

	ctx.Deinit()
}
