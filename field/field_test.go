package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFpRoundTrip(t *testing.T) {
	f := FpFromUint64(424242)
	b := f.Bytes()
	got, err := FpFromBytes(b)
	require.NoError(t, err)
	require.True(t, f.Equal(got))
}

func TestFpRejectsNonCanonical(t *testing.T) {
	var b [FpSize]byte
	for i := range b {
		b[i] = 0xff
	}
	_, err := FpFromBytes(b)
	require.Error(t, err)
}

func TestFpArithmetic(t *testing.T) {
	a := FpFromUint64(7)
	b := FpFromUint64(5)
	require.True(t, a.Add(b).Equal(FpFromUint64(12)))
	require.True(t, a.Sub(b).Equal(FpFromUint64(2)))
	require.True(t, a.Mul(b).Equal(FpFromUint64(35)))

	inv, err := a.Inverse()
	require.NoError(t, err)
	require.True(t, a.Mul(inv).Equal(FpOne()))
}

func TestG1ScalarMulAndRoundTrip(t *testing.T) {
	g := G1Generator()
	three := FpFromUint64(3)
	p := g.ScalarMul(three)

	b := p.Bytes()
	got, err := G1FromBytes(b)
	require.NoError(t, err)
	require.True(t, p.Equal(got))

	// 3*g == g+g+g
	sum := g.Add(g).Add(g)
	require.True(t, p.Equal(sum))
}

func TestG1IdentityIsIdentity(t *testing.T) {
	require.True(t, G1Identity().IsIdentity())
	require.False(t, G1Generator().IsIdentity())
}

func TestG2RoundTrip(t *testing.T) {
	g := G2Generator()
	five := FpFromUint64(5)
	p := g.ScalarMul(five)
	b := p.Bytes()
	got, err := G2FromBytes(b)
	require.NoError(t, err)
	require.True(t, p.Equal(got))
}

func TestPairingBilinear(t *testing.T) {
	a := FpFromUint64(4)
	b := FpFromUint64(6)

	lhs, err := Pairing(G1Generator().ScalarMul(a), G2Generator().ScalarMul(b))
	require.NoError(t, err)

	rhs, err := Pairing(G1Generator(), G2Generator())
	require.NoError(t, err)
	rhs = rhs.Exp(a.Mul(b))

	require.True(t, lhs.Equal(rhs))
}

func TestGTRoundTrip(t *testing.T) {
	gt, err := Pairing(G1Generator(), G2Generator())
	require.NoError(t, err)
	b := gt.Bytes()
	got, err := GTFromBytes(b)
	require.NoError(t, err)
	require.True(t, gt.Equal(got))
}

func TestHashToG1Deterministic(t *testing.T) {
	p1, c1, err := HashToG1([]byte("basename1"), SHA256)
	require.NoError(t, err)
	require.False(t, p1.IsIdentity())

	p2, c2, err := HashToG1([]byte("basename1"), SHA256)
	require.NoError(t, err)
	require.Equal(t, c1, c2)
	require.True(t, p1.Equal(p2))

	p3, _, err := HashToG1([]byte("basename2"), SHA256)
	require.NoError(t, err)
	require.False(t, p1.Equal(p3))
}

func TestParseHashAlgRejectsReserved(t *testing.T) {
	for tag := byte(4); tag <= 15; tag++ {
		_, err := ParseHashAlg(tag)
		require.Error(t, err)
	}
}
