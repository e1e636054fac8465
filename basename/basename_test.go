package basename

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndContains(t *testing.T) {
	var r Registry
	require.False(t, r.Contains([]byte("bsn1")))
	require.NoError(t, r.Register([]byte("bsn1")))
	require.True(t, r.Contains([]byte("bsn1")))
	require.Equal(t, 1, r.Len())
}

func TestRegisterRejectsEmpty(t *testing.T) {
	var r Registry
	require.Error(t, r.Register(nil))
	require.Error(t, r.Register([]byte{}))
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	var r Registry
	require.NoError(t, r.Register([]byte("bsn1")))
	require.Error(t, r.Register([]byte("bsn1")))
}

func TestClearThenReregisterSucceeds(t *testing.T) {
	var r Registry
	require.NoError(t, r.Register([]byte("bsn1")))
	r.Clear()
	require.Equal(t, 0, r.Len())
	require.NoError(t, r.Register([]byte("bsn1")))
}

func TestNewWithCapEnforcesLimit(t *testing.T) {
	r := NewWithCap(2)
	require.NoError(t, r.Register([]byte("a")))
	require.NoError(t, r.Register([]byte("b")))
	err := r.Register([]byte("c"))
	require.Error(t, err)
}

func TestHugeBasename(t *testing.T) {
	huge := make([]byte, 1<<20)
	for i := range huge {
		huge[i] = byte(i)
	}
	var r Registry
	require.NoError(t, r.Register(huge))
	require.True(t, r.Contains(bytes.Clone(huge)))
}
