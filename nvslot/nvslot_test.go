package nvslot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefineWriteReadUndefine(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Define(0, 4))

	_, err := m.Read(0)
	require.Error(t, err, "read before write must fail")

	require.NoError(t, m.Write(0, []byte{1, 2, 3, 4}))
	got, err := m.Read(0)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, got)

	m.Undefine(0)
	_, err = m.Read(0)
	require.Error(t, err)
}

func TestDefineRejectsDuplicate(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Define(0, 4))
	require.Error(t, m.Define(0, 4))
}

func TestWriteAfterWriteAllowed(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Define(0, 3))
	require.NoError(t, m.Write(0, []byte{1, 2, 3}))
	require.NoError(t, m.Write(0, []byte{4, 5, 6}))

	got, err := m.Read(0)
	require.NoError(t, err)
	require.Equal(t, []byte{4, 5, 6}, got)
}

func TestWriteRejectsWrongSize(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Define(0, 4))
	require.Error(t, m.Write(0, []byte{1, 2, 3}))
}

func TestWriteWithoutDefineFails(t *testing.T) {
	m := NewMemory()
	require.Error(t, m.Write(0, []byte{1}))
}
