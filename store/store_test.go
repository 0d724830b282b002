package store

import (
	"bytes"
	"testing"

	"gitlab.com/jaxnet/coins/chainhash"

	"github.com/stretchr/testify/require"
)

func TestLevelDBStorePutGetDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	var hash chainhash.Hash
	hash[0] = 0x42

	_, ok, err := s.Get(hash)
	require.NoError(t, err)
	require.False(t, ok)

	record := []byte{0x01, 0x64, 0x00, 0x00, 0x00, 0x03}
	require.NoError(t, s.Put(hash, record))

	got, ok, err := s.Get(hash)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, bytes.Equal(record, got))

	require.NoError(t, s.Delete(hash))
	_, ok, err = s.Get(hash)
	require.NoError(t, err)
	require.False(t, ok)
}
