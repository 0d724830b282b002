package main

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/jaxnet/coins/chainhash"
	"gitlab.com/jaxnet/coins/store"
)

func TestLoadRecordFromHex(t *testing.T) {
	var hash chainhash.Hash
	hash[0] = 0x01

	buf, err := loadRecord(options{Hex: "01020304"}, hash)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)
}

func TestLoadRecordRequiresHexOrDB(t *testing.T) {
	var hash chainhash.Hash
	_, err := loadRecord(options{}, hash)
	require.Error(t, err)
}

func TestLoadRecordFromDB(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Open(dir)
	require.NoError(t, err)

	var hash chainhash.Hash
	hash[0] = 0x42
	record := []byte{0x01, 0x64, 0x00, 0x00, 0x00, 0x03}
	require.NoError(t, s.Put(hash, record))
	require.NoError(t, s.Close())

	buf, err := loadRecord(options{DB: dir}, hash)
	require.NoError(t, err)
	require.Equal(t, record, buf)
}

func TestLoadRecordFromDBMissing(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	var hash chainhash.Hash
	hash[0] = 0x99
	_, err = loadRecord(options{DB: dir}, hash)
	require.Error(t, err)
}

func TestHashFromHexRoundTrip(t *testing.T) {
	var want chainhash.Hash
	want[0] = 0xAB
	want[31] = 0xCD

	h, err := hashFromHex(want.String())
	require.NoError(t, err)
	require.Equal(t, want, h)
	require.Equal(t, hex.EncodeToString(want[:]), hex.EncodeToString(h[:]))
}
