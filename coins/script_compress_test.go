package coins

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"
)

func buildP2PKH(hash []byte) []byte {
	s := make([]byte, 0, 25)
	s = append(s, opDup, opHash160, opData20)
	s = append(s, hash...)
	s = append(s, opEqualVerify, opCheckSig)
	return s
}

func buildP2SH(hash []byte) []byte {
	s := make([]byte, 0, 23)
	s = append(s, opHash160, opData20)
	s = append(s, hash...)
	s = append(s, opEqual)
	return s
}

func buildRawScript(n int) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = byte(i)
	}
	return s
}

func TestScriptCompressRoundTrip(t *testing.T) {
	hash20 := bytes.Repeat([]byte{0xAB}, 20)

	privKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	pubKey := privKey.PubKey()

	compressedPK := append([]byte{opData33}, pubKey.SerializeCompressed()...)
	compressedPK = append(compressedPK, opCheckSig)

	uncompressedPK := append([]byte{opData65}, pubKey.SerializeUncompressed()...)
	uncompressedPK = append(uncompressedPK, opCheckSig)

	tests := []struct {
		name   string
		script []byte
	}{
		{"p2pkh", buildP2PKH(hash20)},
		{"p2sh", buildP2SH(hash20)},
		{"p2pk compressed", compressedPK},
		{"p2pk uncompressed", uncompressedPK},
		{"raw short script", buildRawScript(5)},
		{"raw long script needing multi-byte varint", buildRawScript(200)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			size := compressedScriptSize(tc.script)
			buf := make([]byte, size)
			n := putCompressedScript(buf, tc.script)
			require.Equal(t, size, n)

			got, consumed, err := decompressScript(buf)
			require.NoError(t, err)
			require.Equal(t, size, consumed)
			require.True(t, bytes.Equal(tc.script, got), "script mismatch: got %x want %x", got, tc.script)
		})
	}
}

func TestSkipCompressedScriptMatchesSize(t *testing.T) {
	hash20 := bytes.Repeat([]byte{0x11}, 20)
	script := buildP2SH(hash20)

	size := compressedScriptSize(script)
	buf := make([]byte, size+4) // trailing bytes belonging to the next entry
	putCompressedScript(buf, script)

	skipped, err := skipCompressedScript(buf)
	require.NoError(t, err)
	require.Equal(t, size, skipped)
}

func TestReservedPrefixRejected(t *testing.T) {
	for prefix := reservedPrefixMin; prefix <= reservedPrefixMax; prefix++ {
		buf := []byte{byte(prefix), 0, 0, 0, 0}
		_, _, err := decompressScript(buf)
		require.Error(t, err)
		require.True(t, IsDeserializeErr(err))

		_, err = skipCompressedScript(buf)
		require.Error(t, err)
		require.True(t, IsDeserializeErr(err))
	}
}

func TestTruncatedScriptIsDeserializeError(t *testing.T) {
	_, _, err := decompressScript([]byte{prefixPubKeyHash, 0x01, 0x02})
	require.True(t, IsDeserializeErr(err))

	_, err = skipCompressedScript([]byte{prefixScriptHash, 0x01})
	require.True(t, IsDeserializeErr(err))
}

func TestCompressedOutputRoundTrip(t *testing.T) {
	hash20 := bytes.Repeat([]byte{0x22}, 20)
	out := Output{Value: 5000000000, PkScript: buildP2PKH(hash20)}

	size := compressedTxOutSize(out)
	buf := make([]byte, size)
	n := writeCompressedOutput(buf, out)
	require.Equal(t, size, n)

	got, consumed, err := readCompressedOutput(buf)
	require.NoError(t, err)
	require.Equal(t, size, consumed)
	require.Equal(t, out.Value, got.Value)
	require.True(t, bytes.Equal(out.PkScript, got.PkScript))

	skipped, err := skipCompressedOutput(buf)
	require.NoError(t, err)
	require.Equal(t, size, skipped)
}
