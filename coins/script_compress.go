// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coins

import (
	"github.com/btcsuite/btcd/btcec/v2"
)

// Script compression prefixes. Values 0x00-0x0f are single-byte
// varints written directly; values >= rawScriptOffset are the varint
// encoding of (len(script) + rawScriptOffset), so the fallback case
// never collides with a template prefix.
const (
	prefixPubKeyHash             = 0x00
	prefixScriptHash             = 0x01
	prefixPubKeyCompressedEven   = 0x02
	prefixPubKeyCompressedOdd    = 0x03
	prefixPubKeyUncompressedEven = 0x04
	prefixPubKeyUncompressedOdd  = 0x05
	reservedPrefixMin            = 0x06
	reservedPrefixMax            = 0x0f
	rawScriptOffset              = 0x10
)

// isPubKeyHashScript reports whether pkScript is a standard p2pkh
// script and, if so, returns the 20-byte hash it encodes.
func isPubKeyHashScript(pkScript []byte) ([]byte, bool) {
	if len(pkScript) == 25 &&
		pkScript[0] == opDup &&
		pkScript[1] == opHash160 &&
		pkScript[2] == opData20 &&
		pkScript[23] == opEqualVerify &&
		pkScript[24] == opCheckSig {
		return pkScript[3:23], true
	}
	return nil, false
}

// isScriptHashScript reports whether pkScript is a standard p2sh
// script and, if so, returns the 20-byte hash it encodes.
func isScriptHashScript(pkScript []byte) ([]byte, bool) {
	if len(pkScript) == 23 &&
		pkScript[0] == opHash160 &&
		pkScript[1] == opData20 &&
		pkScript[22] == opEqual {
		return pkScript[2:22], true
	}
	return nil, false
}

// isPubKeyScript reports whether pkScript is a standard bare p2pk
// script (compressed or uncompressed pubkey) and, if so, returns the
// pubkey bytes as they appear on the wire.
func isPubKeyScript(pkScript []byte) ([]byte, bool) {
	if len(pkScript) == 35 &&
		pkScript[0] == opData33 &&
		pkScript[34] == opCheckSig &&
		(pkScript[1] == 0x02 || pkScript[1] == 0x03) {
		return pkScript[1:34], true
	}
	if len(pkScript) == 67 &&
		pkScript[0] == opData65 &&
		pkScript[66] == opCheckSig &&
		pkScript[1] == 0x04 {
		return pkScript[1:66], true
	}
	return nil, false
}

// compressedScriptSize returns the number of bytes putCompressedScript
// would write for pkScript.
func compressedScriptSize(pkScript []byte) int {
	if _, ok := isPubKeyHashScript(pkScript); ok {
		return 21
	}
	if _, ok := isScriptHashScript(pkScript); ok {
		return 21
	}
	if pubKey, ok := isPubKeyScript(pkScript); ok {
		if len(pubKey) == 33 {
			return 33
		}
		return 33 // uncompressed pubkey collapses to prefix + 32-byte x-coordinate
	}

	size := len(pkScript)
	return serializeSizeVLQ(uint64(size+rawScriptOffset)) + size
}

// putCompressedScript writes the compressed form of pkScript into
// target, which must be at least compressedScriptSize(pkScript)
// bytes long, and returns the number of bytes written.
func putCompressedScript(target []byte, pkScript []byte) int {
	if hash, ok := isPubKeyHashScript(pkScript); ok {
		target[0] = prefixPubKeyHash
		copy(target[1:21], hash)
		return 21
	}
	if hash, ok := isScriptHashScript(pkScript); ok {
		target[0] = prefixScriptHash
		copy(target[1:21], hash)
		return 21
	}
	if pubKey, ok := isPubKeyScript(pkScript); ok {
		if len(pubKey) == 33 {
			target[0] = pubKey[0]
			copy(target[1:33], pubKey[1:])
			return 33
		}
		// Uncompressed: pubKey is 0x04 || X(32) || Y(32). Collapse to
		// the compressed-point prefix the uncompressed form would
		// have used, shifted up by two so decompression knows to
		// reconstitute the long form.
		x := pubKey[1:33]
		y := pubKey[33:65]
		prefix := byte(prefixPubKeyUncompressedEven)
		if y[len(y)-1]&0x01 == 0x01 {
			prefix = prefixPubKeyUncompressedOdd
		}
		target[0] = prefix
		copy(target[1:33], x)
		return 33
	}

	size := len(pkScript)
	n := putVLQ(target, uint64(size+rawScriptOffset))
	copy(target[n:n+size], pkScript)
	return n + size
}

// decompressScript reconstitutes the canonical script described by
// the compressed bytes at the front of serialized, returning the
// script, the number of bytes consumed, and any decode error.
func decompressScript(serialized []byte) ([]byte, int, error) {
	if len(serialized) == 0 {
		return nil, 0, deserializeErrf("unexpected end of data during script compression prefix")
	}

	prefix, n, err := deserializeVLQ(serialized)
	if err != nil {
		return nil, 0, err
	}
	rest := serialized[n:]

	switch {
	case prefix == prefixPubKeyHash:
		if len(rest) < 20 {
			return nil, 0, deserializeErrf("unexpected end of data after pubkey hash prefix")
		}
		script := make([]byte, 25)
		script[0] = opDup
		script[1] = opHash160
		script[2] = opData20
		copy(script[3:23], rest[:20])
		script[23] = opEqualVerify
		script[24] = opCheckSig
		return script, n + 20, nil

	case prefix == prefixScriptHash:
		if len(rest) < 20 {
			return nil, 0, deserializeErrf("unexpected end of data after script hash prefix")
		}
		script := make([]byte, 23)
		script[0] = opHash160
		script[1] = opData20
		copy(script[2:22], rest[:20])
		script[22] = opEqual
		return script, n + 20, nil

	case prefix == prefixPubKeyCompressedEven || prefix == prefixPubKeyCompressedOdd:
		if len(rest) < 32 {
			return nil, 0, deserializeErrf("unexpected end of data after compressed pubkey prefix")
		}
		script := make([]byte, 35)
		script[0] = opData33
		script[1] = byte(prefix)
		copy(script[2:34], rest[:32])
		script[34] = opCheckSig
		return script, n + 32, nil

	case prefix == prefixPubKeyUncompressedEven || prefix == prefixPubKeyUncompressedOdd:
		if len(rest) < 32 {
			return nil, 0, deserializeErrf("unexpected end of data after uncompressed pubkey prefix")
		}
		compressed := make([]byte, 33)
		if prefix == prefixPubKeyUncompressedEven {
			compressed[0] = 0x02
		} else {
			compressed[0] = 0x03
		}
		copy(compressed[1:], rest[:32])

		pubKey, err := btcec.ParsePubKey(compressed)
		if err != nil {
			log.Trace().Err(err).Msg("curve decompression failed for compressed tx out")
			return nil, 0, deserializeErrf("failed to recover uncompressed pubkey: %v", err)
		}

		script := make([]byte, 67)
		script[0] = opData65
		copy(script[1:66], pubKey.SerializeUncompressed())
		script[66] = opCheckSig
		return script, n + 32, nil

	case prefix >= reservedPrefixMin && prefix <= reservedPrefixMax:
		log.Trace().Uint64("prefix", prefix).Msg("reserved script compression prefix")
		return nil, 0, deserializeErrf("reserved script compression prefix %#x", prefix)

	default:
		scriptSize := prefix - rawScriptOffset
		if uint64(len(rest)) < scriptSize {
			return nil, 0, deserializeErrf("unexpected end of data after raw script size")
		}
		script := make([]byte, scriptSize)
		copy(script, rest[:scriptSize])
		return script, n + int(scriptSize), nil
	}
}

// skipCompressedScript advances past one compressed script at the
// front of serialized without materializing it, returning the number
// of bytes consumed.
func skipCompressedScript(serialized []byte) (int, error) {
	if len(serialized) == 0 {
		return 0, deserializeErrf("unexpected end of data during script compression prefix")
	}

	prefix, n, err := deserializeVLQ(serialized)
	if err != nil {
		return 0, err
	}
	rest := serialized[n:]

	switch {
	case prefix == prefixPubKeyHash, prefix == prefixScriptHash:
		if len(rest) < 20 {
			return 0, deserializeErrf("unexpected end of data after script hash prefix")
		}
		return n + 20, nil

	case prefix == prefixPubKeyCompressedEven, prefix == prefixPubKeyCompressedOdd,
		prefix == prefixPubKeyUncompressedEven, prefix == prefixPubKeyUncompressedOdd:
		if len(rest) < 32 {
			return 0, deserializeErrf("unexpected end of data after pubkey prefix")
		}
		return n + 32, nil

	case prefix >= reservedPrefixMin && prefix <= reservedPrefixMax:
		return 0, deserializeErrf("reserved script compression prefix %#x", prefix)

	default:
		scriptSize := prefix - rawScriptOffset
		if uint64(len(rest)) < scriptSize {
			return 0, deserializeErrf("unexpected end of data after raw script size")
		}
		return n + int(scriptSize), nil
	}
}

// compressedTxOutSize returns the number of bytes writeCompressedOutput
// would write for output.
func compressedTxOutSize(output Output) int {
	return serializeSizeVLQ(output.Value) + compressedScriptSize(output.PkScript)
}

// writeCompressedOutput writes output's compressed form into target,
// which must be at least compressedTxOutSize(output) bytes long, and
// returns the number of bytes written.
func writeCompressedOutput(target []byte, output Output) int {
	n := putVLQ(target, output.Value)
	n += putCompressedScript(target[n:], output.PkScript)
	return n
}

// readCompressedOutput decodes one compressed output from the front
// of serialized, returning the output, the number of bytes consumed,
// and any decode error.
func readCompressedOutput(serialized []byte) (Output, int, error) {
	if len(serialized) == 0 {
		return Output{}, 0, deserializeErrf("unexpected end of data during compressed txout value")
	}
	value, n, err := deserializeVLQ(serialized)
	if err != nil {
		return Output{}, 0, err
	}
	script, m, err := decompressScript(serialized[n:])
	if err != nil {
		return Output{}, 0, err
	}
	return Output{Value: value, PkScript: script}, n + m, nil
}

// skipCompressedOutput advances past one compressed output at the
// front of serialized without materializing it, returning the number
// of bytes consumed.
func skipCompressedOutput(serialized []byte) (int, error) {
	if len(serialized) == 0 {
		return 0, deserializeErrf("unexpected end of data during compressed txout value")
	}
	_, n, err := deserializeVLQ(serialized)
	if err != nil {
		return 0, err
	}
	m, err := skipCompressedScript(serialized[n:])
	if err != nil {
		return 0, err
	}
	return n + m, nil
}
