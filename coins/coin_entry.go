// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coins

// CoinEntry is a lazy handle to one output inside an encoded Coins
// record. An entry loaded from disk holds a read-only slice into its
// parent's backing buffer and defers decompression until the output
// is actually read; an entry built in memory holds a materialized
// Output from the start. Both may coexist after lazy materialization,
// at which point the materialized output shadows the raw bytes for
// reads, but Write still prefers the byte-copy fast path whenever raw
// bytes are present and nothing has forced re-materialization.
type CoinEntry struct {
	output *Output
	raw    []byte // compressed bytes, sliced from the parent's backing buffer
	offset int    // position of raw within the parent's backing buffer, for diagnostics
	spent  bool
}

// NewCoinEntry builds an entry from an already-materialized output.
func NewCoinEntry(output Output) *CoinEntry {
	out := output
	return &CoinEntry{output: &out}
}

// NewCoinEntryFromCoin builds an entry from a fully-constituted coin.
// The coin's hash/index/height/version/coinbase fields describe how
// the entry projects back into a Coin via ToCoin later; the entry
// itself only ever stores the underlying output.
func NewCoinEntryFromCoin(coin Coin) *CoinEntry {
	return NewCoinEntry(coin.Output)
}

// newCoinEntryFromReader builds an entry referencing the compressed
// output that begins at offset within buf. It records offset and the
// byte range the entry occupies without decompressing anything, and
// returns the number of bytes the entry occupies so the caller can
// advance its own cursor.
func newCoinEntryFromReader(buf []byte, offset int) (*CoinEntry, int, error) {
	size, err := skipCompressedOutput(buf[offset:])
	if err != nil {
		return nil, 0, err
	}
	return &CoinEntry{
		raw:    buf[offset : offset+size],
		offset: offset,
	}, size, nil
}

// ToOutput materializes the entry's output, decompressing it from the
// backing buffer on first use and caching the result. Idempotent.
func (e *CoinEntry) ToOutput() (Output, error) {
	if e.output != nil {
		return *e.output, nil
	}
	output, _, err := readCompressedOutput(e.raw)
	if err != nil {
		return Output{}, err
	}
	e.output = &output
	return output, nil
}

// ToCoin combines the entry's output with the parent record's
// metadata and the supplied output index to yield a standalone Coin.
func (e *CoinEntry) ToCoin(parent *Coins, index uint32) (Coin, error) {
	output, err := e.ToOutput()
	if err != nil {
		return Coin{}, err
	}
	return Coin{
		Output:   output,
		Hash:     parent.hash,
		Index:    index,
		Height:   parent.height,
		Version:  parent.version,
		Coinbase: parent.coinbase,
	}, nil
}

// Size returns the number of bytes Write would emit for this entry.
func (e *CoinEntry) Size() int {
	if e.raw != nil {
		return len(e.raw)
	}
	return compressedTxOutSize(*e.output)
}

// Write emits the entry into target, which must be at least Size()
// bytes long, and returns the number of bytes written. An entry still
// backed by raw bytes is copied verbatim rather than recompressed;
// this is what makes re-serializing an untouched record byte-identical
// to its source.
func (e *CoinEntry) Write(target []byte) int {
	if e.raw != nil {
		return copy(target, e.raw)
	}
	return writeCompressedOutput(target, *e.output)
}

// IsSpent reports the entry's transient spent mark.
func (e *CoinEntry) IsSpent() bool {
	return e.spent
}
