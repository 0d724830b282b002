// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coins

import (
	"encoding/binary"
	"fmt"
	"strings"

	"gitlab.com/jaxnet/coins/chainhash"
)

// Coins is the unspent-output record for a single transaction: a
// version, a block height, a coinbase flag, and a sparse, index
// addressable vector of CoinEntry handles. A nil slot is a gap —
// spent, pruned, or never inserted because the output was provably
// unspendable.
type Coins struct {
	hash     chainhash.Hash
	version  uint32
	height   int32
	coinbase bool
	outputs  []*CoinEntry
}

// NewCoins builds an empty record for hash. Callers add outputs with
// AddOutput/AddCoin before serializing; serializing an empty record is
// a programming error (see Serialize).
func NewCoins(hash chainhash.Hash, version uint32, height int32, coinbase bool) *Coins {
	return &Coins{
		hash:     hash,
		version:  version,
		height:   height,
		coinbase: coinbase,
	}
}

// FromTx builds a record from tx's outputs at the given height,
// mapping every provably-unspendable output to a gap rather than an
// entry.
func FromTx(tx Transaction, height int32) *Coins {
	c := NewCoins(tx.Hash(), tx.Version(), height, tx.IsCoinBase())
	outputs := tx.Outputs()
	c.outputs = make([]*CoinEntry, len(outputs))
	for i, out := range outputs {
		if out.IsUnspendable() {
			continue
		}
		c.outputs[i] = NewCoinEntry(out)
	}
	c.cleanup()
	return c
}

// Hash returns the transaction hash this record describes.
func (c *Coins) Hash() chainhash.Hash { return c.hash }

// Version returns the transaction version carried by this record.
func (c *Coins) Version() uint32 { return c.version }

// Height returns the confirming block height, or -1 for an
// in-memory, unconfirmed record.
func (c *Coins) Height() int32 { return c.height }

// IsCoinBase reports whether the transaction this record describes is
// a coinbase.
func (c *Coins) IsCoinBase() bool { return c.coinbase }

// Length returns one plus the index of the highest live entry, or
// zero if the record has none.
func (c *Coins) Length() int {
	return len(c.outputs)
}

// Has reports whether index names a live slot, spent or not.
func (c *Coins) Has(index uint32) bool {
	i := int(index)
	return i < len(c.outputs) && c.outputs[i] != nil
}

// IsUnspent reports whether index names a live, not-yet-spent slot.
func (c *Coins) IsUnspent(index uint32) bool {
	i := int(index)
	return i < len(c.outputs) && c.outputs[i] != nil && !c.outputs[i].spent
}

// Get returns the entry at index, or nil if the slot is a gap.
func (c *Coins) Get(index uint32) *CoinEntry {
	i := int(index)
	if i >= len(c.outputs) {
		return nil
	}
	return c.outputs[i]
}

// GetCoin materializes the entry at index as a standalone Coin. The
// second return value is false if the slot is a gap.
func (c *Coins) GetCoin(index uint32) (Coin, bool, error) {
	e := c.Get(index)
	if e == nil {
		return Coin{}, false, nil
	}
	coin, err := e.ToCoin(c, index)
	if err != nil {
		return Coin{}, false, err
	}
	return coin, true, nil
}

// cleanup trims trailing gaps so that len(outputs) == Length().
func (c *Coins) cleanup() {
	n := len(c.outputs)
	for n > 0 && c.outputs[n-1] == nil {
		n--
	}
	c.outputs = c.outputs[:n]
}

// Add installs entry at index, padding with gaps if index falls
// beyond the current length. It returns an AssertError if the slot is
// already occupied — overwriting a live entry is a caller bug, not a
// data condition.
func (c *Coins) Add(index uint32, entry *CoinEntry) error {
	i := int(index)
	if i < len(c.outputs) && c.outputs[i] != nil {
		return assertf("cannot add entry at already-occupied index %d", index)
	}
	for len(c.outputs) <= i {
		c.outputs = append(c.outputs, nil)
	}
	c.outputs[i] = entry
	return nil
}

// AddOutput wraps output in a CoinEntry and adds it at index. It
// returns an AssertError if output is provably unspendable.
func (c *Coins) AddOutput(index uint32, output Output) error {
	if output.IsUnspendable() {
		return assertf("cannot add unspendable output at index %d", index)
	}
	return c.Add(index, NewCoinEntry(output))
}

// AddCoin adds coin at its own Index, rejecting an unspendable script
// the same way AddOutput does.
func (c *Coins) AddCoin(coin Coin) error {
	if coin.IsUnspendable() {
		return assertf("cannot add unspendable output at index %d", coin.Index)
	}
	return c.Add(coin.Index, NewCoinEntryFromCoin(coin))
}

// Spend marks the entry at index spent and returns it. It returns nil
// — the no-op sentinel — if the slot is a gap or was already spent,
// so that spend(i); spend(i) is indistinguishable in effect from a
// single spend(i).
func (c *Coins) Spend(index uint32) *CoinEntry {
	e := c.Get(index)
	if e == nil || e.spent {
		return nil
	}
	e.spent = true
	return e
}

// Remove clears the slot at index and runs cleanup, returning the
// entry that occupied it, or nil if the slot was already a gap.
func (c *Coins) Remove(index uint32) *CoinEntry {
	i := int(index)
	if i >= len(c.outputs) {
		return nil
	}
	e := c.outputs[i]
	c.outputs[i] = nil
	c.cleanup()
	return e
}

// DynamicMemoryUsage approximates the in-memory footprint of the
// record and its entries, for callers that track cache size.
func (c *Coins) DynamicMemoryUsage() int {
	usage := 48 + len(c.outputs)*8 // struct overhead + slice backing array
	for _, e := range c.outputs {
		if e == nil {
			continue
		}
		usage += 32 // CoinEntry struct overhead, approximate
		if e.output != nil {
			usage += len(e.output.PkScript)
		} else {
			usage += len(e.raw)
		}
	}
	return usage
}

// String renders a short per-output debug summary.
func (c *Coins) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Coins{hash=%s version=%d height=%d coinbase=%t outputs=%d}",
		c.hash, c.version, c.height, c.coinbase, len(c.outputs))
	for i, e := range c.outputs {
		if e == nil {
			continue
		}
		status := "unspent"
		if e.spent {
			status = "spent"
		}
		fmt.Fprintf(&b, "\n  [%d] %s size=%d", i, status, e.Size())
	}
	return b.String()
}

// headerCode computes the varint header code and the extended
// spent-field for the record's current state, per the layout in
// §4.3.1. L is the record's length; returns an AssertError if no entry
// is unspent (including L == 0), since a fully-spent record must never
// be serialized.
func (c *Coins) headerCode() (code uint64, spentField []byte, err error) {
	l := c.Length()
	live := false
	for i := 0; i < l; i++ {
		if c.IsUnspent(uint32(i)) {
			live = true
			break
		}
	}
	if !live {
		return 0, nil, assertf("cannot serialize fully-spent coins")
	}

	s := (l + 5) / 8
	first := c.IsUnspent(0)
	second := c.IsUnspent(1)

	sHigh := s
	if !first && !second && s >= 1 {
		sHigh = s - 1
	}

	low := 0
	if c.coinbase {
		low |= 1
	}
	if first {
		low |= 2
	}
	if second {
		low |= 4
	}
	code = uint64(low) | uint64(sHigh)<<3

	spentField = make([]byte, s)
	for i := 2; i < l; i++ {
		if c.IsUnspent(uint32(i)) {
			bit := i - 2
			spentField[bit/8] |= 1 << uint(bit%8)
		}
	}
	return code, spentField, nil
}

// Serialize encodes the record into the compact body format described
// in §4.3.2. It returns an AssertError if the record is fully spent —
// callers must delete the backing key instead of writing an empty
// record.
func (c *Coins) Serialize() ([]byte, error) {
	code, spentField, err := c.headerCode()
	if err != nil {
		return nil, err
	}
	l := c.Length()

	var entries []*CoinEntry
	if c.IsUnspent(0) {
		entries = append(entries, c.outputs[0])
	}
	if c.IsUnspent(1) {
		entries = append(entries, c.outputs[1])
	}
	for i := 2; i < l; i++ {
		if c.IsUnspent(uint32(i)) {
			entries = append(entries, c.outputs[i])
		}
	}

	size := serializeSizeVLQ(uint64(c.version)) + 4 + serializeSizeVLQ(code) + len(spentField)
	for _, e := range entries {
		size += e.Size()
	}

	buf := make([]byte, size)
	n := putVLQ(buf, uint64(c.version))
	binary.LittleEndian.PutUint32(buf[n:n+4], uint32(c.height))
	n += 4
	n += putVLQ(buf[n:], code)
	n += copy(buf[n:], spentField)
	for _, e := range entries {
		n += e.Write(buf[n:])
	}
	return buf, nil
}

// decodeHeader reads version, height, and the header code from the
// front of buf, applying the offset correction from §4.3.1. It
// returns the decoded fields, the number of header bytes consumed
// (up to but not including the extended spent-field), and S, the
// extended spent-field's byte length.
func decodeHeader(buf []byte) (version uint32, height int32, coinbase, first, second bool, s int, headerLen int, err error) {
	ver, n, err := deserializeVLQ(buf)
	if err != nil {
		return 0, 0, false, false, false, 0, 0, err
	}
	if len(buf) < n+4 {
		return 0, 0, false, false, false, 0, 0, deserializeErrf("unexpected end of data after version")
	}
	h := int32(binary.LittleEndian.Uint32(buf[n : n+4]))
	n += 4

	code, m, err := deserializeVLQ(buf[n:])
	if err != nil {
		return 0, 0, false, false, false, 0, 0, err
	}
	n += m

	coinbase = code&1 != 0
	first = code&2 != 0
	second = code&4 != 0
	sVal := code >> 3
	if code&6 == 0 {
		sVal++
	}
	return uint32(ver), h, coinbase, first, second, int(sVal), n, nil
}

// Deserialize decodes buf into a Coins record tied to hash, following
// the algorithm in §4.3.3. Any decode error is logged at trace level
// together with hash before it is returned, so an operator with
// tracing enabled can see which record a corrupt read came from.
func Deserialize(buf []byte, hash chainhash.Hash) (c *Coins, err error) {
	defer func() {
		if err != nil {
			log.Trace().Stringer("hash", hash).Err(err).Msg("failed to deserialize coins record")
		}
	}()

	version, height, coinbase, first, second, s, n, err := decodeHeader(buf)
	if err != nil {
		return nil, err
	}

	spentFieldOffset := n
	if len(buf) < spentFieldOffset+s {
		return nil, deserializeErrf("unexpected end of data reading extended spent field")
	}
	pos := spentFieldOffset + s

	c = &Coins{hash: hash, version: version, height: height, coinbase: coinbase}

	appendEntryOrGap := func(live bool) error {
		if !live {
			c.outputs = append(c.outputs, nil)
			return nil
		}
		entry, size, err := newCoinEntryFromReader(buf, pos)
		if err != nil {
			return err
		}
		c.outputs = append(c.outputs, entry)
		pos += size
		return nil
	}

	if err := appendEntryOrGap(first); err != nil {
		return nil, err
	}
	if err := appendEntryOrGap(second); err != nil {
		return nil, err
	}

	for i := 0; i < s; i++ {
		b := buf[spentFieldOffset+i]
		for j := 0; j < 8; j++ {
			if err := appendEntryOrGap(b&(1<<uint(j)) != 0); err != nil {
				return nil, err
			}
		}
	}

	c.cleanup()
	return c, nil
}

// ParseCoin implements the single-coin fast path from §4.3.4: it
// decodes only enough of buf to produce the output at wantedIndex,
// skipping every other compressed output without materializing it.
// The second return value is false if wantedIndex names a gap or
// falls beyond the record's described range. Any decode error is
// logged at trace level together with hash before it is returned.
func ParseCoin(buf []byte, hash chainhash.Hash, wantedIndex uint32) (coin Coin, found bool, err error) {
	defer func() {
		if err != nil {
			log.Trace().Stringer("hash", hash).Uint32("index", wantedIndex).Err(err).Msg("failed to parse coin")
		}
	}()

	version, height, coinbase, first, second, s, n, err := decodeHeader(buf)
	if err != nil {
		return Coin{}, false, err
	}

	if uint64(wantedIndex) >= uint64(2+8*s) {
		return Coin{}, false, nil
	}

	spentFieldOffset := n
	if len(buf) < spentFieldOffset+s {
		return Coin{}, false, deserializeErrf("unexpected end of data reading extended spent field")
	}
	pos := spentFieldOffset + s
	want := int(wantedIndex)

	// step handles one index slot: k is the slot's index, live is
	// whether that slot is occupied. It returns (found, stop) — stop
	// is true once the walk has reached the wanted slot, regardless
	// of whether that slot turned out to be live.
	step := func(k int, live bool) (coin Coin, found bool, stop bool, err error) {
		if k != want {
			if live {
				size, err := skipCompressedOutput(buf[pos:])
				if err != nil {
					return Coin{}, false, false, err
				}
				pos += size
			}
			return Coin{}, false, false, nil
		}
		if !live {
			return Coin{}, false, true, nil
		}
		output, _, err := readCompressedOutput(buf[pos:])
		if err != nil {
			return Coin{}, false, true, err
		}
		return Coin{
			Output:   output,
			Hash:     hash,
			Index:    wantedIndex,
			Height:   height,
			Version:  version,
			Coinbase: coinbase,
		}, true, true, nil
	}

	if coin, found, stop, err := step(0, first); err != nil {
		return Coin{}, false, err
	} else if stop {
		return coin, found, nil
	}
	if coin, found, stop, err := step(1, second); err != nil {
		return Coin{}, false, err
	} else if stop {
		return coin, found, nil
	}

	for i := 0; i < s; i++ {
		b := buf[spentFieldOffset+i]
		for j := 0; j < 8; j++ {
			k := 2 + i*8 + j
			coin, found, stop, err := step(k, b&(1<<uint(j)) != 0)
			if err != nil {
				return Coin{}, false, err
			}
			if stop {
				return coin, found, nil
			}
		}
	}

	return Coin{}, false, nil
}
