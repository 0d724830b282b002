// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coins

import "gitlab.com/jaxnet/coins/chainhash"

// Opcodes used only to recognize the handful of script shapes the
// compressor special-cases. This package never runs a script engine;
// it matches fixed byte patterns the same way the compressor's source
// material does.
const (
	opDup         = 0x76
	opEqual       = 0x87
	opEqualVerify = 0x88
	opHash160     = 0xa9
	opCheckSig    = 0xac
	opReturn      = 0x6a
	opData20      = 0x14
	opData33      = 0x21
	opData65      = 0x41
)

// Output is the minimal (value, script) pair the codec operates on.
type Output struct {
	Value    uint64
	PkScript []byte
}

// IsUnspendable reports whether PkScript is statically provable never
// to be redeemable. The only form this package recognizes is a
// script beginning with OP_RETURN; callers with a fuller script
// engine may reject more than this, but never less.
func (o Output) IsUnspendable() bool {
	return len(o.PkScript) > 0 && o.PkScript[0] == opReturn
}

// Coin is one unspent output projected as a self-contained value,
// carrying the metadata of the record it came from.
type Coin struct {
	Output
	Hash     chainhash.Hash
	Index    uint32
	Height   int32
	Version  uint32
	Coinbase bool
}

// Transaction is the abstract collaborator FromTx builds a Coins
// record from. Callers supply their own concrete transaction type;
// this package only ever reads these four properties from it.
type Transaction interface {
	Version() uint32
	Hash() chainhash.Hash
	IsCoinBase() bool
	Outputs() []Output
}
