// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coins implements the compact, bit-packed on-disk record used
// to store the set of unspent outputs of a single transaction, along
// with the lazy per-output decompression handle used to read it.
//
// A Coins value bundles every output of one transaction behind a
// single header code, a spent-output bitmap for outputs beyond the
// first two, and a run of compressed per-output bodies. CoinEntry is
// the lazy, per-output view into that run: it decompresses its output
// the first time it is asked for one, and re-serializes untouched
// entries by copying their original bytes rather than recompressing
// them.
package coins
