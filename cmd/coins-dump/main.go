// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// coins-dump decodes a Coins record and prints its header fields and
// per-output contents, or extracts a single output by index via the
// fast path. The record is read either from a hex-encoded --record
// argument or, with --db, looked up by hash in a leveldb store.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"gitlab.com/jaxnet/coins/chainhash"
	"gitlab.com/jaxnet/coins/coins"
	"gitlab.com/jaxnet/coins/corelog"
	"gitlab.com/jaxnet/coins/store"
)

type options struct {
	Hash     string `short:"x" long:"hash" description:"transaction hash (hex, big-endian display order)" required:"true"`
	Hex      string `short:"r" long:"record" description:"hex-encoded Coins record body; ignored if --db is set"`
	DB       string `long:"db" description:"path to a leveldb store directory; if set, the record is looked up by --hash instead of read from --record"`
	Index    int64  `short:"i" long:"index" description:"if set, print only the output at this index via the single-coin fast path" default:"-1"`
	LogLevel string `long:"log-level" description:"trace, debug, info, warn, error, or disabled" default:"info"`
	LogFile  string `long:"log-file" description:"if set, also write logs to this file"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	setupLogging(opts)

	hash, err := hashFromHex(opts.Hash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid hash: %v\n", err)
		os.Exit(1)
	}

	buf, err := loadRecord(opts, hash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if opts.Index >= 0 {
		coin, ok, err := coins.ParseCoin(buf, hash, uint32(opts.Index))
		if err != nil {
			fmt.Fprintf(os.Stderr, "decode error: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			fmt.Println("not found")
			return
		}
		fmt.Printf("index=%d value=%d script=%x\n", coin.Index, coin.Value, coin.PkScript)
		return
	}

	record, err := coins.Deserialize(buf, hash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(record.String())
}

// setupLogging parses opts' logging flags and installs the resulting
// logger into the coins package, unless the level is "disabled".
func setupLogging(opts options) {
	if opts.LogLevel == "disabled" {
		coins.DisableLog()
		return
	}
	level, err := zerolog.ParseLevel(opts.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", opts.LogLevel, err)
		os.Exit(1)
	}

	cfg := corelog.Config{}.Default()
	if opts.LogFile != "" {
		cfg.FileLoggingEnabled = true
		cfg.Directory = filepath.Dir(opts.LogFile)
		cfg.Filename = filepath.Base(opts.LogFile)
	}
	coins.UseLogger(corelog.New("coins-dump", level, cfg))
}

// loadRecord returns the Coins record body for hash, either by
// looking it up in a leveldb store at opts.DB or by decoding
// opts.Hex, depending on which the caller asked for.
func loadRecord(opts options, hash chainhash.Hash) ([]byte, error) {
	if opts.DB != "" {
		s, err := store.Open(opts.DB)
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		defer s.Close()

		buf, ok, err := s.Get(hash)
		if err != nil {
			return nil, fmt.Errorf("reading from store: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("no record for hash %s in %s", hash, opts.DB)
		}
		return buf, nil
	}

	if opts.Hex == "" {
		return nil, fmt.Errorf("one of --record or --db is required")
	}
	buf, err := hex.DecodeString(opts.Hex)
	if err != nil {
		return nil, fmt.Errorf("invalid record hex: %w", err)
	}
	return buf, nil
}

// hashFromHex parses a hash given in the same byte-reversed display
// convention as chainhash.Hash.String().
func hashFromHex(s string) (chainhash.Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return chainhash.Hash{}, err
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	h, err := chainhash.NewHash(b)
	if err != nil {
		return chainhash.Hash{}, err
	}
	return *h, nil
}
