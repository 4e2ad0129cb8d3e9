// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	maxNodesFlag = cli.IntFlag{
		Name:  "max-nodes",
		Value: 100000,
		Usage: "record capacity of the trie",
	}
	numKeysFlag = cli.IntFlag{
		Name:  "num-keys",
		Value: 3,
		Usage: "number of keys per record",
	}
	keyBytesFlag = cli.IntFlag{
		Name:  "key-bytes",
		Value: 16,
		Usage: "byte width of every key",
	}
	searchRoundsFlag = cli.IntFlag{
		Name:  "search-rounds",
		Value: 10,
		Usage: "full-trie search passes to time",
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Value: 0,
		Usage: "random key seed, 0 picks the current time",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML scenario file overriding the bench flags",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "prometheus exposition listening address",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-9)",
	}
)
