// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/rdxpat/rdx"

	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"
	yaml "gopkg.in/yaml.v3"
)

// scenario carries the bench parameters. Zero values fall back to the
// corresponding flag.
type scenario struct {
	MaxNodes     int   `yaml:"maxNodes"`
	NumKeys      int   `yaml:"numKeys"`
	KeyBytes     int   `yaml:"keyBytes"`
	SearchRounds int   `yaml:"searchRounds"`
	Seed         int64 `yaml:"seed"`
}

func loadScenario(ctx *cli.Context) (*scenario, error) {
	s := &scenario{
		MaxNodes:     ctx.Int(maxNodesFlag.Name),
		NumKeys:      ctx.Int(numKeysFlag.Name),
		KeyBytes:     ctx.Int(keyBytesFlag.Name),
		SearchRounds: ctx.Int(searchRoundsFlag.Name),
		Seed:         ctx.Int64(seedFlag.Name),
	}
	if path := ctx.String(configFlag.Name); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WithMessage(err, "read scenario")
		}
		var file scenario
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.WithMessage(err, "parse scenario")
		}
		if file.MaxNodes > 0 {
			s.MaxNodes = file.MaxNodes
		}
		if file.NumKeys > 0 {
			s.NumKeys = file.NumKeys
		}
		if file.KeyBytes > 0 {
			s.KeyBytes = file.KeyBytes
		}
		if file.SearchRounds > 0 {
			s.SearchRounds = file.SearchRounds
		}
		if file.Seed != 0 {
			s.Seed = file.Seed
		}
	}
	if s.Seed == 0 {
		s.Seed = time.Now().UnixNano()
	}
	return s, nil
}

func benchAction(ctx *cli.Context) error {
	initLogger(ctx)
	startMetricsServer(ctx.String(metricsAddrFlag.Name))

	s, err := loadScenario(ctx)
	if err != nil {
		return err
	}
	log.Info("bench scenario",
		"maxNodes", s.MaxNodes,
		"numKeys", s.NumKeys,
		"keyBytes", s.KeyBytes,
		"searchRounds", s.SearchRounds,
		"seed", s.Seed)

	tr, err := rdx.New[uint64](s.MaxNodes, s.NumKeys, s.KeyBytes)
	if err != nil {
		return err
	}

	keySets := generateKeySets(s)

	// fill
	bar := pb.StartNew(len(keySets)).Prefix("insert")
	start := time.Now()
	for i, keys := range keySets {
		r, err := tr.Insert(keys)
		if err != nil {
			return errors.WithMessagef(err, "insert %d", i)
		}
		*r = uint64(i)
		bar.Increment()
	}
	bar.Finish()
	insertDur := time.Since(start)
	log.Info("inserted", "records", tr.Count(), "elapsed", insertDur,
		"perOp", insertDur/time.Duration(len(keySets)))

	// search
	start = time.Now()
	for round := 0; round < s.SearchRounds; round++ {
		for i, keys := range keySets {
			r := tr.Search(keys)
			if r == nil || *r != uint64(i) {
				return errors.Errorf("search %d round %d: wrong record", i, round)
			}
		}
	}
	searchDur := time.Since(start)
	ops := s.SearchRounds * len(keySets)
	log.Info("searched", "ops", ops, "elapsed", searchDur, "perOp", searchDur/time.Duration(ops))

	if err := tr.Verify(rdx.ErrCode, nil); err != nil {
		return err
	}

	// drain in shuffled order
	rnd := rand.New(rand.NewSource(s.Seed + 1))
	rnd.Shuffle(len(keySets), func(i, j int) { keySets[i], keySets[j] = keySets[j], keySets[i] })
	bar = pb.StartNew(len(keySets)).Prefix("remove")
	start = time.Now()
	for i, keys := range keySets {
		if tr.Remove(keys) == nil {
			return errors.Errorf("remove %d: record not found", i)
		}
		bar.Increment()
	}
	bar.Finish()
	removeDur := time.Since(start)
	log.Info("removed", "records", len(keySets), "elapsed", removeDur,
		"perOp", removeDur/time.Duration(len(keySets)))

	if err := tr.Verify(rdx.ErrCode, nil); err != nil {
		return err
	}
	log.Info("bench done", "count", tr.Count())
	return nil
}

// generateKeySets builds maxNodes records of random keys, unique per key
// position.
func generateKeySets(s *scenario) [][]byte {
	rnd := rand.New(rand.NewSource(s.Seed))
	seen := make([]map[string]bool, s.NumKeys)
	for k := range seen {
		seen[k] = make(map[string]bool)
	}

	sets := make([][]byte, 0, s.MaxNodes)
	material := make([]byte, s.KeyBytes)
	for len(sets) < s.MaxNodes {
		ks := rdx.NewKeys(s.NumKeys, s.KeyBytes)
		for k := 0; k < s.NumKeys; k++ {
			for {
				rnd.Read(material)
				if !seen[k][string(material)] {
					seen[k][string(material)] = true
					break
				}
			}
			ks.Use(k, material)
		}
		sets = append(sets, ks.Bytes())
	}
	return sets
}
