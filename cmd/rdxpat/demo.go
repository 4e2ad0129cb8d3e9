// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/vechain/rdxpat/rdx"

	cli "gopkg.in/urfave/cli.v1"
)

func demoAction(ctx *cli.Context) error {
	initLogger(ctx)

	tr, err := rdx.New[string](8, 3, 4)
	if err != nil {
		return err
	}

	samples := []struct {
		keys [3]uint64
		name string
	}{
		{[3]uint64{0x01020304, 0xa0b0c0d0, 0x11111111}, "alpha"},
		{[3]uint64{0x01020305, 0xa0b0c0d1, 0x22222222}, "beta"},
		{[3]uint64{0xff000001, 0x00000001, 0x33333333}, "gamma"},
	}
	for _, s := range samples {
		ks := rdx.NewKeys(3, 4)
		for k, v := range s.keys {
			ks.UseUint(k, v)
		}
		r, err := tr.Insert(ks.Bytes())
		if err != nil {
			return err
		}
		*r = s.name
		log.Info("inserted", "name", s.name)
	}

	fmt.Println("--- whole trie ---")
	if err := tr.Print(nil, os.Stdout); err != nil {
		return err
	}

	ks := rdx.NewKeys(3, 4).UseUint(1, 0xa0b0c0d1)
	fmt.Println("--- path to beta, found by key 1 alone ---")
	if err := tr.Print(ks.Bytes(), os.Stdout); err != nil {
		return err
	}

	fmt.Println("--- records ascending by key 0 ---")
	recs, err := tr.Ascend(0)
	if err != nil {
		return err
	}
	for _, r := range recs {
		fmt.Println(*r)
	}

	fmt.Println("--- verifier, diagnostic mode ---")
	if err := tr.Verify(rdx.ErrCodePrint, os.Stdout); err != nil {
		return err
	}
	log.Info("verify clean", "count", tr.Count())
	return nil
}
