// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/inconshreveable/log15"
	isatty "github.com/mattn/go-isatty"

	"github.com/vechain/rdxpat/metrics"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string

	log = log15.New()
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "rdxpat",
		Usage:     "multi-key radix PATRICIA trie workbench",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Commands: []cli.Command{
			{
				Name:  "bench",
				Usage: "time insert/search/remove over a randomly filled trie",
				Flags: []cli.Flag{
					maxNodesFlag,
					numKeysFlag,
					keyBytesFlag,
					searchRoundsFlag,
					seedFlag,
					configFlag,
					metricsAddrFlag,
					verbosityFlag,
				},
				Action: benchAction,
			},
			{
				Name:  "demo",
				Usage: "insert sample records, dump the trie and run the verifier",
				Flags: []cli.Flag{
					verbosityFlag,
				},
				Action: demoAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(ctx *cli.Context) {
	logLevel := ctx.Int(verbosityFlag.Name)
	format := log15.LogfmtFormat()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		format = log15.TerminalFormat()
	}
	log15.Root().SetHandler(log15.LvlFilterHandler(
		log15.Lvl(logLevel),
		log15.StreamHandler(os.Stderr, format)))
}

// startMetricsServer exposes prometheus metrics when an address is given.
func startMetricsServer(addr string) {
	if addr == "" {
		return
	}
	metrics.InitializePrometheusMetrics()
	go func() {
		if err := http.ListenAndServe(addr, metrics.HTTPHandler()); err != nil {
			log.Warn("metrics server stopped", "err", err)
		}
	}()
	log.Info("metrics server started", "addr", addr)
}
