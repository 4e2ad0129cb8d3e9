// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rdx

import "github.com/vechain/rdxpat/metrics"

var (
	metricInserts  = metrics.LazyLoadCounter("trie_insert_count")
	metricSearches = metrics.LazyLoadCounter("trie_search_count")
	metricRemoves  = metrics.LazyLoadCounter("trie_remove_count")
	metricVerifies = metrics.LazyLoadCounter("trie_verify_count")
)
