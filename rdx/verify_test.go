// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rdx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillTestTrie inserts a handful of records so every check has structure to
// look at.
func fillTestTrie(t *testing.T) *Trie[int] {
	tr := newTestTrie(t, 8, 2, 4)
	for i := uint64(1); i <= 4; i++ {
		_, err := tr.Insert(tuple(2, 4, i*3, i*5))
		require.NoError(t, err)
	}
	return tr
}

func verifyCode(t *testing.T, tr *Trie[int], want int) {
	err := tr.Verify(ErrCode, nil)
	require.Error(t, err)
	var verr *VerifyError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, want, verr.Code)
}

func TestVerifyClean(t *testing.T) {
	tr := fillTestTrie(t)
	assert.NoError(t, tr.Verify(ErrCode, nil))
}

func TestVerifyDiagnosticReport(t *testing.T) {
	tr := fillTestTrie(t)

	var buf bytes.Buffer
	require.NoError(t, tr.Verify(ErrCodePrint, &buf))
	out := buf.String()
	assert.Contains(t, out, "free data node addresses")
	assert.Contains(t, out, "allocated data node addresses")
	// key 3*1 of the first record shows up in the key dump
	assert.Contains(t, out, "key 0  = 00000003")
}

func TestVerifyDetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(tr *Trie[int])
		code    int
	}{
		{"head left child", func(tr *Trie[int]) { tr.heads[0].l = dataRef(&tr.dnodes[1]) }, 1},
		{"head side", func(tr *Trie[int]) { tr.heads[1].side = sideRight }, 2},
		{"head parent", func(tr *Trie[int]) { tr.heads[0].p = tr.bnode(1, 0) }, 3},
		{"head test bit", func(tr *Trie[int]) { tr.heads[0].bit = 7 }, 4},
		{"head right child", func(tr *Trie[int]) { tr.heads[1].r = dataRef(&tr.dnodes[0]) }, 5},
		{"root keys", func(tr *Trie[int]) { tr.dnodes[0].key[3] = 0 }, 6},
		{"per-key arrays", func(tr *Trie[int]) { tr.dnodes[3].side = tr.dnodes[3].side[:1] }, 7},
		{"branch sequence number", func(tr *Trie[int]) { tr.bnode(2, 1).nsn = 9 }, 8},
		{"data sequence number", func(tr *Trie[int]) { tr.dnodes[2].nsn = 0 }, 9},
		{"allocated flag", func(tr *Trie[int]) { tr.dnodes[6].alloc = 2 }, 10},
		{"record counter", func(tr *Trie[int]) { tr.totNodes++ }, 12},
		{
			"duplicate keys",
			func(tr *Trie[int]) {
				copy(tr.nodeKey(&tr.dnodes[2], 0), tr.nodeKey(&tr.dnodes[1], 0))
			},
			13,
		},
		{"branch free list", func(tr *Trie[int]) { tr.bfreeHead[0] = &branchNode[int]{nsn: 1} }, 14},
		{"branch free list cycle", func(tr *Trie[int]) { tr.bfreeHead[0].p.p = tr.bfreeHead[0] }, 14},
		{"data free list", func(tr *Trie[int]) { tr.dfreeHead = &tr.dnodes[2] }, 15},
		{"truncated branch free list", func(tr *Trie[int]) { tr.bfreeHead[1].p = nil }, 16},
		{"truncated data free list", func(tr *Trie[int]) { tr.dfreeHead.next = nil }, 16},
		{"branch side", func(tr *Trie[int]) { tr.bnode(3, 0).side = 5 }, 17},
		{"branch parent", func(tr *Trie[int]) { tr.bnode(3, 1).p = tr.bnode(7, 1) }, 18},
		{"branch test bit", func(tr *Trie[int]) { tr.bnode(2, 0).bit = 99 }, 19},
		{"branch left child", func(tr *Trie[int]) { tr.bnode(2, 0).l = nodeRef[int]{} }, 20},
		{"branch right child", func(tr *Trie[int]) { tr.bnode(2, 0).r = branchRef(tr.bnode(8, 0)) }, 21},
		{"data parent", func(tr *Trie[int]) { tr.dnodes[3].p[0] = nil }, 22},
		{"data side", func(tr *Trie[int]) { tr.dnodes[3].side[1] = 9 }, 23},
		{
			"stored keys swapped",
			func(tr *Trie[int]) {
				// records 1 and 2 trade their stored keys: still unique per
				// position, but self-search lands elsewhere
				k1 := tr.nodeKey(&tr.dnodes[1], 0)
				k2 := tr.nodeKey(&tr.dnodes[2], 0)
				tmp := make([]byte, len(k1))
				copy(tmp, k1)
				copy(k1, k2)
				copy(k2, tmp)
			},
			24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := fillTestTrie(t)
			tt.corrupt(tr)
			verifyCode(t, tr, tt.code)
		})
	}
}

func TestVerifyPoolAccounting(t *testing.T) {
	tr := fillTestTrie(t)
	// marking a free slot allocated breaks the counter check and, fixed up,
	// the free-list subset check
	tr.dnodes[7].alloc = 1
	verifyCode(t, tr, 12)
	tr.totNodes++
	verifyCode(t, tr, 15) // slot 7's data node still sits on the free list
}
