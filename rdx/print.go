// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rdx

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Print writes the container's structure to w.
//
// With keys == nil every allocated slot is dumped: the data node and its
// branch node for each key position. With keys set to a wire-format buffer,
// the record it identifies is located as Search would, and for each key
// position the chain of branch nodes leading from the trie head down to the
// record is printed; an error is returned if no record matches.
//
// Useful only for small tries, when debugging.
func (t *Trie[T]) Print(keys []byte, w io.Writer) error {
	if keys == nil {
		t.printAll(w)
		return nil
	}

	d := t.lookup(keys)
	if d == nil {
		return errors.New("print: no record matches the given keys")
	}

	fmt.Fprintf(w, "record at slot %d:\n", d.nsn)
	t.printDataNode(w, d)
	for k := 0; k < t.numKeys; k++ {
		fmt.Fprintf(w, "path of key %d:\n", k)
		t.printPath(w, d, k)
	}
	return nil
}

func (t *Trie[T]) printAll(w io.Writer) {
	fmt.Fprintf(w, "max nodes = %d  num keys = %d  key bytes = %d  allocated = %d\n\n",
		t.maxNodes, t.numKeys, t.keyBytes, t.totNodes)

	for n := 0; n <= t.maxNodes; n++ {
		d := &t.dnodes[n]
		if d.alloc == 0 {
			continue
		}
		fmt.Fprintf(w, "slot %d:\n", n)
		for k := 0; k < t.numKeys; k++ {
			t.printBranchNode(w, t.bnode(n, k), k)
		}
		t.printDataNode(w, d)
	}
}

// printPath walks key position k's trie head-down to d, printing each
// branch node passed. The walk re-descends by d's stored key rather than
// following parent links upward, so it prints what a search would traverse.
func (t *Trie[T]) printPath(w io.Writer, d *dataNode[T], k int) {
	ky := t.nodeKey(d, k)
	t.printBranchNode(w, t.heads[k], k)
	c := t.heads[k].l
	for !c.isData() {
		t.printBranchNode(w, c.b, k)
		if t.gbit(ky, c.b.bit) != 0 {
			c = c.b.r
		} else {
			c = c.b.l
		}
	}
}

func (t *Trie[T]) printBranchNode(w io.Writer, b *branchNode[T], k int) {
	fmt.Fprintf(w, "  branch k=%d nsn=%d side=%d bit=%d parent=%s left=%s right=%s\n",
		k, b.nsn, b.side, b.bit, fmtBranch(b.p), fmtRef(b.l), fmtRef(b.r))
}

func (t *Trie[T]) printDataNode(w io.Writer, d *dataNode[T]) {
	fmt.Fprintf(w, "  data nsn=%d alloc=%d\n", d.nsn, d.alloc)
	for k := 0; k < t.numKeys; k++ {
		fmt.Fprintf(w, "    key %-2d side=%d parent=%s value=%x\n",
			k, d.side[k], fmtBranch(d.p[k]), t.nodeKey(d, k)[1:])
	}
}

func fmtBranch[T any](b *branchNode[T]) string {
	if b == nil {
		return "nil"
	}
	return fmt.Sprintf("b%d", b.nsn)
}

func fmtRef[T any](r nodeRef[T]) string {
	switch {
	case r.isNil():
		return "nil"
	case r.isData():
		return fmt.Sprintf("d%d", r.d.nsn)
	default:
		return fmt.Sprintf("b%d", r.b.nsn)
	}
}
