// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rdx

import (
	"fmt"
	"io"
)

// VerifyMode selects how Verify reports.
type VerifyMode int

const (
	// ErrCode returns the first violation as an error, writing nothing.
	ErrCode VerifyMode = iota
	// ErrCodePrint additionally writes a report of the free and allocated
	// nodes before running the checks.
	ErrCodePrint
)

// VerifyError is the first structural violation Verify found. Code is a
// small positive integer identifying the failed check; it is stable across
// releases. A VerifyError means the container is corrupt and must not be
// used further.
type VerifyError struct {
	Code   int
	Detail string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("trie verify failed: code %d: %s", e.Code, e.Detail)
}

func verr(code int, format string, args ...any) *VerifyError {
	return &VerifyError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Verify exhaustively cross-checks the container's structural invariants
// and returns nil, or a *VerifyError describing the first violation. In
// ErrCodePrint mode a diagnostic report is written to w first; in ErrCode
// mode w may be nil.
//
// A slot's branch node and its data node move between trie and free lists
// independently: a remove returns the branch node spliced out above the
// record, which need not be the one its insert drew. The branch-node checks
// therefore partition each key position's branch arena by free-list
// membership, while the data-node checks follow the allocated flags.
//
// Checks, in order:
//
//	 1  head branch left child is a branch node or the root leaf
//	 2  head branch side indicator is zero
//	 3  head branch has no parent
//	 4  head branch test bit equals the key bit width
//	 5  head branch has no right child
//	 6  root data node keys are all 0xff
//	 7  data node per-key arrays have the constructed lengths
//	 8  branch node sequence numbers match their slot
//	 9  data node sequence numbers match their slot
//	10  data node allocated flags are 0 or 1
//	11  free plus allocated data nodes total the pool size
//	12  allocated data nodes equal the record counter plus the root
//	13  no two allocated records share a key at any position
//	14  branch free lists reach only their key position's branch arena
//	15  the data free list reaches only unallocated data nodes
//	16  free-list lengths account for every node not in a trie
//	17  in-trie branch node side indicators are 0 or 1
//	18  in-trie branch node parents are in-trie branch nodes of the same trie
//	19  in-trie branch node test bits do not exceed the key bit width
//	20  in-trie branch node left children are in-trie branch or allocated data nodes
//	21  in-trie branch node right children are in-trie branch or allocated data nodes
//	22  data node parents are in-trie branch nodes of the respective trie
//	23  data node side indicators are 0 or 1 and the parent links back
//	24  every allocated record is found by a search with its own keys
//	25  that search resolves to the very same record
func (t *Trie[T]) Verify(mode VerifyMode, w io.Writer) error {
	metricVerifies().Add(1)

	// partition the data nodes by the allocated flag; collect every key
	// position's branch arena for membership tests
	allocDN := make(map[*dataNode[T]]int)
	freeDN := make(map[*dataNode[T]]int)
	allBN := make([]map[*branchNode[T]]int, t.numKeys)
	for k := 0; k < t.numKeys; k++ {
		allBN[k] = make(map[*branchNode[T]]int)
		for n := 0; n <= t.maxNodes; n++ {
			allBN[k][t.bnode(n, k)] = n
		}
	}
	var allocSlots, freeSlots []int
	for n := 0; n <= t.maxNodes; n++ {
		d := &t.dnodes[n]
		if d.alloc == 0 {
			freeDN[d] = n
			freeSlots = append(freeSlots, n)
		} else {
			allocDN[d] = n
			allocSlots = append(allocSlots, n)
		}
	}

	if mode == ErrCodePrint {
		t.writeVerifyReport(w, freeSlots, allocSlots)
	}

	// 1..6: the head branch and root record hold their fixed values
	for k := 0; k < t.numKeys; k++ {
		head := t.heads[k]
		if head.l.isNil() || (head.l.isData() && head.l.d != &t.dnodes[0]) {
			return verr(1, "head branch of key %d: left child neither a branch node nor the root leaf", k)
		}
		if head.side != sideLeft {
			return verr(2, "head branch of key %d: non-zero side indicator %d", k, head.side)
		}
		if head.p != nil {
			return verr(3, "head branch of key %d: non-nil parent", k)
		}
		if head.bit != t.KeyBits() {
			return verr(4, "head branch of key %d: test bit %d, want %d", k, head.bit, t.KeyBits())
		}
		if !head.r.isNil() {
			return verr(5, "head branch of key %d: non-nil right child", k)
		}
		for _, b := range t.nodeKey(&t.dnodes[0], k) {
			if b != 0xff {
				return verr(6, "root data node keys of key %d not all 0xff", k)
			}
		}
	}

	// 7..10: slot bookkeeping
	for n := 0; n <= t.maxNodes; n++ {
		d := &t.dnodes[n]
		if len(d.side) != t.numKeys || len(d.p) != t.numKeys || len(d.key) != t.numKeys*(1+t.keyBytes) {
			return verr(7, "data node %d: per-key array lengths corrupted", n)
		}
		for k := 0; k < t.numKeys; k++ {
			if t.bnode(n, k).nsn != uint32(n) {
				return verr(8, "branch node of key %d at slot %d: sequence number %d", k, n, t.bnode(n, k).nsn)
			}
		}
		if d.nsn != uint32(n) {
			return verr(9, "data node at slot %d: sequence number %d", n, d.nsn)
		}
		if d.alloc != 0 && d.alloc != 1 {
			return verr(10, "data node %d: allocated flag %d not 0/1", n, d.alloc)
		}
	}

	// 11..12: pool accounting
	if len(allocDN)+len(freeDN) != t.maxNodes+1 {
		return verr(11, "allocated(%d) + free(%d) data nodes not %d", len(allocDN), len(freeDN), t.maxNodes+1)
	}
	if len(allocDN) != t.totNodes+1 {
		return verr(12, "allocated data nodes %d, counter says %d + root", len(allocDN), t.totNodes)
	}

	// 13: key uniqueness per position
	for k := 0; k < t.numKeys; k++ {
		seen := make(map[string]int, len(allocSlots))
		for _, n := range allocSlots {
			key := string(t.nodeKey(&t.dnodes[n], k)[1:])
			if prev, dup := seen[key]; dup {
				return verr(13, "slots %d and %d share key %x at position %d", prev, n, key, k)
			}
			seen[key] = n
		}
	}

	// 14..15: free lists stay within their arenas; walks are bounded so a
	// cyclic corruption reports instead of hanging
	onFreeList := make([]map[*branchNode[T]]bool, t.numKeys)
	for k := 0; k < t.numKeys; k++ {
		onFreeList[k] = make(map[*branchNode[T]]bool)
		for b := t.bfreeHead[k]; b != nil; b = b.p {
			if _, ok := allBN[k][b]; !ok || onFreeList[k][b] {
				return verr(14, "branch free list of key %d reaches outside its arena or cycles", k)
			}
			onFreeList[k][b] = true
		}
	}
	dfreeLen := 0
	for d := t.dfreeHead; d != nil; d = d.next {
		if _, ok := freeDN[d]; !ok || dfreeLen > t.maxNodes {
			return verr(15, "data free list reaches a non-free node")
		}
		dfreeLen++
	}

	// 16: each trie holds one branch node per record plus the head, so the
	// free lists must carry exactly the rest
	for k := 0; k < t.numKeys; k++ {
		if len(onFreeList[k]) != t.maxNodes-t.totNodes {
			return verr(16, "branch free list of key %d holds %d nodes, want %d", k, len(onFreeList[k]), t.maxNodes-t.totNodes)
		}
	}
	if dfreeLen != len(freeDN) {
		return verr(16, "data free list holds %d nodes, %d slots are free", dfreeLen, len(freeDN))
	}

	// 17..21: every in-trie branch node's fields. In-trie means in the
	// arena and not on the free list.
	for k := 0; k < t.numKeys; k++ {
		head := t.heads[k]
		for n := 0; n <= t.maxNodes; n++ {
			b := t.bnode(n, k)
			if onFreeList[k][b] {
				continue
			}
			if b.side != sideLeft && b.side != sideRight {
				return verr(17, "branch node of key %d at slot %d: side indicator %d not 0/1", k, n, b.side)
			}
			if b != head {
				if !t.inTrie(allBN[k], onFreeList[k], b.p) {
					return verr(18, "branch node of key %d at slot %d: parent corrupted", k, n)
				}
			}
			if b.bit > t.KeyBits() {
				return verr(19, "branch node of key %d at slot %d: test bit %d exceeds %d", k, n, b.bit, t.KeyBits())
			}
			if !t.validChild(allBN[k], onFreeList[k], allocDN, b.l) {
				return verr(20, "branch node of key %d at slot %d: left child corrupted", k, n)
			}
			if b != head {
				if !t.validChild(allBN[k], onFreeList[k], allocDN, b.r) {
					return verr(21, "branch node of key %d at slot %d: right child corrupted", k, n)
				}
			}
		}
	}

	// 22..23: every allocated data node's parent linkage per key position
	for _, n := range allocSlots {
		d := &t.dnodes[n]
		for k := 0; k < t.numKeys; k++ {
			if !t.inTrie(allBN[k], onFreeList[k], d.p[k]) {
				return verr(22, "data node %d: parent of key %d corrupted", n, k)
			}
			if d.side[k] != sideLeft && d.side[k] != sideRight {
				return verr(23, "data node %d: side indicator of key %d is %d not 0/1", n, k, d.side[k])
			}
			var back nodeRef[T]
			if d.side[k] == sideLeft {
				back = d.p[k].l
			} else {
				back = d.p[k].r
			}
			if back.d != d {
				return verr(23, "data node %d: parent of key %d does not link back on side %d", n, k, d.side[k])
			}
		}
	}

	// 24..25: every user record must be found again by its own keys
	keys := make([]byte, t.numKeys*(1+t.keyBytes))
	for _, n := range allocSlots {
		if n == 0 {
			continue
		}
		d := &t.dnodes[n]
		for k := 0; k < t.numKeys; k++ {
			keys[k*(1+t.keyBytes)] = FlagUse
			copy(keys[k*(1+t.keyBytes)+1:(k+1)*(1+t.keyBytes)], t.nodeKey(d, k)[1:])
		}
		found := t.lookup(keys)
		if found == nil {
			return verr(24, "data node %d not found by a search with its own keys", n)
		}
		if found != d {
			return verr(25, "search with data node %d's keys resolved to slot %d", n, found.nsn)
		}
	}

	return nil
}

// inTrie reports whether b is a branch node of the checked arena that is
// not parked on the free list.
func (t *Trie[T]) inTrie(arena map[*branchNode[T]]int, onFree map[*branchNode[T]]bool, b *branchNode[T]) bool {
	if b == nil || onFree[b] {
		return false
	}
	_, ok := arena[b]
	return ok
}

// validChild reports whether r references an in-trie branch node of the
// checked trie or an allocated data node.
func (t *Trie[T]) validChild(arena map[*branchNode[T]]int, onFree map[*branchNode[T]]bool, dset map[*dataNode[T]]int, r nodeRef[T]) bool {
	if r.isData() {
		_, ok := dset[r.d]
		return ok
	}
	return t.inTrie(arena, onFree, r.b)
}

// writeVerifyReport dumps the free and allocated node addresses and the
// allocated keys, the way the diagnostic verify mode documents state before
// judging it.
func (t *Trie[T]) writeVerifyReport(w io.Writer, freeSlots, allocSlots []int) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "free data node addresses and branch node addresses\n")
	fmt.Fprintf(w, "node  DNA                 BNAs\n")
	for _, n := range freeSlots {
		fmt.Fprintf(w, "%4d  %p ", n, &t.dnodes[n])
		for k := 0; k < t.numKeys; k++ {
			fmt.Fprintf(w, " %p", t.bnode(n, k))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "allocated data node addresses, branch node addresses and keys\n")
	fmt.Fprintf(w, "node  DNA                 BNAs\n")
	for _, n := range allocSlots {
		fmt.Fprintf(w, "%4d  %p ", n, &t.dnodes[n])
		for k := 0; k < t.numKeys; k++ {
			fmt.Fprintf(w, " %p", t.bnode(n, k))
		}
		fmt.Fprintln(w)
		for k := 0; k < t.numKeys; k++ {
			fmt.Fprintf(w, "      key %-2d = %x\n", k, t.nodeKey(&t.dnodes[n], k)[1:])
		}
	}
	fmt.Fprintln(w)
}
