// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rdx

// Parent-side indicators. A node hangs off either the left or the right
// child link of its parent branch node.
const (
	sideLeft  = 0
	sideRight = 1
)

// branchNode is an internal trie node. It routes a descent left or right on
// the single key bit indexed by bit.
//
// While a branch node sits on its key position's free list, the parent field
// is reused as the free-list successor link.
type branchNode[T any] struct {
	nsn  uint32 // sequence number, equals the slot index
	side uint8  // side of the parent link this node hangs on
	bit  uint32 // test bit index, 0..KeyBits
	p    *branchNode[T]
	l, r nodeRef[T]
}

// dataNode is a trie leaf holding one record and its keys, one per key
// position. The same data node is a leaf of every key position's trie.
type dataNode[T any] struct {
	nsn   uint32
	alloc uint8
	side  []uint8          // per key position: side of the parent link
	p     []*branchNode[T] // per key position: parent branch node
	key   []byte           // numKeys buffers of 1+keyBytes bytes, sentinel first
	next  *dataNode[T]     // data free-list successor
	data  T
}

// nodeRef is a tagged child reference. Exactly one of the two pointers is
// non-nil for a live reference; both nil means "no child". Keeping the tag in
// the reference lets a descent dispatch on node kind without inspecting node
// memory.
type nodeRef[T any] struct {
	b *branchNode[T]
	d *dataNode[T]
}

func (r nodeRef[T]) isData() bool { return r.d != nil }

func (r nodeRef[T]) isNil() bool { return r.b == nil && r.d == nil }

func branchRef[T any](b *branchNode[T]) nodeRef[T] { return nodeRef[T]{b: b} }

func dataRef[T any](d *dataNode[T]) nodeRef[T] { return nodeRef[T]{d: d} }
