// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rdx implements a fixed-capacity, in-memory container that maps
// tuples of fixed-width binary keys to records of an opaque payload type.
//
// Every stored record is indexed by numKeys independent keys at once: one
// radix PATRICIA trie per key position, with all tries sharing the record
// set as their common leaves. Inserting a record allocates exactly one
// branch node per key position plus one data node, all drawn from a pool
// sized at construction; removing it returns them. A search supplying any
// non-empty subset of the key positions finds the single record carrying
// all of them, or reports a miss if the supplied keys disagree.
//
// Insert, Search and Remove work in storage allocated at construction;
// Verify and Print allocate as they go. The container is not safe for
// concurrent use.
package rdx

import (
	"bytes"

	"github.com/pkg/errors"
)

// Insert failure values. ErrKeyExists is returned together with the record
// already holding the colliding key.
var (
	ErrKeyExists  = errors.New("key already exists")
	ErrFull       = errors.New("no free node available")
	ErrBadKeyFlag = errors.New("bad key use flag")
)

// Key use flags, the leading byte of each key position in the wire format.
const (
	FlagIgnore = 0
	FlagUse    = 1
)

// Trie is a multi-key radix PATRICIA trie over records of payload type T.
//
// The key wire format accepted by Insert, Search and Remove is a buffer of
// numKeys*(1+keyBytes) bytes: for each key position, a one-byte use flag
// (FlagIgnore or FlagUse) followed by keyBytes bytes of key material,
// most-significant byte first.
type Trie[T any] struct {
	maxNodes int // user record capacity
	numKeys  int // key positions per record
	keyBytes int // bytes per key

	// node pool: maxNodes+1 slots, slot-major branch node layout. Slot 0 is
	// the permanently allocated impossible-key root record. The backing
	// arrays never grow, so node pointers are stable for the container's
	// lifetime.
	bnodes []branchNode[T] // (maxNodes+1)*numKeys
	dnodes []dataNode[T]   // maxNodes+1

	heads     []*branchNode[T] // trie head per key position
	bfreeHead []*branchNode[T] // branch free-list head per key position
	dfreeHead *dataNode[T]
	totNodes  int // allocated user records

	// operation scratch, sized at construction so Insert, Search, Remove
	// and Ascend need no allocation of their own
	ky     []byte         // sentinel-prefixed key copies, numKeys*(1+keyBytes)
	term   []*dataNode[T] // per key position: first-pass terminating node
	walked []*T
}

// New creates a container of up to maxNodes records with numKeys keys per
// record, each keyBytes wide. All node storage is allocated here; Insert,
// Search and Remove allocate nothing later.
func New[T any](maxNodes, numKeys, keyBytes int) (*Trie[T], error) {
	if maxNodes < 1 {
		return nil, errors.Errorf("bad parameters: max nodes %d, must be > 0", maxNodes)
	}
	if numKeys < 1 {
		return nil, errors.Errorf("bad parameters: num keys %d, must be > 0", numKeys)
	}
	if keyBytes < 1 {
		return nil, errors.Errorf("bad parameters: key bytes %d, must be > 0", keyBytes)
	}

	t := &Trie[T]{
		maxNodes: maxNodes,
		numKeys:  numKeys,
		keyBytes: keyBytes,

		bnodes: make([]branchNode[T], (maxNodes+1)*numKeys),
		dnodes: make([]dataNode[T], maxNodes+1),

		heads:     make([]*branchNode[T], numKeys),
		bfreeHead: make([]*branchNode[T], numKeys),

		ky:     make([]byte, numKeys*(1+keyBytes)),
		term:   make([]*dataNode[T], numKeys),
		walked: make([]*T, 0, maxNodes+1),
	}

	// per-slot data node arrays are carved out of three contiguous blocks
	sides := make([]uint8, (maxNodes+1)*numKeys)
	parents := make([]*branchNode[T], (maxNodes+1)*numKeys)
	keymem := make([]byte, (maxNodes+1)*numKeys*(1+keyBytes))
	for n := 0; n <= maxNodes; n++ {
		d := &t.dnodes[n]
		d.side = sides[n*numKeys : (n+1)*numKeys : (n+1)*numKeys]
		d.p = parents[n*numKeys : (n+1)*numKeys : (n+1)*numKeys]
		d.key = keymem[n*numKeys*(1+keyBytes) : (n+1)*numKeys*(1+keyBytes) : (n+1)*numKeys*(1+keyBytes)]
	}

	t.Initialize()
	return t, nil
}

// MaxNodes returns the user record capacity.
func (t *Trie[T]) MaxNodes() int { return t.maxNodes }

// NumKeys returns the number of key positions per record.
func (t *Trie[T]) NumKeys() int { return t.numKeys }

// KeyBytes returns the byte width of every key.
func (t *Trie[T]) KeyBytes() int { return t.keyBytes }

// KeyBits returns the bit index tested at each trie head; it is one past
// the highest user key bit, reaching into the sentinel byte.
func (t *Trie[T]) KeyBits() uint32 { return uint32(t.keyBytes) * 8 }

// Count returns the number of user records currently allocated.
func (t *Trie[T]) Count() int { return t.totNodes }

// bnode returns slot n's branch node for key position k.
func (t *Trie[T]) bnode(n, k int) *branchNode[T] {
	return &t.bnodes[n*t.numKeys+k]
}

// nodeKey returns data node d's stored key buffer for key position k,
// sentinel byte included.
func (t *Trie[T]) nodeKey(d *dataNode[T], k int) []byte {
	off := k * (1 + t.keyBytes)
	return d.key[off : off+1+t.keyBytes]
}

// kyBuf returns the scratch key buffer for key position k.
func (t *Trie[T]) kyBuf(k int) []byte {
	off := k * (1 + t.keyBytes)
	return t.ky[off : off+1+t.keyBytes]
}

// loadKy copies key position k out of the caller's wire-format buffer into
// scratch, replacing the use flag with the zero sentinel byte.
func (t *Trie[T]) loadKy(keys []byte, k int) []byte {
	ky := t.kyBuf(k)
	ky[0] = 0
	copy(ky[1:], keys[k*(1+t.keyBytes)+1:])
	return ky
}

// Initialize resets the container to the empty state. The impossible-key
// root record occupies slot 0 with every key byte 0xff; all other slots are
// chained onto the free lists.
func (t *Trie[T]) Initialize() {
	for n := 0; n <= t.maxNodes; n++ {
		for k := 0; k < t.numKeys; k++ {
			t.bnode(n, k).nsn = uint32(n)
		}
		t.dnodes[n].nsn = uint32(n)
		t.dnodes[n].alloc = 0
	}
	t.dnodes[0].alloc = 1
	t.totNodes = 0

	for k := 0; k < t.numKeys; k++ {
		// the head branch is never tested: descents start at its left
		// child, under which every record and the root leaf hang. Its test
		// bit is the sentinel bit, which only the root record has set
		head := t.bnode(0, k)
		head.side = sideLeft
		head.p = nil
		head.bit = t.KeyBits()
		head.l = dataRef(&t.dnodes[0])
		head.r = nodeRef[T]{}
		t.heads[k] = head

		// branch free list for key position k, threaded through the parent
		// field, head at slot 1
		t.bfreeHead[k] = t.bnode(1, k)
		for n := 1; n <= t.maxNodes; n++ {
			b := t.bnode(n, k)
			b.side = sideLeft
			b.bit = 0
			b.l = nodeRef[T]{}
			b.r = nodeRef[T]{}
			if n < t.maxNodes {
				b.p = t.bnode(n+1, k)
			} else {
				b.p = nil
			}
		}

		for n := 0; n <= t.maxNodes; n++ {
			d := &t.dnodes[n]
			d.side[k] = sideLeft
			d.p[k] = nil
			ky := t.nodeKey(d, k)
			for i := range ky {
				ky[i] = 0
			}
		}
		t.dnodes[0].p[k] = head

		rootKey := t.nodeKey(&t.dnodes[0], k)
		for i := range rootKey {
			rootKey[i] = 0xff
		}
	}

	// data free list, head at slot 1
	t.dfreeHead = &t.dnodes[1]
	for n := 1; n <= t.maxNodes; n++ {
		if n < t.maxNodes {
			t.dnodes[n].next = &t.dnodes[n+1]
		} else {
			t.dnodes[n].next = nil
		}
	}
}

// descend walks key position k's trie by bit tests of the sentinel-prefixed
// key buffer ky, starting below the head, until a data node terminates the
// path.
func (t *Trie[T]) descend(ky []byte, k int) *dataNode[T] {
	c := t.heads[k].l
	for !c.isData() {
		if t.gbit(ky, c.b.bit) != 0 {
			c = c.b.r
		} else {
			c = c.b.l
		}
	}
	return c.d
}

// lookup resolves a wire-format key buffer to the single data node all
// use-flagged positions agree on, or nil on any miss: an out-of-range use
// flag, an empty flag set, positions converging on different records, or a
// stored key differing from the supplied one.
func (t *Trie[T]) lookup(keys []byte) *dataNode[T] {
	if len(keys) != t.numKeys*(1+t.keyBytes) {
		return nil
	}

	var found *dataNode[T]
	used := 0
	for k := 0; k < t.numKeys; k++ {
		switch keys[k*(1+t.keyBytes)] {
		case FlagIgnore:
			continue
		case FlagUse:
			used++
		default:
			return nil
		}

		ky := t.loadKy(keys, k)
		d := t.descend(ky, k)

		// all used positions must end at the same data node
		if found == nil {
			found = d
		} else if d != found {
			return nil
		}

		// the sentinel byte makes this comparison reject the root leaf
		if !bytes.Equal(ky, t.nodeKey(d, k)) {
			return nil
		}
	}
	if used == 0 {
		return nil
	}
	return found
}

// Search finds the record carrying every use-flagged key and returns a
// pointer to its payload, or nil on a miss. The pointer stays valid until a
// Remove targets that record.
func (t *Trie[T]) Search(keys []byte) *T {
	metricSearches().Add(1)
	d := t.lookup(keys)
	if d == nil {
		return nil
	}
	return &d.data
}

// Insert stores a new record under the supplied keys. Every use flag must be
// FlagUse. On success the returned pointer addresses the new record's
// payload in place. If any key position already holds one of the supplied
// keys, the colliding record's payload is returned with ErrKeyExists; the
// duplicate check runs before the capacity check, so a duplicate wins over
// ErrFull. A failed insert changes nothing.
func (t *Trie[T]) Insert(keys []byte) (*T, error) {
	metricInserts().Add(1)
	if len(keys) != t.numKeys*(1+t.keyBytes) {
		return nil, ErrBadKeyFlag
	}
	for k := 0; k < t.numKeys; k++ {
		if keys[k*(1+t.keyBytes)] != FlagUse {
			return nil, ErrBadKeyFlag
		}
	}

	// first pass: find, per key position, the record the new key would
	// collide with. Branch nodes store no keys, so only the terminating
	// data node can reveal a duplicate.
	for k := 0; k < t.numKeys; k++ {
		ky := t.loadKy(keys, k)
		d := t.descend(ky, k)
		if bytes.Equal(ky, t.nodeKey(d, k)) {
			return &d.data, ErrKeyExists
		}
		t.term[k] = d
	}

	// all free lists are checked before any node is detached, so a Full
	// return leaves every list untouched
	if t.dfreeHead == nil {
		return nil, ErrFull
	}
	for k := 0; k < t.numKeys; k++ {
		if t.bfreeHead[k] == nil {
			return nil, ErrFull
		}
	}

	dna := t.dfreeHead
	t.dfreeHead = dna.next
	t.totNodes++

	for k := 0; k < t.numKeys; k++ {
		ky := t.kyBuf(k)

		// highest bit where the new key differs from the terminating
		// record's key. The sentinel byte guarantees a difference exists:
		// against the root leaf it differs at the sentinel bit, against any
		// other leaf the first pass proved a mismatch.
		bit := t.KeyBits()
		termKey := t.nodeKey(t.term[k], k)
		for t.gbit(termKey, bit) == t.gbit(ky, bit) {
			bit--
		}

		bna := t.bfreeHead[k]
		t.bfreeHead[k] = bna.p

		// second descent: stop at the splice point, which is the first
		// child that is a data node or a branch testing at or below the
		// differing bit
		lr := uint8(sideLeft)
		p := t.heads[k]
		c := p.l
		for !c.isData() && c.b.bit > bit {
			p = c.b
			if t.gbit(ky, c.b.bit) != 0 {
				c = c.b.r
				lr = sideRight
			} else {
				c = c.b.l
				lr = sideLeft
			}
		}
		// splice the new branch node between p and c
		if lr == sideLeft {
			p.l = branchRef(bna)
		} else {
			p.r = branchRef(bna)
		}
		if c.isData() {
			c.d.p[k] = bna
		} else {
			c.b.p = bna
		}

		bna.side = lr
		bna.bit = bit
		bna.p = p

		// the child matching bit 1 of the new key goes right
		if t.gbit(ky, bit) != 0 {
			bna.l = c
			bna.r = dataRef(dna)
			dna.side[k] = sideRight
			if c.isData() {
				c.d.side[k] = sideLeft
			} else {
				c.b.side = sideLeft
			}
		} else {
			bna.l = dataRef(dna)
			bna.r = c
			dna.side[k] = sideLeft
			if c.isData() {
				c.d.side[k] = sideRight
			} else {
				c.b.side = sideRight
			}
		}

		copy(t.nodeKey(dna, k), ky)
		dna.p[k] = bna
	}

	dna.alloc = 1
	return &dna.data, nil
}

// Remove deletes the record identified by the use-flagged keys and returns
// a pointer to its payload, or nil if no record matches. Any non-empty,
// agreeing subset of the key positions suffices. The payload may be read
// until the next mutating call; after that the slot may be reused.
func (t *Trie[T]) Remove(keys []byte) *T {
	metricRemoves().Add(1)
	d := t.lookup(keys)
	if d == nil {
		return nil
	}

	for k := 0; k < t.numKeys; k++ {
		bp := d.p[k]

		// the sibling subtree replaces the spliced-out branch node
		var oc nodeRef[T]
		if d.side[k] == sideLeft {
			oc = bp.r
		} else {
			oc = bp.l
		}

		if oc.isData() {
			oc.d.p[k] = bp.p
			oc.d.side[k] = bp.side
		} else {
			oc.b.p = bp.p
			oc.b.side = bp.side
		}

		if bp.side == sideLeft {
			bp.p.l = oc
		} else {
			bp.p.r = oc
		}

		bp.p = t.bfreeHead[k]
		t.bfreeHead[k] = bp
	}

	d.alloc = 0
	d.next = t.dfreeHead
	t.dfreeHead = d
	t.totNodes--

	return &d.data
}

// Ascend returns the user records in ascending order of their key at
// position k, by in-order traversal of that position's trie. The returned
// slice is reused by the next Ascend call. Fails only on k out of range.
func (t *Trie[T]) Ascend(k int) ([]*T, error) {
	if k < 0 || k >= t.numKeys {
		return nil, errors.Errorf("key index %d out of range 0..%d", k, t.numKeys-1)
	}
	t.walked = t.walked[:0]
	t.walk(branchRef(t.heads[k]))
	// the root leaf's all-0xff keys sort past every user key, so it is
	// always the last node visited
	return t.walked[:len(t.walked)-1], nil
}

func (t *Trie[T]) walk(r nodeRef[T]) {
	if r.isNil() {
		return
	}
	if r.isData() {
		t.walked = append(t.walked, &r.d.data)
		return
	}
	t.walk(r.b.l)
	t.walk(r.b.r)
}
