// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rdx

// gbit returns bit bitNum of a sentinel-prefixed key buffer of 1+keyBytes
// bytes. Bit 0 is the rightmost bit of the rightmost byte, ascending
// right-to-left within each byte and then leftward byte by byte. Bit
// keyBytes*8 is the rightmost bit of the sentinel byte. bitNum must not
// exceed keyBytes*8.
func (t *Trie[T]) gbit(key []byte, bitNum uint32) uint8 {
	byteIdx := t.keyBytes - int(bitNum/8)
	return (key[byteIdx] >> (bitNum % 8)) & 1
}
