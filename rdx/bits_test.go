// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rdx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGbit(t *testing.T) {
	tr, err := New[int](1, 1, 2)
	require.NoError(t, err)

	// sentinel-prefixed buffer: sentinel, high byte, low byte
	key := []byte{0x01, 0x80, 0x03}

	tests := []struct {
		bit  uint32
		want uint8
	}{
		{0, 1},  // low byte, bit 0
		{1, 1},  // low byte, bit 1
		{2, 0},  // low byte, bit 2
		{7, 0},  // low byte, bit 7
		{8, 0},  // high byte, bit 0
		{15, 1}, // high byte, bit 7
		{16, 1}, // sentinel byte, bit 0
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tr.gbit(key, tt.bit), "bit %d", tt.bit)
	}
}

func TestGbitRootSentinel(t *testing.T) {
	tr, err := New[int](1, 2, 4)
	require.NoError(t, err)

	// the root leaf is the only key with the sentinel bit set
	rootKey := tr.nodeKey(&tr.dnodes[0], 1)
	assert.Equal(t, uint8(1), tr.gbit(rootKey, tr.KeyBits()))

	userKey := make([]byte, 5)
	userKey[4] = 0xff
	assert.Equal(t, uint8(0), tr.gbit(userKey, tr.KeyBits()))
}
