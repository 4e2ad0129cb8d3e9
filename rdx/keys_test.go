// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rdx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysBuilder(t *testing.T) {
	ks := NewKeys(3, 4)
	assert.Equal(t, make([]byte, 15), ks.Bytes())

	ks.UseUint(0, 0x0102).Use(2, []byte{0xaa, 0xbb})
	assert.Equal(t, []byte{
		1, 0, 0, 1, 2, // position 0, used
		0, 0, 0, 0, 0, // position 1, ignored
		1, 0, 0, 0xaa, 0xbb, // position 2, used, left-padded
	}, ks.Bytes())

	ks.Ignore(0)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, ks.Bytes()[:5])

	ks.Reset()
	assert.Equal(t, make([]byte, 15), ks.Bytes())
}

func TestKeysLongMaterial(t *testing.T) {
	ks := NewKeys(1, 2).Use(0, []byte{1, 2, 3, 4})
	// low-order bytes win
	assert.Equal(t, []byte{1, 3, 4}, ks.Bytes())
}
