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

func TestPrintWholeTrie(t *testing.T) {
	tr := newTestTrie(t, 4, 2, 2)
	_, err := tr.Insert(tuple(2, 2, 1, 2))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tr.Print(nil, &buf))
	out := buf.String()

	assert.Contains(t, out, "max nodes = 4  num keys = 2  key bytes = 2  allocated = 1")
	assert.Contains(t, out, "slot 0:")
	assert.Contains(t, out, "slot 1:")
	assert.Contains(t, out, "value=0001")
	assert.NotContains(t, out, "slot 2:")
}

func TestPrintRecordPath(t *testing.T) {
	tr := newTestTrie(t, 4, 2, 2)
	_, err := tr.Insert(tuple(2, 2, 1, 2))
	require.NoError(t, err)
	_, err = tr.Insert(tuple(2, 2, 3, 4))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tr.Print(tuple(2, 2, 3, 4), &buf))
	out := buf.String()
	assert.Contains(t, out, "record at slot 2:")
	assert.Contains(t, out, "path of key 0:")
	assert.Contains(t, out, "path of key 1:")

	assert.Error(t, tr.Print(tuple(2, 2, 9, 9), &buf))
}
