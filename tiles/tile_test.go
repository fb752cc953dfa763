package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-tlogtiles/tlog"
)

func TestNewTileRejectsBadGeometry(t *testing.T) {
	tests := []struct {
		name   string
		height int
		level  int
		n      uint64
		width  int
		err    error
	}{
		{"height too large", 31, 0, 0, 1, ErrTileHeight},
		{"height zero", 0, 0, 0, 1, ErrTileHeight},
		{"level too large", 1, 64, 0, 1, ErrTileLevel},
		{"level below data", 1, -2, 0, 1, ErrTileLevel},
		{"width beyond capacity", 1, 0, 0, 3, ErrTileWidth},
		{"width zero", 1, 0, 0, 0, ErrTileWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTile(tt.height, tt.level, tt.n, tt.width)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	for _, ok := range []Tile{
		{Height: 1, Level: 0, N: 0, Width: 1},
		{Height: 30, Level: 63, N: 1 << 40, Width: 1 << 30},
		{Height: 8, Level: DataLevel, N: 7, Width: 256},
	} {
		got, err := NewTile(ok.Height, ok.Level, ok.N, ok.Width)
		require.NoError(t, err)
		assert.Equal(t, ok, got)
	}
}

func TestTileForIndex(t *testing.T) {
	tests := []struct {
		height   int
		index    uint64
		expected Tile
	}{
		// Height 2 tiles over the start of the sequence; see the layout
		// diagram in the tlog package.
		{2, 0, Tile{Height: 2, Level: 0, N: 0, Width: 1}},
		{2, 1, Tile{Height: 2, Level: 0, N: 0, Width: 2}},
		{2, 2, Tile{Height: 2, Level: 0, N: 0, Width: 2}},
		{2, 3, Tile{Height: 2, Level: 0, N: 0, Width: 3}},
		{2, 4, Tile{Height: 2, Level: 0, N: 0, Width: 4}},
		{2, 5, Tile{Height: 2, Level: 0, N: 0, Width: 4}},
		{2, 6, Tile{Height: 2, Level: 1, N: 0, Width: 1}},
		{2, 7, Tile{Height: 2, Level: 0, N: 1, Width: 1}},
		{2, 13, Tile{Height: 2, Level: 1, N: 0, Width: 2}},
		{2, 14, Tile{Height: 2, Level: 1, N: 0, Width: 2}},
		{1, 0, Tile{Height: 1, Level: 0, N: 0, Width: 1}},
		{1, 2, Tile{Height: 1, Level: 1, N: 0, Width: 1}},
		{1, 6, Tile{Height: 1, Level: 2, N: 0, Width: 1}},
	}
	for _, tt := range tests {
		got, err := TileForIndex(tt.height, tt.index)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "TileForIndex(%d, %d)", tt.height, tt.index)
	}

	_, err := TileForIndex(0, 0)
	assert.ErrorIs(t, err, ErrTileHeight)
	_, err = TileForIndex(31, 0)
	assert.ErrorIs(t, err, ErrTileHeight)
}

func TestLeafRange(t *testing.T) {
	tests := []struct {
		tile   Tile
		lo, hi uint64
	}{
		{Tile{Height: 8, Level: 0, N: 0, Width: 256}, 0, 256},
		{Tile{Height: 8, Level: 0, N: 3, Width: 10}, 768, 778},
		{Tile{Height: 8, Level: 1, N: 0, Width: 2}, 0, 2 * 256},
		{Tile{Height: 2, Level: 1, N: 1, Width: 4}, 16, 32},
		{Tile{Height: 8, Level: DataLevel, N: 3, Width: 10}, 768, 778},
	}
	for _, tt := range tests {
		lo, hi := tt.tile.LeafRange()
		assert.Equal(t, tt.lo, lo, "%s lo", tt.tile)
		assert.Equal(t, tt.hi, hi, "%s hi", tt.tile)
	}
}

func tileTestData(width int) ([]byte, []tlog.Hash) {
	hashes := make([]tlog.Hash, width)
	data := make([]byte, 0, width*tlog.HashSize)
	for i := range hashes {
		hashes[i] = tlog.RecordHash([]byte{byte(i)})
		data = append(data, hashes[i][:]...)
	}
	return data, hashes
}

func TestHashFromTile(t *testing.T) {
	// A full height 2 tile at level 0 lists the first four record hashes and
	// must reproduce every hash in the subtree over them.
	data, h := tileTestData(4)
	tile := Tile{Height: 2, Level: 0, N: 0, Width: 4}

	for _, tt := range []struct {
		index    uint64
		expected tlog.Hash
	}{
		{tlog.StoredHashIndex(0, 0), h[0]},
		{tlog.StoredHashIndex(0, 3), h[3]},
		{tlog.StoredHashIndex(1, 0), tlog.NodeHash(h[0], h[1])},
		{tlog.StoredHashIndex(1, 1), tlog.NodeHash(h[2], h[3])},
	} {
		got, err := HashFromTile(tile, data, tt.index)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "index %d", tt.index)
	}

	// Index in a different tile.
	_, err := HashFromTile(tile, data, tlog.StoredHashIndex(0, 4))
	assert.ErrorIs(t, err, ErrIndexNotInTile)

	// Tree levels 2 and above belong to the level 1 tile, even the root of
	// the subtree this tile lists. The level 1 tile serves them from its own
	// bottom row.
	root := tlog.NodeHash(tlog.NodeHash(h[0], h[1]), tlog.NodeHash(h[2], h[3]))
	_, err = HashFromTile(tile, data, tlog.StoredHashIndex(2, 0))
	assert.ErrorIs(t, err, ErrIndexNotInTile)
	_, err = HashFromTile(tile, data, tlog.StoredHashIndex(2, 1))
	assert.ErrorIs(t, err, ErrIndexNotInTile)

	tile1 := Tile{Height: 2, Level: 1, N: 0, Width: 1}
	got, err := HashFromTile(tile1, root[:], tlog.StoredHashIndex(2, 0))
	require.NoError(t, err)
	assert.Equal(t, root, got)

	// Short data.
	_, err = HashFromTile(tile, data[:3*tlog.HashSize], tlog.StoredHashIndex(0, 0))
	assert.ErrorIs(t, err, ErrTileDataSize)

	// Data tiles carry no hashes.
	_, err = HashFromTile(Tile{Height: 2, Level: DataLevel, N: 0, Width: 4}, data, 0)
	assert.ErrorIs(t, err, ErrDataTile)
}

func TestHashFromTilePartialCover(t *testing.T) {
	// A partial tile serves any hash whose minimal cover fits its width.
	data, h := tileTestData(3)
	tile := Tile{Height: 2, Level: 0, N: 0, Width: 3}

	got, err := HashFromTile(tile, data, tlog.StoredHashIndex(1, 0))
	require.NoError(t, err)
	assert.Equal(t, tlog.NodeHash(h[0], h[1]), got)

	got, err = HashFromTile(tile, data, tlog.StoredHashIndex(0, 2))
	require.NoError(t, err)
	assert.Equal(t, h[2], got)

	// The node over records 2 and 3 needs width 4, beyond this tile.
	_, err = HashFromTile(tile, data, tlog.StoredHashIndex(1, 1))
	assert.ErrorIs(t, err, ErrIndexNotInTile)
}
