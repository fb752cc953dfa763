package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTilesCardinality(t *testing.T) {
	tests := []struct {
		oldSize, newSize uint64
		expected         int
	}{
		{0, 1, 1},
		{100, 101, 1},
		{1023, 1025, 3},
		{1024, 1030, 1},
		{1030, 2000, 1},
		{1030, 10000, 10},
		{49516517, 49516586, 3},
	}
	for _, tt := range tests {
		tiles, err := NewTiles(10, tt.oldSize, tt.newSize)
		require.NoError(t, err)
		assert.Len(t, tiles, tt.expected, "(%d, %d)", tt.oldSize, tt.newSize)
	}
}

func TestNewTilesSmall(t *testing.T) {
	got, err := NewTiles(1, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, Tiles{
		{Height: 1, Level: 0, N: 0, Width: 2},
		{Height: 1, Level: 0, N: 1, Width: 2},
		{Height: 1, Level: 1, N: 0, Width: 2},
		{Height: 1, Level: 2, N: 0, Width: 1},
	}, got)

	// Growing by one leaf touches only the frontier tiles.
	got, err = NewTiles(1, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, Tiles{
		{Height: 1, Level: 0, N: 2, Width: 1},
	}, got)

	got, err = NewTiles(1, 4, 6)
	require.NoError(t, err)
	assert.Equal(t, Tiles{
		{Height: 1, Level: 0, N: 2, Width: 2},
		{Height: 1, Level: 1, N: 1, Width: 1},
	}, got)

	// No growth, no tiles.
	got, err = NewTiles(1, 6, 6)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewTilesHeightRange(t *testing.T) {
	_, err := NewTiles(0, 0, 1)
	assert.ErrorIs(t, err, ErrTileHeight)
	_, err = NewTiles(31, 0, 1)
	assert.ErrorIs(t, err, ErrTileHeight)

	_, err = NewTiles(30, 0, 1<<40)
	assert.NoError(t, err)
}

func TestNewTilesOrdering(t *testing.T) {
	sizes := []struct{ oldSize, newSize uint64 }{
		{0, 1}, {0, 1000}, {17, 1000}, {1023, 1025}, {4096, 70000},
	}
	for _, s := range sizes {
		for _, height := range []int{1, 2, 5, 10} {
			tiles, err := NewTiles(height, s.oldSize, s.newSize)
			require.NoError(t, err)

			seen := map[Tile]bool{}
			for i, tile := range tiles {
				assert.Equal(t, height, tile.Height)
				full := Tile{Height: tile.Height, Level: tile.Level, N: tile.N, Width: 1 << height}
				assert.False(t, seen[full], "duplicate coordinates %s", tile)
				seen[full] = true

				if i == 0 {
					continue
				}
				prev := tiles[i-1]
				inOrder := prev.Level < tile.Level ||
					(prev.Level == tile.Level && prev.N < tile.N)
				assert.True(t, inOrder, "%s before %s", prev, tile)
				// Only the last tile of a level may be partial.
				if prev.Level == tile.Level {
					assert.False(t, prev.IsPartial(), "partial tile %s is not at the frontier", prev)
				}
			}
		}
	}
}
