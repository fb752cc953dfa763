package tiles

import (
	"fmt"

	"github.com/forestrie/go-tlogtiles/tlog"
)

// DataLevel is the reserved tile level marking a tile that carries raw record
// data for its record range instead of hashes.
const DataLevel = -1

// Tile describes one fixed height block of a transparency log.
//
// A tile of height H at level L and offset N lists W consecutive hashes at
// tree level H*L, starting at level offset N * 2^H. The tile represents the
// entire subtree of height H with those hashes as its leaves; the levels
// above H*L can be recomputed from the listed hashes, so only the bottom row
// is ever transferred.
//
// The zero Tile is not valid. Use [NewTile] so the invariants are checked.
type Tile struct {
	// Height of the tile, in [1, 30].
	Height int
	// Level of the tile, in [-1, 63]. [DataLevel] marks a data tile.
	Level int
	// N is the tile's offset within its level, counting from 0.
	N uint64
	// Width is the number of hashes the tile lists, in [1, 2^Height]. A
	// tile with Width < 2^Height is partial.
	Width int
}

// NewTile returns the tile with the given geometry, or an invariant
// violation error. It never panics; callers treat a geometry error as an
// ordinary recoverable outcome.
func NewTile(height, level int, n uint64, width int) (Tile, error) {
	if height < 1 || height > 30 {
		return Tile{}, fmt.Errorf("height %d: %w", height, ErrTileHeight)
	}
	if level < DataLevel || level > 63 {
		return Tile{}, fmt.Errorf("level %d: %w", level, ErrTileLevel)
	}
	if width < 1 || width > 1<<height {
		return Tile{}, fmt.Errorf("width %d at height %d: %w", width, height, ErrTileWidth)
	}
	return Tile{Height: height, Level: level, N: n, Width: width}, nil
}

// IsData reports whether the tile holds record data rather than hashes.
func (t Tile) IsData() bool {
	return t.Level == DataLevel
}

// IsPartial reports whether the tile lists fewer than 2^Height hashes.
func (t Tile) IsPartial() bool {
	return t.Width != 1<<t.Height
}

// LeafRange returns the half open record range [lo, hi) the tile commits to.
// For a data tile it is the record range whose data the tile carries.
func (t Tile) LeafRange() (lo, hi uint64) {
	level := t.Level
	if level == DataLevel {
		level = 0
	}
	// Each listed entry covers 2^(Height*Level) records.
	unit := uint(t.Height * level)
	lo = (t.N << uint(t.Height)) << unit
	return lo, lo + uint64(t.Width)<<unit
}

// TileForIndex returns the tile of the given height storing the hash at the
// given stored hash index. The returned tile has the least width that covers
// the index, so it matches both the full tile and any partial tile a log of
// sufficient size serves for those coordinates.
//
// It fails only when height is outside [1, 30].
func TileForIndex(height int, index uint64) (Tile, error) {
	if height < 1 || height > 30 {
		return Tile{}, fmt.Errorf("height %d: %w", height, ErrTileHeight)
	}
	t, _, _ := tileForIndex(height, index)
	return t, nil
}

// tileForIndex also returns the byte range within the tile's data that the
// hash at index is recomputed from. height must already be validated.
func tileForIndex(height int, index uint64) (Tile, int, int) {
	c := tlog.SplitStoredHashIndex(index)

	t := Tile{Height: height, Level: c.Level / height}

	// The remainder is the hash's level within the tile's own subtree.
	level := c.Level - t.Level*height
	t.N = c.N << uint(level) >> uint(height)

	// What is left of n is the hash's offset within the tile at its in-tile
	// level; one hash there covers 2^level of the tile's bottom row.
	n := c.N - (t.N << uint(height) >> uint(level))
	t.Width = int((n + 1) << uint(level))

	start := int(n<<uint(level)) * tlog.HashSize
	end := t.Width * tlog.HashSize
	return t, start, end
}

// HashFromTile returns the hash at the given stored hash index, recomputed
// from the tile's data. data is the tile's bottom row, Width hashes of
// [tlog.HashSize] bytes each. The tile must be a hash tile covering index,
// though it may be wider than the minimal covering tile.
func HashFromTile(t Tile, data []byte, index uint64) (tlog.Hash, error) {
	if _, err := NewTile(t.Height, t.Level, t.N, t.Width); err != nil {
		return tlog.Hash{}, err
	}
	if t.IsData() {
		return tlog.Hash{}, fmt.Errorf("%s: %w", t.Path(), ErrDataTile)
	}
	if len(data) < t.Width*tlog.HashSize {
		return tlog.Hash{}, fmt.Errorf(
			"%d bytes for %s: %w", len(data), t.Path(), ErrTileDataSize)
	}
	t1, start, end := tileForIndex(t.Height, index)
	if t1.Level != t.Level || t1.N != t.N || t1.Width > t.Width {
		return tlog.Hash{}, fmt.Errorf(
			"index %d is in %s not %s: %w", index, t1.Path(), t.Path(), ErrIndexNotInTile)
	}
	return tileHash(data[start:end]), nil
}

// tileHash computes the root of the perfect subtree whose leaves are the
// given hashes. len(data) is a power of two multiple of tlog.HashSize.
func tileHash(data []byte) tlog.Hash {
	if len(data) == tlog.HashSize {
		var h tlog.Hash
		copy(h[:], data)
		return h
	}
	n := len(data) / 2
	return tlog.NodeHash(tileHash(data[:n]), tileHash(data[n:]))
}
