package storage

import (
	"context"

	"github.com/forestrie/go-tlogtiles/tiles"
)

// TileReader is the transfer capability a tile consumer is written against.
type TileReader interface {
	// Height returns the tile height this reader serves. All tiles passed to
	// ReadTiles must have this height.
	Height() int

	// ReadTiles returns the data for each requested tile, in the requested
	// order. The data for a hash tile is its bottom row, Width hashes of
	// tlog.HashSize bytes. An implementation returns exactly the requested
	// tiles or an error; it never silently substitutes neighbouring or wider
	// tiles.
	ReadTiles(ctx context.Context, ts tiles.Tiles) ([][]byte, error)
}
