package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/forestrie/go-tlogtiles/tiles"
	"github.com/forestrie/go-tlogtiles/tlog"
)

// TileHashReader adapts a [TileReader] into the tlog.HashReader capability.
//
// One ReadHashes call plans the minimal set of tiles covering the requested
// indices, fetches them in a single ReadTiles round trip, and extracts or
// recomputes each hash from tile data. The fetch set is ordered ascending by
// level then offset, matching the planner ordering the transport layer
// batches on.
type TileHashReader struct {
	tr TileReader
}

func NewTileHashReader(tr TileReader) TileHashReader {
	return TileHashReader{tr: tr}
}

// ReadHashes implements tlog.HashReader.
func (r TileHashReader) ReadHashes(ctx context.Context, indexes []uint64) ([]tlog.Hash, error) {

	height := r.tr.Height()

	type coords struct {
		level int
		n     uint64
	}

	// Collapse the indices onto tiles. Two indices in the same tile row may
	// need different widths, so each coordinate keeps the widest request;
	// HashFromTile accepts a tile wider than the minimal cover.
	want := map[coords]tiles.Tile{}
	tileOf := make([]coords, len(indexes))
	for i, x := range indexes {
		t, err := tiles.TileForIndex(height, x)
		if err != nil {
			return nil, err
		}
		k := coords{t.Level, t.N}
		if cur, ok := want[k]; !ok || t.Width > cur.Width {
			want[k] = t
		}
		tileOf[i] = k
	}

	fetch := make(tiles.Tiles, 0, len(want))
	for _, t := range want {
		fetch = append(fetch, t)
	}
	sort.Slice(fetch, func(i, j int) bool {
		if fetch[i].Level != fetch[j].Level {
			return fetch[i].Level < fetch[j].Level
		}
		return fetch[i].N < fetch[j].N
	})

	data, err := r.tr.ReadTiles(ctx, fetch)
	if err != nil {
		return nil, err
	}
	if len(data) != len(fetch) {
		return nil, fmt.Errorf(
			"got %d tiles for %d requested: %w", len(data), len(fetch), tlog.ErrShortHashRead)
	}

	at := make(map[coords]int, len(fetch))
	for i, t := range fetch {
		at[coords{t.Level, t.N}] = i
	}

	hashes := make([]tlog.Hash, len(indexes))
	for i, x := range indexes {
		j := at[tileOf[i]]
		h, err := tiles.HashFromTile(fetch[j], data[j], x)
		if err != nil {
			return nil, err
		}
		hashes[i] = h
	}
	return hashes, nil
}
