package storage

import (
	"context"
	"fmt"

	"github.com/forestrie/go-tlogtiles/tiles"
	"github.com/forestrie/go-tlogtiles/tlog"
)

// MemoryTileStore is an append only in memory log. It keeps the dense stored
// hash sequence exactly as a persistent store would lay it out, and serves
// both the hash read capability and tile reads from it. It is the reference
// store for tests and for wiring up readers without any backing service.
//
// It is a plain value holder with no internal locking; confine it to one
// goroutine or wrap it.
type MemoryTileStore struct {
	height int
	size   uint64
	hashes []tlog.Hash
}

func NewMemoryTileStore(height int) (*MemoryTileStore, error) {
	if height < 1 || height > 30 {
		return nil, fmt.Errorf("height %d: %w", height, tiles.ErrTileHeight)
	}
	return &MemoryTileStore{height: height}, nil
}

// Height returns the tile height the store serves.
func (s *MemoryTileStore) Height() int { return s.height }

// Size returns the number of records appended so far.
func (s *MemoryTileStore) Size() uint64 { return s.size }

// AppendRecord appends one record to the log, committing its record hash and
// the interior hashes of every subtree it completes. It returns the new tree
// size.
func (s *MemoryTileStore) AppendRecord(ctx context.Context, data []byte) (uint64, error) {
	hashes, err := tlog.StoredHashes(ctx, s.size, data, s)
	if err != nil {
		return 0, err
	}
	s.hashes = append(s.hashes, hashes...)
	s.size++
	return s.size, nil
}

// ReadHashes implements tlog.HashReader over the stored sequence.
func (s *MemoryTileStore) ReadHashes(ctx context.Context, indexes []uint64) ([]tlog.Hash, error) {
	hashes := make([]tlog.Hash, len(indexes))
	for i, x := range indexes {
		if x >= uint64(len(s.hashes)) {
			return nil, fmt.Errorf("index %d of %d: %w", x, len(s.hashes), ErrHashIndexUnavailable)
		}
		hashes[i] = s.hashes[x]
	}
	return hashes, nil
}

// ReadTiles implements [TileReader] by slicing each tile's bottom row out of
// the stored sequence. Only hash tiles are served; the store does not retain
// record bytes, so data tiles report [ErrDataTileUnsupported].
func (s *MemoryTileStore) ReadTiles(ctx context.Context, ts tiles.Tiles) ([][]byte, error) {
	data := make([][]byte, len(ts))
	for i, t := range ts {
		if t.Height != s.height {
			return nil, fmt.Errorf("height %d wanted %d: %w", t.Height, s.height, ErrTileHeightMismatch)
		}
		if t.IsData() {
			return nil, fmt.Errorf("%s: %w", t.Path(), ErrDataTileUnsupported)
		}

		b := make([]byte, 0, t.Width*tlog.HashSize)
		level := t.Height * t.Level
		for w := 0; w < t.Width; w++ {
			x := tlog.StoredHashIndex(level, t.N<<uint(t.Height)+uint64(w))
			if x >= uint64(len(s.hashes)) {
				return nil, fmt.Errorf("%s: %w", t.Path(), ErrTileNotAvailable)
			}
			b = append(b, s.hashes[x][:]...)
		}
		data[i] = b
	}
	return data, nil
}

// TreeHash returns the root hash for the store's current size.
func (s *MemoryTileStore) TreeHash(ctx context.Context) (tlog.Hash, error) {
	return tlog.TreeHash(ctx, s.size, s)
}

// Checkpoint returns an unsigned checkpoint for the store's current state.
func (s *MemoryTileStore) Checkpoint(ctx context.Context, timestamp int64) (Checkpoint, error) {
	root, err := s.TreeHash(ctx)
	if err != nil {
		return Checkpoint{}, err
	}
	ckpt := Checkpoint{TreeSize: s.size, Timestamp: timestamp}
	if s.size > 0 {
		ckpt.Root = root[:]
	}
	return ckpt, nil
}
