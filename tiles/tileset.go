package tiles

import "fmt"

// Tiles is an ordered set of tiles produced by [NewTiles] for one tree growth
// transition. All tiles share one height and the ordering is ascending level
// then ascending offset, the natural emission order of the planner.
// Consumers rely on that ordering for deterministic fetch batching, so it is
// part of the contract.
type Tiles []Tile

// NewTiles returns every tile of the given height that changes identity when
// the tree grows from oldTreeSize to newTreeSize records: tiles that become
// complete during the growth, plus the still partial tile at each level's
// growth frontier. A mirror that fetches exactly these tiles, in order, has
// rematerialised the log.
//
// No coordinate appears twice. It fails only when height is outside [1, 30].
func NewTiles(height int, oldTreeSize, newTreeSize uint64) (Tiles, error) {
	if height < 1 || height > 30 {
		return nil, fmt.Errorf("height %d: %w", height, ErrTileHeight)
	}

	h := uint(height)
	var tiles Tiles
	for level := 0; level < 64; level++ {

		// oldN and newN count the level H*level units present before and
		// after the growth. Shifts of 64 or more are always zero here, which
		// terminates the loop well before level 64 for any realistic height.
		shift := uint(level) * h
		if shift >= 64 || newTreeSize>>shift == 0 {
			break
		}
		oldN := oldTreeSize >> shift
		newN := newTreeSize >> shift
		if oldN == newN {
			continue
		}

		// Every tile index between the old and new frontier is now complete.
		for n := oldN >> h; n < newN>>h; n++ {
			t, err := NewTile(height, level, n, 1<<h)
			if err != nil {
				return nil, err
			}
			tiles = append(tiles, t)
		}

		// Any residual units leave one partial tile at the new frontier.
		n := newN >> h
		if width := newN - n<<h; width > 0 {
			t, err := NewTile(height, level, n, int(width))
			if err != nil {
				return nil, err
			}
			tiles = append(tiles, t)
		}
	}
	return tiles, nil
}
