package tiles

import "errors"

var (
	ErrTileHeight     = errors.New("tile height must be in range [1, 30]")
	ErrTileLevel      = errors.New("tile level must be in range [-1, 63]")
	ErrTileWidth      = errors.New("tile width must be in range [1, 2^height]")
	ErrTilePath       = errors.New("malformed tile path")
	ErrTileDataSize   = errors.New("tile data is too short for the tile width")
	ErrIndexNotInTile = errors.New("the stored hash index is not covered by the tile")
	ErrDataTile       = errors.New("data tiles carry record bytes, not hashes")
)
