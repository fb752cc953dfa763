// Package tiles partitions the stored hash sequence of a transparency log
// into fixed height, independently fetchable tiles.
//
// A tile of height H at level L and offset N lists W consecutive hashes at
// tree level H*L, starting at offset N * 2^H within that level. A complete
// tile lists 2^H hashes; a partial tile lists fewer because the tree has not
// yet grown enough to fill it. The special level -1 marks a tile holding raw
// record data for the corresponding record range instead of hashes.
//
// Tiles are the unit of transfer and caching: a client fetches tiles by their
// coordinate path (see [Tile.Path] and [ParseTilePath]) and reconstructs any
// hash it needs from tile data alone (see [HashFromTile]). [NewTiles] plans
// the minimal set of tiles a mirror must rematerialise when the tree grows.
package tiles
