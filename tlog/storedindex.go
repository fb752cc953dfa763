package tlog

import "math/bits"

// Coordinate addresses a single hash in the tree. Level 0 is the record
// hashes, and the hash at (level, n) commits to the 2^level records starting
// at record n * 2^level.
type Coordinate struct {
	// Level of the hash in the tree, 0 for record hashes.
	Level int
	// N is the offset of the hash within its level.
	N uint64
}

// StoredHashIndex returns the coordinate's position in the dense append-only
// hash sequence. It is a convenience for [StoredHashIndex].
func (c Coordinate) StoredHashIndex() uint64 {
	return StoredHashIndex(c.Level, c.N)
}

// StoredHashIndex maps the tree coordinate (level, n) to its position in the
// dense append-only hash sequence. Storage implementations that keep hashes
// in sequential storage use this to compute where to read or write a given
// hash.
//
// level must be in range [0, 63]; behaviour outside that range is undefined
// (the arithmetic overflows) and callers must guard it.
func StoredHashIndex(level int, n uint64) uint64 {

	// The nth hash at level L is committed right after the 2n+1 st hash at
	// level L-1, so work the coordinate down to its equivalent level 0
	// position first. The level count is added back at the end.
	for l := level; l > 0; l-- {
		n = 2*n + 1
	}

	// The nth hash at level 0 is stored at index n + n/2 + n/4 + ...
	// That sum counts every hash committed strictly before level 0
	// position n: each preceding record contributes itself plus an
	// interior hash for every perfect subtree it completes.
	i := uint64(0)
	for n > 0 {
		i += n
		n >>= 1
	}

	return uint64(int64(i) + int64(level))
}

// SplitStoredHashIndex is the exact inverse of [StoredHashIndex]:
//
//	SplitStoredHashIndex(StoredHashIndex(level, n)) == Coordinate{level, n}
//
// for every level in [0, 63] and every n.
func SplitStoredHashIndex(index uint64) Coordinate {

	// Because StoredHashIndex(0, n) < 2n for all n > 0, the level 0 record
	// committed at or before index is in [index/2, index/2 + log2(index)].
	// Start at the low estimate and scan forward; the scan is O(log index),
	// never a walk from zero.
	n := index / 2
	indexN := StoredHashIndex(0, n)

	for {
		// Appending record n+1 commits 1 + trailingZeros(n+1) hashes: the
		// record hash plus one interior hash per perfect subtree the record
		// completes.
		x := indexN + 1 + uint64(bits.TrailingZeros64(n+1))
		if x > index {
			break
		}
		n++
		indexN = x
	}

	// The wanted hash was committed with record n, so it is one of
	// (0, n), (1, n/2), (2, n/4), ... and the remaining delta is the level.
	level := int(index - indexN)
	return Coordinate{Level: level, N: n >> level}
}

// StoredHashCount returns the number of hashes stored in the sequence after n
// records have been appended. It is zero for the empty log.
func StoredHashCount(n uint64) uint64 {
	if n == 0 {
		return 0
	}

	// Everything up to and including the hash of the last record.
	count := StoredHashIndex(0, n-1) + 1

	// Plus one interior hash for each perfect subtree completed by that
	// record, one per trailing 1 bit of n-1.
	for i := n - 1; i&1 != 0; i >>= 1 {
		count++
	}
	return count
}
