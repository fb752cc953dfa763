package tlog

import "math/bits"

// maxpow2 returns k, the largest power of 2 strictly below n, along with
// l = log2(k). n must be at least 2.
func maxpow2(n uint64) (uint64, int) {
	l := bits.Len64(n-1) - 1
	return uint64(1) << uint(l), l
}

// SubTreeIndexes decomposes the half open record range [lo, hi) into the
// minimal ordered sequence of maximal perfect subtrees whose root hashes are
// already committed, returning their stored hash indices.
//
// At each step the largest power of two k = 2^level is taken such that lo is
// a multiple of k and lo+k <= hi, the index of (level, lo/k) is emitted and lo
// advances by k. The subtrees are therefore emitted left to right and strictly
// descend in size once the range stops being aligned.
//
// Combining the hashes at the returned indices right to left with [NodeHash]
// yields the hash for the whole range; see [SubTreeHash].
func SubTreeIndexes(lo, hi uint64) []uint64 {
	var need []uint64
	for lo < hi {
		k, level := maxpow2(hi - lo + 1)
		for lo&(k-1) != 0 {
			k >>= 1
			level--
		}
		need = append(need, StoredHashIndex(level, lo>>level))
		lo += k
	}
	return need
}
