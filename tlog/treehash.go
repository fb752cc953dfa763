package tlog

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
)

var (
	ErrShortHashRead = errors.New("hash reader returned the wrong number of hashes")
	ErrEmptySubTree  = errors.New("a sub tree hash requires a non empty record range")
)

// HashReader is the read capability consumed by the hash combination
// routines. Implementations return the hashes at exactly the requested stored
// hash indices, in the requested order, or an error. How the hashes are
// persisted and fetched is entirely the implementation's concern; a remote
// implementation will typically batch one call into a single round trip.
type HashReader interface {
	ReadHashes(ctx context.Context, indexes []uint64) ([]Hash, error)
}

// A HashReaderFunc adapts a function to the HashReader interface.
type HashReaderFunc func(ctx context.Context, indexes []uint64) ([]Hash, error)

func (f HashReaderFunc) ReadHashes(ctx context.Context, indexes []uint64) ([]Hash, error) {
	return f(ctx, indexes)
}

// TreeHash returns the hash for the root of the tree with n records, reading
// the committed hashes it needs from r. The empty tree hashes to the zero
// Hash.
func TreeHash(ctx context.Context, n uint64, r HashReader) (Hash, error) {
	if n == 0 {
		return Hash{}, nil
	}
	return SubTreeHash(ctx, 0, n, r)
}

// SubTreeHash returns the hash committing to the record range [lo, hi),
// reading the committed hashes it needs from r. The range must be non empty.
func SubTreeHash(ctx context.Context, lo, hi uint64, r HashReader) (Hash, error) {
	if lo >= hi {
		return Hash{}, fmt.Errorf("[%d, %d): %w", lo, hi, ErrEmptySubTree)
	}

	indexes := SubTreeIndexes(lo, hi)
	hashes, err := r.ReadHashes(ctx, indexes)
	if err != nil {
		return Hash{}, err
	}
	if len(hashes) != len(indexes) {
		return Hash{}, fmt.Errorf(
			"got %d hashes for %d indexes: %w", len(hashes), len(indexes), ErrShortHashRead)
	}

	// The decomposition lists the largest subtree first, so the accumulation
	// folds from the right: each smaller right hand peak is absorbed into the
	// peak to its left, exactly reversing how the peaks were committed.
	h := hashes[len(hashes)-1]
	for i := len(hashes) - 2; i >= 0; i-- {
		h = NodeHash(hashes[i], h)
	}
	return h, nil
}

// StoredHashes returns the hashes committed to the stored hash sequence by
// appending record n with the given content, in storage order: the record
// hash followed by one interior hash for each perfect subtree the record
// completes. The sibling hashes those interior nodes need are read from r.
func StoredHashes(ctx context.Context, n uint64, data []byte, r HashReader) ([]Hash, error) {
	return StoredHashesForRecordHash(ctx, n, RecordHash(data), r)
}

// StoredHashesForRecordHash is like [StoredHashes] but takes the hash of
// record n instead of its content.
func StoredHashesForRecordHash(ctx context.Context, n uint64, h Hash, r HashReader) ([]Hash, error) {

	hashes := []Hash{h}

	// Record n completes one perfect subtree per trailing 1 bit of n, which
	// is also trailingZeros(n+1). Each completed subtree needs the stored
	// hash of its left sibling. n>>i is odd for each i below m, so the
	// sibling at level i is (n>>i)-1.
	m := bits.TrailingZeros64(n + 1)
	indexes := make([]uint64, m)
	for i := 0; i < m; i++ {
		// Ascending index order, for the benefit of batching readers.
		indexes[m-1-i] = StoredHashIndex(i, n>>uint(i)-1)
	}

	old, err := r.ReadHashes(ctx, indexes)
	if err != nil {
		return nil, err
	}
	if len(old) != len(indexes) {
		return nil, fmt.Errorf(
			"got %d hashes for %d indexes: %w", len(old), len(indexes), ErrShortHashRead)
	}

	for i := 0; i < m; i++ {
		h = NodeHash(old[m-1-i], h)
		hashes = append(hashes, h)
	}
	return hashes, nil
}
