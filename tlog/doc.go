/*
Package tlog implements the hashing and storage-index algebra for an
append-only, tile-served merkle transparency log.

The log is a binary merkle tree over a sequence of records. Level 0 holds the
record (leaf) hashes. The hash at coordinate (level, n) commits to the 2^level
records starting at record n * 2^level.

Rather than materialising the tree, every hash is given a fixed position in a
single dense, append-only sequence. A parent hash is committed immediately
after its right child is committed, so appending record n commits the record
hash followed by one interior hash for every perfect subtree that record
completes. For the first 8 records the sequence is laid out like this, where
the numbers are storage indices:

	2        6
	       /   \
	1     2     5      9
	     / \   / \    / \
	0   0   1 3   4  7   8 10

This ordering is identical to the post order traversal used by merkle mountain
range constructions: nothing is ever inserted or rewritten, so the sequence can
be served from write-once storage and grows strictly to the right.

[StoredHashIndex] and [SplitStoredHashIndex] are the bijection between tree
coordinates and storage indices. [StoredHashCount] gives the sequence length
for a given record count. [SubTreeIndexes] decomposes an arbitrary record
range into the maximal perfect subtrees whose root hashes are already
committed, which is all a verifier needs to recompute any tree head or range
hash from stored hashes alone.

Hashing follows RFC 6962: record hashes and interior hashes are domain
separated by a one byte prefix so that no leaf can be confused with an
interior node.

The package is pure arithmetic over value types. Reading committed hashes back
is delegated to the [HashReader] capability; how those hashes are persisted or
fetched is entirely the caller's concern.
*/
package tlog
