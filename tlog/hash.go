package tlog

import "crypto/sha256"

// HashSize is the size of a log hash in bytes.
const HashSize = 32

// Hash is a hash value identifying a record or subtree in the log. It is a
// plain value type with no identity beyond its bytes.
type Hash [HashSize]byte

// RecordHash returns the content hash for the given record data.
//
// The hash is SHA256(0x00 || data), the leaf hash construction from RFC 6962
// section 2.1. The 0x00 prefix domain separates record hashes from interior
// node hashes.
func RecordHash(data []byte) Hash {
	h := sha256.New()
	h.Write([]byte{0x00})
	h.Write(data)
	var hash Hash
	h.Sum(hash[:0])
	return hash
}

// NodeHash returns the hash for an interior tree node with the given left and
// right children.
//
// The hash is SHA256(0x01 || left || right), per RFC 6962 section 2.1. The
// children are ordered, NodeHash(a, b) and NodeHash(b, a) are different
// hashes.
func NodeHash(left, right Hash) Hash {
	h := sha256.New()
	h.Write([]byte{0x01})
	h.Write(left[:])
	h.Write(right[:])
	var hash Hash
	h.Sum(hash[:0])
	return hash
}
