package tlog

import (
	"encoding/hex"
	"testing"
)

func TestRecordHashEmpty(t *testing.T) {
	// SHA256(0x00), the RFC 6962 leaf hash of the empty record.
	want := "6e340b9cffb37a989ca544e6bb780a2c78901d3fb33738768511a30617afa01d"
	h := RecordHash(nil)
	got := hex.EncodeToString(h[:])
	if got != want {
		t.Errorf("RecordHash(nil) = %s; expected %s", got, want)
	}
	if h := RecordHash([]byte{}); hex.EncodeToString(h[:]) != want {
		t.Errorf("RecordHash of empty slice and nil disagree")
	}
}

func TestHashDomainSeparation(t *testing.T) {
	leaf := RecordHash(nil)
	if NodeHash(leaf, leaf) == leaf {
		t.Fatal("interior hash collided with its own leaf")
	}
	// A record whose content is exactly two leaf hashes must not collide
	// with the interior node over those hashes.
	data := append(append([]byte{}, leaf[:]...), leaf[:]...)
	if RecordHash(data) == NodeHash(leaf, leaf) {
		t.Fatal("record hash collided with interior hash of the same bytes")
	}
}

func TestNodeHashOrdered(t *testing.T) {
	a := RecordHash([]byte("a"))
	b := RecordHash([]byte("b"))
	if a == b {
		t.Fatal("distinct records hashed equal")
	}
	if NodeHash(a, b) == NodeHash(b, a) {
		t.Fatal("NodeHash ignored child order")
	}
}
